package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"invoiceforge/internal/layout"
)

const envPrefix = "INVOICEFORGE"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Layout  LayoutConfig
	S3      S3Config
	Email   EmailConfig
	Catalog CatalogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxBodyMB    int64         `mapstructure:"max_body_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LayoutConfig selects the page geometry and PDF output options.
type LayoutConfig struct {
	Paper          string  `mapstructure:"paper"`
	Mode           string  `mapstructure:"mode"`
	TopMargin      float64 `mapstructure:"top_margin"`
	BottomMargin   float64 `mapstructure:"bottom_margin"`
	LeftMargin     float64 `mapstructure:"left_margin"`
	FontSize       float64 `mapstructure:"font_size"`
	LineHeight     float64 `mapstructure:"line_height"`
	FontFamily     string  `mapstructure:"font_family"`
	Compress       bool    `mapstructure:"compress"`
	MaxImageSizeMB int64   `mapstructure:"max_image_size_mb"`
}

// Geometry builds the page geometry described by this config.
func (l *LayoutConfig) Geometry() (layout.PageGeometry, error) {
	g := layout.DefaultGeometry()
	if l.Paper != "" {
		paper, err := layout.LookupPaper(l.Paper)
		if err != nil {
			return layout.PageGeometry{}, err
		}
		g = g.WithPaper(paper)
	}
	if l.TopMargin > 0 {
		g.TopMargin = l.TopMargin
	}
	if l.BottomMargin > 0 {
		g.BottomMargin = l.BottomMargin
	}
	if l.LeftMargin > 0 {
		g.LeftMargin = l.LeftMargin
	}
	if l.FontSize > 0 {
		g.FontSize = l.FontSize
	}
	if l.LineHeight > 0 {
		g.LineHeight = l.LineHeight
	}
	if err := g.Validate(); err != nil {
		return layout.PageGeometry{}, err
	}
	return g, nil
}

// LayoutMode parses Mode.
func (l *LayoutConfig) LayoutMode() (layout.Mode, error) {
	return layout.ParseMode(l.Mode)
}

// MaxImageBytes converts MaxImageSizeMB to bytes.
func (l *LayoutConfig) MaxImageBytes() int64 {
	return l.MaxImageSizeMB * 1024 * 1024
}

// S3Config holds the read-only asset bucket used to resolve logo and
// signature asset keys.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CatalogConfig points at the saved-items spreadsheet.
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

// Load reads configuration from environment variables with the
// INVOICEFORGE_ prefix.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads an optional YAML/JSON/TOML config file, then applies
// INVOICEFORGE_ environment overrides on top of it.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Layout defaults
	v.SetDefault("layout.paper", "classic")
	v.SetDefault("layout.mode", string(layout.ModePaginate))
	v.SetDefault("layout.top_margin", 0)
	v.SetDefault("layout.bottom_margin", 0)
	v.SetDefault("layout.left_margin", 0)
	v.SetDefault("layout.font_size", 0)
	v.SetDefault("layout.line_height", 0)
	v.SetDefault("layout.font_family", "Helvetica")
	v.SetDefault("layout.compress", true)
	v.SetDefault("layout.max_image_size_mb", 5)

	// S3 asset defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "invoiceforge-assets")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "invoices@invoiceforge.local")
	v.SetDefault("email.from_name", "Invoiceforge")

	// Catalog defaults
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.sheet", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "INVOICEFORGE_SERVER_PORT",
		"server.read_timeout":      "INVOICEFORGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "INVOICEFORGE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "INVOICEFORGE_SERVER_ENVIRONMENT",
		"server.max_body_mb":       "INVOICEFORGE_SERVER_MAX_BODY_MB",
		"log.level":                "INVOICEFORGE_LOG_LEVEL",
		"log.format":               "INVOICEFORGE_LOG_FORMAT",
		"cors.allowed_origins":     "INVOICEFORGE_CORS_ALLOWED_ORIGINS",
		"layout.paper":             "INVOICEFORGE_LAYOUT_PAPER",
		"layout.mode":              "INVOICEFORGE_LAYOUT_MODE",
		"layout.top_margin":        "INVOICEFORGE_LAYOUT_TOP_MARGIN",
		"layout.bottom_margin":     "INVOICEFORGE_LAYOUT_BOTTOM_MARGIN",
		"layout.left_margin":       "INVOICEFORGE_LAYOUT_LEFT_MARGIN",
		"layout.font_size":         "INVOICEFORGE_LAYOUT_FONT_SIZE",
		"layout.line_height":       "INVOICEFORGE_LAYOUT_LINE_HEIGHT",
		"layout.font_family":       "INVOICEFORGE_LAYOUT_FONT_FAMILY",
		"layout.compress":          "INVOICEFORGE_LAYOUT_COMPRESS",
		"layout.max_image_size_mb": "INVOICEFORGE_LAYOUT_MAX_IMAGE_SIZE_MB",
		"s3.enabled":               "INVOICEFORGE_S3_ENABLED",
		"s3.region":                "INVOICEFORGE_S3_REGION",
		"s3.bucket":                "INVOICEFORGE_S3_BUCKET",
		"s3.endpoint":              "INVOICEFORGE_S3_ENDPOINT",
		"s3.access_key":            "INVOICEFORGE_S3_ACCESS_KEY",
		"s3.secret_key":            "INVOICEFORGE_S3_SECRET_KEY",
		"email.provider":           "INVOICEFORGE_EMAIL_PROVIDER",
		"email.region":             "INVOICEFORGE_EMAIL_REGION",
		"email.from_address":       "INVOICEFORGE_EMAIL_FROM_ADDRESS",
		"email.from_name":          "INVOICEFORGE_EMAIL_FROM_NAME",
		"catalog.path":             "INVOICEFORGE_CATALOG_PATH",
		"catalog.sheet":            "INVOICEFORGE_CATALOG_SHEET",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOICEFORGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICEFORGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxBodyMB:    v.GetInt64("server.max_body_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Layout = LayoutConfig{
		Paper:          v.GetString("layout.paper"),
		Mode:           v.GetString("layout.mode"),
		TopMargin:      v.GetFloat64("layout.top_margin"),
		BottomMargin:   v.GetFloat64("layout.bottom_margin"),
		LeftMargin:     v.GetFloat64("layout.left_margin"),
		FontSize:       v.GetFloat64("layout.font_size"),
		LineHeight:     v.GetFloat64("layout.line_height"),
		FontFamily:     v.GetString("layout.font_family"),
		Compress:       v.GetBool("layout.compress"),
		MaxImageSizeMB: v.GetInt64("layout.max_image_size_mb"),
	}
	cfg.S3 = S3Config{
		Enabled:   v.GetBool("s3.enabled"),
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Catalog = CatalogConfig{
		Path:  v.GetString("catalog.path"),
		Sheet: v.GetString("catalog.sheet"),
	}

	if _, err := cfg.Layout.LayoutMode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
