package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoiceforge/internal/catalog"
	"invoiceforge/internal/config"
	"invoiceforge/internal/email/noop"
	"invoiceforge/internal/email/ses"
	"invoiceforge/internal/handler"
	"invoiceforge/internal/imaging"
	"invoiceforge/internal/layout"
	"invoiceforge/internal/logger"
	"invoiceforge/internal/port"
	"invoiceforge/internal/render/pdf"
	"invoiceforge/internal/router"
	"invoiceforge/internal/service"
	s3storage "invoiceforge/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadFile(os.Getenv("INVOICEFORGE_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Layout and rendering
	geometry, err := cfg.Layout.Geometry()
	if err != nil {
		return fmt.Errorf("invalid layout config: %w", err)
	}
	mode, err := cfg.Layout.LayoutMode()
	if err != nil {
		return fmt.Errorf("invalid layout config: %w", err)
	}
	embedder := imaging.NewEmbedder(cfg.Layout.MaxImageBytes(), zl)
	engine, err := layout.NewEngine(geometry, embedder, mode, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize layout engine: %w", err)
	}
	renderer := pdf.NewRenderer(pdf.Options{
		FontFamily: cfg.Layout.FontFamily,
		Creator:    "invoiceforge",
		Compress:   cfg.Layout.Compress,
	}, zl)

	// Optional asset storage
	var assets port.AssetStore
	var assetPinger handler.Pinger
	if cfg.S3.Enabled {
		store, err := s3storage.NewAssetStore(&cfg.S3, cfg.Layout.MaxImageBytes())
		if err != nil {
			return fmt.Errorf("failed to initialize S3 asset store: %w", err)
		}
		assets, assetPinger = store, store
	}

	// Email
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, zl)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender(zl)
	}

	// Optional saved-item catalog
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadXLSX(cfg.Catalog.Path, cfg.Catalog.Sheet)
		if err != nil {
			zl.Warn("item catalog unavailable", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		} else {
			zl.Info("item catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("items", cat.Len()))
		}
	}

	// Initialize services
	invoiceSvc := service.NewInvoiceService(engine, renderer, assets, sender, zl)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, zl)
	catalogH := handler.NewCatalogHandler(cat, zl)
	healthH := handler.NewHealthHandler(assetPinger)

	// Setup router
	r := router.Setup(zl, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyMB * 1024 * 1024,
		EnableSwagger:  cfg.Server.Environment != "production",
	}, invoiceH, catalogH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("layout_mode", string(mode)),
			zap.Bool("assets", assets != nil),
			zap.String("email", cfg.Email.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
