package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "invoiceforge/docs" // swagger spec registration
	"invoiceforge/internal/handler"
	"invoiceforge/internal/middleware"
)

// Options holds router-level settings.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	opts Options,
	invoiceH *handler.InvoiceHandler,
	catalogH *handler.CatalogHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	// Invoice computation and export
	invoices := v1.Group("/invoices")
	invoices.POST("/totals", invoiceH.Totals)
	invoices.POST("/check", invoiceH.Check)
	invoices.POST("/items/edit", invoiceH.EditItem)
	invoices.POST("/layout", invoiceH.Layout)
	invoices.POST("/export", invoiceH.Export)
	invoices.POST("/export/csv", invoiceH.ExportCSV)
	invoices.POST("/send", invoiceH.Send)

	// Reference data
	v1.GET("/currencies", catalogH.Currencies)
	catalog := v1.Group("/catalog")
	catalog.GET("/items", catalogH.SearchItems)
	catalog.POST("/line-items", catalogH.LineItems)

	return r
}
