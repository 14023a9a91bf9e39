package router

import (
	"github.com/gin-gonic/gin"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/handler"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/middleware"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	fileH *handler.FileHandler,
	cashflowH *handler.CashflowHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	if cfg.Server.Environment != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Invoice routes
	invoices := protected.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.POST("", invoiceH.Create)
	invoices.POST("/upload", invoiceH.Upload)
	invoices.GET("/export", invoiceH.Export)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.POST("/:id/pay", invoiceH.MarkPaid)
	invoices.POST("/:id/archive", invoiceH.Archive)
	invoices.POST("/:id/unarchive", invoiceH.Unarchive)

	// File routes
	files := protected.Group("/files")
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", fileH.Delete)

	// Cashflow routes
	cashflow := protected.Group("/cashflow")
	cashflow.GET("", cashflowH.Summary)
	cashflow.GET("/narrative", cashflowH.Narrative)
	cashflow.POST("/remind", cashflowH.Remind)

	return r
}
