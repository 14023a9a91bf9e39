package main

import (
	"fmt"
	"log"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	noopemail "github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/email/noop"
	sesemail "github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/email/ses"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract/openai"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/handler"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/repository/postgres"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/router"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
	s3storage "github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	invoiceRepo := postgres.NewInvoiceRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	cashflowRepo := postgres.NewCashflowRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// AI extraction is optional; without an API key the pipeline runs
	// heuristics-only and reports carry metrics without narration.
	var extractor port.FieldExtractor
	var narrator port.CashflowNarrator
	if cfg.Extractor.APIKey != "" {
		client := openai.NewClient(&cfg.Extractor)
		extractor = client
		narrator = client
	} else {
		log.Println("no extractor API key configured; AI extraction disabled")
	}
	pipeline := extract.NewPipeline(extractor)

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = sesemail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noopemail.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	invoiceSvc := service.NewInvoiceService(invoiceRepo)
	uploadSvc := service.NewUploadService(invoiceRepo, fileRepo, s3Client, pipeline, &cfg.S3)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	cashflowSvc := service.NewCashflowService(cashflowRepo, invoiceRepo, emailSender, narrator)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, uploadSvc)
	fileH := handler.NewFileHandler(fileSvc)
	cashflowH := handler.NewCashflowHandler(cashflowSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, invoiceH, fileH, cashflowH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
