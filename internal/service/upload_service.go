package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

// UploadInvoiceInput is the DTO for invoice upload requests.
type UploadInvoiceInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadService turns an uploaded file into a stored invoice record. The
// extraction pipeline never fails the request; only persisting the record
// can. Blob storage is best-effort alongside it.
type UploadService interface {
	Upload(ctx context.Context, input UploadInvoiceInput) (*domain.Invoice, error)
}

type uploadService struct {
	invoiceRepo port.InvoiceRepository
	fileRepo    port.FileMetaRepository
	storage     port.ObjectStorage
	pipeline    *extract.Pipeline
	cfg         *config.S3Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	invoiceRepo port.InvoiceRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	pipeline *extract.Pipeline,
	cfg *config.S3Config,
) UploadService {
	return &uploadService{
		invoiceRepo: invoiceRepo,
		fileRepo:    fileRepo,
		storage:     storage,
		pipeline:    pipeline,
		cfg:         cfg,
	}
}

func (s *uploadService) Upload(ctx context.Context, input UploadInvoiceInput) (*domain.Invoice, error) {
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	fileID := uuid.New()
	ext := filepath.Ext(input.Header.Filename)
	s3Key := fmt.Sprintf("invoices/%s/%s", fileID, input.Header.Filename)

	meta := &domain.FileMeta{
		ID:           fileID,
		FileName:     fileID.String() + ext,
		OriginalName: input.Header.Filename,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  input.Header.Header.Get("Content-Type"),
		Status:       domain.FileStatusPending,
	}

	// File metadata and blob storage are best-effort: extraction proceeds
	// even when either fails, so an upload always yields a record.
	fileStored := true
	if err := s.fileRepo.Create(ctx, meta); err != nil {
		log.Printf("uploadService.Upload: creating file metadata failed: %v", err)
		fileStored = false
	} else if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(data),
		ContentType: meta.ContentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("uploadService.Upload: S3 upload failed for %s: %v", meta.ID, err)
		_ = s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed)
	} else if err := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusUploaded); err != nil {
		log.Printf("uploadService.Upload: updating file status failed: %v", err)
	}

	inv := s.pipeline.Run(ctx, extract.UploadedFile{
		Bytes:        data,
		ContentType:  input.Header.Header.Get("Content-Type"),
		OriginalName: input.Header.Filename,
		Size:         input.Header.Size,
	})
	if fileStored {
		inv.FileID = &meta.ID
	}

	if err := s.invoiceRepo.Create(ctx, &inv); err != nil {
		log.Printf("uploadService.Upload: saving invoice failed: %v", err)
		return nil, domain.ErrInvoiceSaveFailed
	}
	return &inv, nil
}
