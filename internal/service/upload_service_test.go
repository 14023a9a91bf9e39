package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/mocks"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func (m memFile) ReadAt(p []byte, off int64) (int, error) { return m.Reader.ReadAt(p, off) }

var _ multipart.File = memFile{}

func uploadInput(name, contentType string, data []byte) service.UploadInvoiceInput {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return service.UploadInvoiceInput{
		File:   memFile{bytes.NewReader(data)},
		Header: header,
	}
}

func newUploadService(invRepo *mocks.MockInvoiceRepo, fileRepo *mocks.MockFileMetaRepo, storage *mocks.MockObjectStorage) service.UploadService {
	cfg := &config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 1}
	pipeline := extract.NewPipeline(nil)
	return service.NewUploadService(invRepo, fileRepo, storage, pipeline, cfg)
}

func TestUpload_HappyPath(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "s3://x"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newUploadService(invRepo, fileRepo, storage)
	inv, err := svc.Upload(context.Background(), uploadInput("inv.txt", "text/plain", []byte("Supplier: Acme Corp\nTotal: 500")))

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", inv.Supplier)
	assert.Equal(t, 500.0, inv.Amount)
	require.NotNil(t, inv.FileID)
	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
	invRepo.AssertExpectations(t)
}

func TestUpload_FileTooLarge(t *testing.T) {
	svc := newUploadService(&mocks.MockInvoiceRepo{}, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})

	big := make([]byte, 2*1024*1024)
	_, err := svc.Upload(context.Background(), uploadInput("big.bin", "", big))

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUpload_StorageFailureStillCreatesInvoice(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))
	fileRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusFailed).Return(nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newUploadService(invRepo, fileRepo, storage)
	inv, err := svc.Upload(context.Background(), uploadInput("inv.txt", "text/plain", []byte("Supplier: Acme")))

	require.NoError(t, err)
	assert.Equal(t, "Acme", inv.Supplier)
	invRepo.AssertExpectations(t)
	fileRepo.AssertExpectations(t)
}

func TestUpload_FileMetaFailureStillCreatesInvoice(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db flake"))
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newUploadService(invRepo, fileRepo, storage)
	inv, err := svc.Upload(context.Background(), uploadInput("inv.txt", "text/plain", []byte("hello")))

	require.NoError(t, err)
	// No stored file to link to.
	assert.Nil(t, inv.FileID)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUpload_InvoiceSaveFailureIsTheOnlyFatalError(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("constraint violation"))

	svc := newUploadService(invRepo, fileRepo, storage)
	_, err := svc.Upload(context.Background(), uploadInput("inv.txt", "text/plain", []byte("hello")))

	assert.ErrorIs(t, err, domain.ErrInvoiceSaveFailed)
}

func TestUpload_UnreadableBinaryYieldsFallbackRecord(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)

	var saved *domain.Invoice
	invRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Invoice)
	}).Return(nil)

	svc := newUploadService(invRepo, fileRepo, storage)
	_, err := svc.Upload(context.Background(), uploadInput("photo.jpg", "image/jpeg", []byte{0xff, 0xd8}))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Uploaded invoice", saved.Supplier)
	// The placeholder text contains "invoice file: photo.jpg. ...", which the
	// heuristic's "inv" label matches, so the invoice number comes from there.
	assert.Equal(t, "photo.jpg. Extract key invoice details.", saved.InvoiceNumber)
	assert.Equal(t, "Upcoming", saved.Status)
}

// Guard against the multipart reader being consumed twice.
func TestUpload_ReadsBodyOnce(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		data, err := io.ReadAll(in.Body)
		return err == nil && string(data) == "payload"
	})).Return(&port.UploadOutput{}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newUploadService(invRepo, fileRepo, storage)
	_, err := svc.Upload(context.Background(), uploadInput("a.txt", "text/plain", []byte("payload")))

	require.NoError(t, err)
	storage.AssertExpectations(t)
}
