package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/handler"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newInvoiceRouter(invRepo *mocks.MockInvoiceRepo, fileRepo *mocks.MockFileMetaRepo, storage *mocks.MockObjectStorage) *gin.Engine {
	invoiceSvc := service.NewInvoiceService(invRepo)
	uploadSvc := service.NewUploadService(invRepo, fileRepo, storage, extract.NewPipeline(nil),
		&config.S3Config{Bucket: "b", MaxFileSizeMB: 1})
	h := handler.NewInvoiceHandler(invoiceSvc, uploadSvc)

	r := gin.New()
	r.GET("/invoices", h.List)
	r.GET("/invoices/export", h.Export)
	r.GET("/invoices/:id", h.GetByID)
	r.POST("/invoices/upload", h.Upload)
	r.POST("/invoices/:id/pay", h.MarkPaid)
	return r
}

func TestListInvoices_Envelope(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	invRepo.On("List", mock.Anything, mock.Anything).Return([]domain.Invoice{
		{Supplier: "Acme Corp", Amount: 100},
	}, 1, nil)

	r := newInvoiceRouter(invRepo, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/invoices", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
}

func TestListInvoices_ArchivedFilterParsed(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	invRepo.On("List", mock.Anything, mock.MatchedBy(func(f port.InvoiceFilter) bool {
		return f.Archived != nil && *f.Archived
	})).Return([]domain.Invoice{}, 0, nil)

	r := newInvoiceRouter(invRepo, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/invoices?archived=true", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	invRepo.AssertExpectations(t)
}

func TestGetInvoice_InvalidID(t *testing.T) {
	r := newInvoiceRouter(&mocks.MockInvoiceRepo{}, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/invoices/not-a-uuid", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkPaid_NotFound(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	id := uuid.New()
	invRepo.On("UpdateStatus", mock.Anything, id, domain.StatusPaid).Return(domain.ErrNotFound)

	r := newInvoiceRouter(invRepo, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/invoices/"+id.String()+"/pay", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload_MissingFileField(t *testing.T) {
	r := newInvoiceRouter(&mocks.MockInvoiceRepo{}, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/invoices/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_CreatesRecordForTextFile(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	fileRepo := &mocks.MockFileMetaRepo{}
	storage := &mocks.MockObjectStorage{}

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "inv.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Supplier: Acme Corp\nTotal: 42"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := newInvoiceRouter(invRepo, fileRepo, storage)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/invoices/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    domain.Invoice `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Acme Corp", resp.Data.Supplier)
	assert.Equal(t, 42.0, resp.Data.Amount)
}

func TestExport_CSVWithBOM(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	invRepo.On("ListAll", mock.Anything).Return([]domain.Invoice{
		{Supplier: "Acme Corp", InvoiceNumber: "INV-1", Amount: 10},
	}, nil)

	r := newInvoiceRouter(invRepo, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/invoices/export", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, w.Body.String(), "Acme Corp")
}

func TestExport_UnknownFormat(t *testing.T) {
	invRepo := &mocks.MockInvoiceRepo{}
	invRepo.On("ListAll", mock.Anything).Return([]domain.Invoice{}, nil)

	r := newInvoiceRouter(invRepo, &mocks.MockFileMetaRepo{}, &mocks.MockObjectStorage{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/invoices/export?format=pdf", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
