package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

// CreateInvoiceInput is the DTO for manually created invoices.
type CreateInvoiceInput struct {
	Supplier      string  `json:"supplier" binding:"required"`
	InvoiceNumber string  `json:"invoice_number" binding:"required"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Archive(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Unarchive(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(invoiceRepo port.InvoiceRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo}
}

func (s *invoiceService) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.invoiceRepo.List(ctx, filter)
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// Create stores a manually entered invoice. Missing dates default the same
// way uploads do: issue date today, due date fourteen days out. Provided
// dates must already be YYYY-MM-DD; the amount must not be negative.
func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	now := time.Now().UTC()

	issueDate := input.IssueDate
	if issueDate == "" {
		issueDate = now.Format(extract.ISODate)
	} else if !validISODate(issueDate) {
		return nil, fmt.Errorf("issue_date %q is not YYYY-MM-DD: %w", issueDate, domain.ErrInvalidInput)
	}
	dueDate := input.DueDate
	if dueDate == "" {
		dueDate = now.AddDate(0, 0, 14).Format(extract.ISODate)
	} else if !validISODate(dueDate) {
		return nil, fmt.Errorf("due_date %q is not YYYY-MM-DD: %w", dueDate, domain.ErrInvalidInput)
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative: %w", domain.ErrInvalidInput)
	}
	category := input.Category
	if category == "" {
		category = extract.FallbackCategory
	}

	inv := &domain.Invoice{
		Supplier:      input.Supplier,
		InvoiceNumber: input.InvoiceNumber,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Amount:        input.Amount,
		Status:        domain.StatusUpcoming,
		Category:      category,
		Source:        "Manual",
		WeekLabel:     extract.WeekLabel(dueDate),
		Archived:      false,
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.Create: %w", err)
	}
	return inv, nil
}

func validISODate(value string) bool {
	_, err := time.Parse(extract.ISODate, value)
	return err == nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if err := s.invoiceRepo.UpdateStatus(ctx, id, domain.StatusPaid); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) Archive(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if err := s.invoiceRepo.SetArchived(ctx, id, true); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) Unarchive(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if err := s.invoiceRepo.SetArchived(ctx, id, false); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListAll(ctx)
}
