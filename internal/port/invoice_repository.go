package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// InvoiceFilter narrows List results.
type InvoiceFilter struct {
	Archived *bool
	Status   string
	Offset   int
	Limit    int
}

// InvoiceRepository persists invoice records. Create assigns the record ID.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, int, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	ListDueBetween(ctx context.Context, fromDate, toDate string) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
}
