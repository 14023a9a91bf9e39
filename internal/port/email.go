package port

import (
	"context"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// EmailSender delivers notification emails.
type EmailSender interface {
	SendDueReminder(ctx context.Context, toEmail string, invoices []domain.Invoice) error
}
