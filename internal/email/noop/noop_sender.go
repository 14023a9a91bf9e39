package noop

import (
	"context"
	"log"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs reminders to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDueReminder(_ context.Context, toEmail string, invoices []domain.Invoice) error {
	log.Printf("[NOOP EMAIL] Due reminder for %s: %d invoice(s) due within 7 days", toEmail, len(invoices))
	for _, inv := range invoices {
		log.Printf("[NOOP EMAIL]   %s (%s): %.2f due %s", inv.Supplier, inv.InvoiceNumber, inv.Amount, inv.DueDate)
	}
	return nil
}
