package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

// CashflowService computes cashflow metrics and related notifications.
type CashflowService interface {
	Summary(ctx context.Context) (*domain.CashflowSummary, error)
	Report(ctx context.Context) (*domain.CashflowReport, error)
	SendDueReminder(ctx context.Context, toEmail string) (int, error)
}

type cashflowService struct {
	cashflowRepo port.CashflowRepository
	invoiceRepo  port.InvoiceRepository
	emailSender  port.EmailSender
	narrator     port.CashflowNarrator // nil when no AI provider is configured
	now          func() time.Time
}

// NewCashflowService creates a new CashflowService implementation. narrator
// may be nil; reports then carry metrics only.
func NewCashflowService(
	cashflowRepo port.CashflowRepository,
	invoiceRepo port.InvoiceRepository,
	emailSender port.EmailSender,
	narrator port.CashflowNarrator,
) CashflowService {
	return NewCashflowServiceWithClock(cashflowRepo, invoiceRepo, emailSender, narrator, time.Now)
}

// NewCashflowServiceWithClock is NewCashflowService with an injectable clock.
func NewCashflowServiceWithClock(
	cashflowRepo port.CashflowRepository,
	invoiceRepo port.InvoiceRepository,
	emailSender port.EmailSender,
	narrator port.CashflowNarrator,
	now func() time.Time,
) CashflowService {
	return &cashflowService{
		cashflowRepo: cashflowRepo,
		invoiceRepo:  invoiceRepo,
		emailSender:  emailSender,
		narrator:     narrator,
		now:          now,
	}
}

func (s *cashflowService) Summary(ctx context.Context) (*domain.CashflowSummary, error) {
	today := s.now().UTC().Format(extract.ISODate)
	summary, err := s.cashflowRepo.Summary(ctx, today)
	if err != nil {
		return nil, err
	}
	weeks, err := s.cashflowRepo.WeekBuckets(ctx)
	if err != nil {
		return nil, err
	}
	summary.Weeks = weeks
	return summary, nil
}

// Report returns the summary with a prose narrative. Narration is
// best-effort: any failure degrades to a metrics-only report.
func (s *cashflowService) Report(ctx context.Context) (*domain.CashflowReport, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.CashflowReport{Summary: *summary}
	if s.narrator != nil {
		narrative, err := s.narrator.Narrate(ctx, *summary)
		if err != nil {
			log.Printf("cashflowService.Report: narration failed: %v", err)
		} else {
			report.Narrative = narrative
		}
	}
	return report, nil
}

// SendDueReminder emails a digest of unpaid invoices due within the next
// 7 days and returns how many were included. No invoices due means no email.
func (s *cashflowService) SendDueReminder(ctx context.Context, toEmail string) (int, error) {
	today := s.now().UTC()
	from := today.Format(extract.ISODate)
	to := today.AddDate(0, 0, 7).Format(extract.ISODate)

	invoices, err := s.invoiceRepo.ListDueBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("cashflowService.SendDueReminder: %w", err)
	}
	if len(invoices) == 0 {
		return 0, nil
	}

	if err := s.emailSender.SendDueReminder(ctx, toEmail, invoices); err != nil {
		return 0, fmt.Errorf("cashflowService.SendDueReminder: %w", err)
	}
	return len(invoices), nil
}
