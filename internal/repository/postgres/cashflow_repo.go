package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

type cashflowRepo struct {
	db *sqlx.DB
}

// NewCashflowRepo creates a new PostgreSQL-backed CashflowRepository.
func NewCashflowRepo(db *sqlx.DB) port.CashflowRepository {
	return &cashflowRepo{db: db}
}

// Due-date comparisons are string comparisons: dates are stored as ISO
// YYYY-MM-DD, so lexicographic order is chronological order. Archived
// invoices are excluded from every metric.
const summaryQuery = `SELECT
	COALESCE(SUM(CASE WHEN status != 'Paid' THEN amount END), 0) AS total_outstanding,
	COALESCE(SUM(CASE WHEN status = 'Paid' THEN amount END), 0) AS total_paid,
	COUNT(*) AS invoice_count,
	COUNT(CASE WHEN status = 'Paid' THEN 1 END) AS paid_count,
	COUNT(CASE WHEN status != 'Paid' AND due_date < $1 THEN 1 END) AS overdue_count,
	COALESCE(SUM(CASE WHEN status != 'Paid' AND due_date >= $1 AND due_date <= $2 THEN amount END), 0) AS due_within_7_days,
	COALESCE(SUM(CASE WHEN status != 'Paid' AND due_date >= $1 AND due_date <= $3 THEN amount END), 0) AS due_within_14_days
FROM invoices WHERE archived = FALSE`

func (r *cashflowRepo) Summary(ctx context.Context, today string) (*domain.CashflowSummary, error) {
	in7, in14, err := horizonDates(today)
	if err != nil {
		return nil, fmt.Errorf("cashflowRepo.Summary: %w", err)
	}

	var summary domain.CashflowSummary
	if err := r.db.GetContext(ctx, &summary, summaryQuery, today, in7, in14); err != nil {
		return nil, fmt.Errorf("cashflowRepo.Summary: %w", err)
	}
	return &summary, nil
}

// horizonDates returns today+7d and today+14d as ISO date strings.
func horizonDates(today string) (string, string, error) {
	t, err := time.Parse("2006-01-02", today)
	if err != nil {
		return "", "", fmt.Errorf("parsing date %q: %w", today, err)
	}
	return t.AddDate(0, 0, 7).Format("2006-01-02"),
		t.AddDate(0, 0, 14).Format("2006-01-02"), nil
}

func (r *cashflowRepo) WeekBuckets(ctx context.Context) ([]domain.WeekBucket, error) {
	var buckets []domain.WeekBucket
	err := r.db.SelectContext(ctx, &buckets,
		`SELECT week_label, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count
		 FROM invoices
		 WHERE archived = FALSE AND status != 'Paid'
		 GROUP BY week_label
		 ORDER BY MIN(due_date) ASC`)
	if err != nil {
		return nil, fmt.Errorf("cashflowRepo.WeekBuckets: %w", err)
	}
	return buckets, nil
}
