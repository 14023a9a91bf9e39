package port

import (
	"context"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// CashflowRepository computes aggregate invoice metrics. today is an ISO
// YYYY-MM-DD date; due-date comparisons are lexicographic on ISO strings.
type CashflowRepository interface {
	Summary(ctx context.Context, today string) (*domain.CashflowSummary, error)
	WeekBuckets(ctx context.Context) ([]domain.WeekBucket, error)
}
