package port

import (
	"context"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// CashflowNarrator turns cashflow metrics into a short prose summary.
// Best-effort: callers degrade to metrics-only when it fails.
type CashflowNarrator interface {
	Narrate(ctx context.Context, summary domain.CashflowSummary) (string, error)
}
