package extract

import (
	"math"
	"strings"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

// Merge combines the fallback record with both extractor results under the
// fixed precedence AI > heuristic > fallback, applied field by field as an
// ordered rule list. It is pure and total: the result always has every field
// set because the fallback record does.
//
// status and category are AI-only; the heuristic never produces them.
//
// The week label is recomputed only when the AI result supplied a valid due
// date. A heuristic-only due-date override keeps the fallback week label.
// That asymmetry is tested upstream behavior, preserved deliberately.
func Merge(fallback domain.Invoice, heur port.ExtractedFields, ai *port.ExtractedFields) domain.Invoice {
	merged := fallback

	applyString(&merged.Supplier, heur.Supplier)
	applyString(&merged.InvoiceNumber, heur.InvoiceNumber)
	applyString(&merged.IssueDate, heur.IssueDate)
	applyString(&merged.DueDate, heur.DueDate)
	applyFloat(&merged.Amount, heur.Amount)

	if ai != nil {
		applyString(&merged.Supplier, ai.Supplier)
		applyString(&merged.InvoiceNumber, ai.InvoiceNumber)
		applyString(&merged.IssueDate, ai.IssueDate)
		applyString(&merged.DueDate, ai.DueDate)
		applyFloat(&merged.Amount, ai.Amount)
		applyString(&merged.Status, ai.Status)
		applyString(&merged.Category, ai.Category)

		if validString(ai.DueDate) {
			merged.WeekLabel = WeekLabel(merged.DueDate)
		}
	}

	return merged
}

func validString(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func validFloat(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func applyString(dst *string, v *string) {
	if validString(v) {
		*dst = *v
	}
}

func applyFloat(dst *float64, v *float64) {
	if validFloat(v) {
		*dst = *v
	}
}
