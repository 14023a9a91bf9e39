package extract

import (
	"fmt"
	"time"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// Default field values for records ingested via upload. These literals are
// part of the external contract; tests assert against them directly.
const (
	FallbackSupplier = "Uploaded invoice"
	FallbackCategory = "Uncategorised"
	SourceUpload     = "Upload"

	// ISODate is the date layout used everywhere in the record.
	ISODate = "2006-01-02"

	// dueDateOffsetDays is added to the issue date when no due date is known.
	dueDateOffsetDays = 14

	placeholderFormat = "Uploaded invoice file: %s. Extract key invoice details."
)

// WeekLabel derives the display label for a due date.
func WeekLabel(isoDueDate string) string {
	return "Week of " + isoDueDate
}

// PlaceholderText is the synthetic raw text used when an uploaded file
// yields no readable content.
func PlaceholderText(originalName string) string {
	return fmt.Sprintf(placeholderFormat, originalName)
}

// NewFallbackInvoice builds the fully-populated default record for an upload.
// Every field is set; the merge engine only ever overrides, never clears.
func NewFallbackInvoice(now time.Time, originalName string) domain.Invoice {
	issue := now.Format(ISODate)
	due := now.AddDate(0, 0, dueDateOffsetDays).Format(ISODate)
	return domain.Invoice{
		Supplier:      FallbackSupplier,
		InvoiceNumber: originalName,
		IssueDate:     issue,
		DueDate:       due,
		Amount:        0,
		Status:        domain.StatusUpcoming,
		Category:      FallbackCategory,
		Source:        SourceUpload,
		WeekLabel:     WeekLabel(due),
		Archived:      false,
	}
}
