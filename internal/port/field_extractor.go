package port

import "context"

// ExtractedFields is a partial invoice signal from a single extractor.
// A nil field means "no signal", never zero or empty string.
type ExtractedFields struct {
	Supplier      *string
	InvoiceNumber *string
	IssueDate     *string
	DueDate       *string
	Amount        *float64
	Status        *string
	Category      *string
}

// FieldExtractor abstracts AI-based invoice field extraction from raw text.
// Implementations may fail (network, timeout, malformed response); callers
// treat any error as "no result".
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (*ExtractedFields, error)
}
