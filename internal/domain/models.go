package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is a supplier invoice record. Dates are stored as ISO YYYY-MM-DD
// strings; this matches the wire format the extraction pipeline produces and
// keeps lexicographic ordering usable for due-date comparisons.
type Invoice struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Supplier      string     `db:"supplier" json:"supplier"`
	InvoiceNumber string     `db:"invoice_number" json:"invoice_number"`
	IssueDate     string     `db:"issue_date" json:"issue_date"`
	DueDate       string     `db:"due_date" json:"due_date"`
	Amount        float64    `db:"amount" json:"amount"`
	Status        string     `db:"status" json:"status"`
	Category      string     `db:"category" json:"category"`
	Source        string     `db:"source" json:"source"`
	WeekLabel     string     `db:"week_label" json:"week_label"`
	Archived      bool       `db:"archived" json:"archived"`
	FileID        *uuid.UUID `db:"file_id" json:"file_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded invoice file.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// CashflowSummary holds aggregate metrics over unarchived invoices.
type CashflowSummary struct {
	TotalOutstanding float64      `db:"total_outstanding" json:"total_outstanding"`
	TotalPaid        float64      `db:"total_paid" json:"total_paid"`
	InvoiceCount     int          `db:"invoice_count" json:"invoice_count"`
	PaidCount        int          `db:"paid_count" json:"paid_count"`
	OverdueCount     int          `db:"overdue_count" json:"overdue_count"`
	DueWithin7Days   float64      `db:"due_within_7_days" json:"due_within_7_days"`
	DueWithin14Days  float64      `db:"due_within_14_days" json:"due_within_14_days"`
	Weeks            []WeekBucket `json:"weeks"`
}

// WeekBucket groups outstanding invoice amounts by week label.
type WeekBucket struct {
	WeekLabel string  `db:"week_label" json:"week_label"`
	Amount    float64 `db:"amount" json:"amount"`
	Count     int     `db:"count" json:"count"`
}

// CashflowReport is a CashflowSummary with an optional LLM narration.
type CashflowReport struct {
	Summary   CashflowSummary `json:"summary"`
	Narrative string          `json:"narrative,omitempty"`
}
