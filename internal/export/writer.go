package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Supplier",
	"Invoice Number",
	"Issue Date",
	"Due Date",
	"Amount",
	"Status",
	"Category",
	"Source",
	"Week",
	"Archived",
	"Created At",
}

// Writer wraps csv.Writer for exporting invoices as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	return []string{
		inv.Supplier,
		inv.InvoiceNumber,
		inv.IssueDate,
		inv.DueDate,
		strconv.FormatFloat(inv.Amount, 'f', 2, 64),
		inv.Status,
		inv.Category,
		inv.Source,
		inv.WeekLabel,
		strconv.FormatBool(inv.Archived),
		inv.CreatedAt.Format(time.RFC3339),
	}
}
