package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

func sampleInvoices() []domain.Invoice {
	return []domain.Invoice{
		{
			ID:            uuid.New(),
			Supplier:      "Acme Corp",
			InvoiceNumber: "INV-001",
			IssueDate:     "2024-11-01",
			DueDate:       "2024-11-15",
			Amount:        1234.5,
			Status:        "Upcoming",
			Category:      "Hardware",
			Source:        "Upload",
			WeekLabel:     "Week of 2024-11-15",
			CreatedAt:     time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            uuid.New(),
			Supplier:      "Globex, Inc",
			InvoiceNumber: "INV-002",
			IssueDate:     "2024-11-02",
			DueDate:       "2024-11-20",
			Amount:        88,
			Status:        "Paid",
			Category:      "Uncategorised",
			Source:        "Manual",
			WeekLabel:     "Week of 2024-11-20",
			Archived:      true,
			CreatedAt:     time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 11)
	assert.Equal(t, "Supplier", row[0])
	assert.Equal(t, "Created At", row[10])
}

func TestWriteInvoices(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteInvoices(sampleInvoices()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "Acme Corp", first[0])
	assert.Equal(t, "INV-001", first[1])
	assert.Equal(t, "1234.50", first[4])
	assert.Equal(t, "false", first[9])

	second := rows[2]
	// Comma in supplier name survives the round trip.
	assert.Equal(t, "Globex, Inc", second[0])
	assert.Equal(t, "true", second[9])
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleInvoices())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Supplier", rows[0][0])
	assert.Equal(t, "Acme Corp", rows[1][0])
	assert.Equal(t, "INV-002", rows[2][1])
}
