package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// WriteXLSX returns an XLSX workbook with one "Invoices" sheet holding the
// same columns as the CSV export.
func WriteXLSX(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Invoices"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx := range invoices {
		row := invoiceToRow(&invoices[rowIdx])
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", rowIdx+2, err)
			}
		}
		// Keep the amount numeric so spreadsheet sums work.
		amountCell, _ := excelize.CoordinatesToCellName(5, rowIdx+2)
		_ = f.SetCellValue(sheet, amountCell, invoices[rowIdx].Amount)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
