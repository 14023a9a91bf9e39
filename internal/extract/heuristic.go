package extract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

// Label synonyms per field, in priority order. The first synonym that matches
// any line wins; a label substring inside unrelated prose is a genuine match
// (known precision tradeoff).
var (
	supplierLabels      = []string{"supplier"}
	invoiceNumberLabels = []string{"invoice number", "invoice no", "inv"}
	issueDateLabels     = []string{"issue date"}
	dueDateLabels       = []string{"due date"}
	amountLabels        = []string{"amount", "total", "balance"}
)

// dateLayouts are tried in order when normalizing heuristic date values.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"02.01.2006",
}

// ExtractHeuristic scans raw text line-by-line for labeled invoice fields.
// Pure; never fails. Empty or unlabeled text yields an all-absent result.
// Status and category are never produced here.
func ExtractHeuristic(text string) port.ExtractedFields {
	var out port.ExtractedFields
	lines := splitLines(text)
	if len(lines) == 0 {
		return out
	}

	if v, ok := findLabeledValue(lines, supplierLabels); ok {
		out.Supplier = &v
	}
	if v, ok := findLabeledValue(lines, invoiceNumberLabels); ok {
		out.InvoiceNumber = &v
	}
	if v, ok := findLabeledValue(lines, issueDateLabels); ok {
		if iso, ok := normalizeDate(v); ok {
			out.IssueDate = &iso
		}
	}
	if v, ok := findLabeledValue(lines, dueDateLabels); ok {
		if iso, ok := normalizeDate(v); ok {
			out.DueDate = &iso
		}
	}
	if v, ok := findLabeledValue(lines, amountLabels); ok {
		if amount, ok := parseAmount(v); ok {
			out.Amount = &amount
		}
	}
	return out
}

func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

// findLabeledValue returns the value from the first line containing any of
// the labels, trying labels in priority order. The first matching line is
// authoritative even when it carries no usable value: the field is then
// absent rather than taken from a later line. The value is everything after
// the first ':' or '-' on the line, trimmed.
func findLabeledValue(lines []string, labels []string) (string, bool) {
	for _, label := range labels {
		for _, line := range lines {
			if !strings.Contains(strings.ToLower(line), label) {
				continue
			}
			idx := strings.IndexAny(line, ":-")
			if idx < 0 {
				return "", false
			}
			value := strings.TrimSpace(line[idx+1:])
			return value, value != ""
		}
	}
	return "", false
}

// normalizeDate parses a raw date value and reformats it as YYYY-MM-DD.
func normalizeDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(ISODate), true
		}
	}
	return "", false
}

// parseAmount strips everything but digits, dots, and minus signs, then
// parses the remainder as a float. Non-finite results are rejected.
func parseAmount(value string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, value)
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	return amount, true
}
