package extract

// BuildFieldPrompt returns the instruction prepended to raw invoice text when
// asking the completion service for structured fields.
func BuildFieldPrompt() string {
	return `You are an invoice data extraction assistant. Read the document text below and extract the invoice fields you can find.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object.

The JSON object may contain any of these keys (omit a key entirely when the document gives no signal for it):
{
  "supplier": "",
  "invoice_number": "",
  "issue_date": "YYYY-MM-DD",
  "due_date": "YYYY-MM-DD",
  "amount": 0,
  "status": "",
  "category": ""
}

Dates must be ISO formatted (YYYY-MM-DD). "amount" is the total payable as a plain number with no currency symbols or thousands separators.

Document text follows:`
}
