package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendDueReminder(ctx context.Context, toEmail string, invoices []domain.Invoice) error {
	subject := fmt.Sprintf("%d invoice(s) due in the next 7 days", len(invoices))
	htmlBody := buildDueReminderHTML(invoices)
	textBody := buildDueReminderText(invoices)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDueReminderText(invoices []domain.Invoice) string {
	var b strings.Builder
	b.WriteString("The following invoices are due within the next 7 days:\n\n")
	var total float64
	for _, inv := range invoices {
		fmt.Fprintf(&b, "- %s (%s): %.2f due %s\n",
			inv.Supplier, inv.InvoiceNumber, inv.Amount, inv.DueDate)
		total += inv.Amount
	}
	fmt.Fprintf(&b, "\nTotal due: %.2f\n", total)
	return b.String()
}

func buildDueReminderHTML(invoices []domain.Invoice) string {
	var rows strings.Builder
	var total float64
	for _, inv := range invoices {
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td>
<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td></tr>`,
			inv.Supplier, inv.InvoiceNumber, inv.Amount, inv.DueDate)
		total += inv.Amount
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoices due in the next 7 days</h2>
  <table style="width: 100%%; border-collapse: collapse;">
    <thead>
      <tr>
        <th style="padding: 8px; text-align: left; border-bottom: 2px solid #333;">Supplier</th>
        <th style="padding: 8px; text-align: left; border-bottom: 2px solid #333;">Invoice</th>
        <th style="padding: 8px; text-align: right; border-bottom: 2px solid #333;">Amount</th>
        <th style="padding: 8px; text-align: left; border-bottom: 2px solid #333;">Due</th>
      </tr>
    </thead>
    <tbody>%s</tbody>
  </table>
  <p style="font-weight: bold;">Total due: %.2f</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Cashflow - Supplier Invoice Tracker</p>
</body>
</html>`, rows.String(), total)
}
