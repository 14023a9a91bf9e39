package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/extract"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements port.FieldExtractor and port.CashflowNarrator using the
// OpenAI Chat Completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a completion client from the extractor config.
func NewClient(cfg *config.ExtractorConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint
// (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// ExtractFields sends raw document text to the completion service and parses
// the structured response. Every returned field has passed validation:
// strings are non-empty after trimming, the amount is finite. Dates are
// passed through exactly as the service returned them.
func (c *Client) ExtractFields(ctx context.Context, text string) (*port.ExtractedFields, error) {
	content, err := c.complete(ctx, extract.BuildFieldPrompt()+"\n\n"+text, true)
	if err != nil {
		return nil, err
	}

	var raw rawFields
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parsing extraction JSON: %w (raw: %s)", err, truncate(content, 500))
	}
	return raw.sanitize(), nil
}

const narrativePrompt = `You are a finance assistant. Given the JSON cashflow metrics below, write a short plain-English narrative (2-4 sentences) for a small business owner: what is outstanding, what is due soon, and anything overdue. No markdown, no bullet points.

Metrics:`

// Narrate asks the completion service for a prose summary of the metrics.
func (c *Client) Narrate(ctx context.Context, summary domain.CashflowSummary) (string, error) {
	metrics, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshaling metrics: %w", err)
	}
	content, err := c.complete(ctx, narrativePrompt+"\n\n"+string(metrics), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// complete performs one chat-completion round trip and returns the message
// content of the first choice.
func (c *Client) complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
	}
	if jsonMode {
		reqBody["response_format"] = map[string]interface{}{"type": "json_object"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawFields is the unvalidated field payload from the completion service.
// amount is kept raw because models occasionally return it as a string.
type rawFields struct {
	Supplier      string          `json:"supplier"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	Amount        json.RawMessage `json:"amount"`
	Status        string          `json:"status"`
	Category      string          `json:"category"`
}

func (r *rawFields) sanitize() *port.ExtractedFields {
	out := &port.ExtractedFields{
		Supplier:      cleanString(r.Supplier),
		InvoiceNumber: cleanString(r.InvoiceNumber),
		IssueDate:     cleanString(r.IssueDate),
		DueDate:       cleanString(r.DueDate),
		Status:        cleanString(r.Status),
		Category:      cleanString(r.Category),
	}
	if amount, ok := coerceAmount(r.Amount); ok {
		out.Amount = &amount
	}
	return out
}

// cleanString accepts a value only if it is non-empty after trimming; the
// value itself is passed through unmodified.
func cleanString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// coerceAmount accepts a JSON number or a numeric string, rejecting anything
// non-finite.
func coerceAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finite(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
