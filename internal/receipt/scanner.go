// Package receipt extracts transaction fields from receipt photos using the
// Gemini API. This is the system's only network boundary; every failure mode
// collapses to "no result" for the caller.
package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"tally/internal/core"
)

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.5-flash"

const prompt = "Extract transaction details from this receipt: Total Amount, " +
	"Description (Store/Merchant Name), Category (pick from: Food & Drink, " +
	"Shopping, Housing, Transport, Travel, Entertainment, Health, Utilities, " +
	"Other), and Date (YYYY-MM-DD)."

type Scanner struct {
	client *genai.Client
	model  string
}

// NewScanner builds a scanner authenticated with the given API key.
func NewScanner(ctx context.Context, apiKey, model string) (*Scanner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Scanner{client: client, model: model}, nil
}

// Scan sends a JPEG receipt image to the model and returns the extracted
// fields. The response is requested as structured JSON with all four fields
// required; anything the model returns is still cleaned and re-validated
// before it is trusted.
func (s *Scanner) Scan(ctx context.Context, image []byte) (*core.ReceiptData, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						MIMEType: "image/jpeg",
						Data:     image,
					},
				},
				{Text: prompt},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"amount":      {Type: genai.TypeNumber},
				"description": {Type: genai.TypeString},
				"category":    {Type: genai.TypeString},
				"date":        {Type: genai.TypeString},
			},
			Required: []string{"amount", "description", "category", "date"},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return parseReceiptJSON(raw, time.Now())
}

// receiptWire is the model's JSON response shape.
type receiptWire struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// parseReceiptJSON cleans and validates a model response. Amount and
// description must be usable; category and date degrade gracefully (fallback
// category, today's date) since the user reviews the pre-filled form anyway.
func parseReceiptJSON(raw string, now time.Time) (*core.ReceiptData, error) {
	var wire receiptWire
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &wire); err != nil {
		return nil, fmt.Errorf("unmarshal receipt JSON: %w", err)
	}

	if wire.Amount <= 0 {
		return nil, fmt.Errorf("extracted amount %v is not positive", wire.Amount)
	}
	description := strings.TrimSpace(wire.Description)
	if description == "" {
		return nil, fmt.Errorf("extracted description is empty")
	}

	category := core.Category(strings.TrimSpace(wire.Category))
	if !category.Valid() {
		category = core.DefaultCategory
	}

	date, err := core.ParseDate(wire.Date)
	if err != nil {
		date = core.DateOf(now)
	}

	return &core.ReceiptData{
		Amount:      wire.Amount,
		Description: description,
		Category:    category,
		Date:        date,
	}, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk that the model
// sometimes emits despite the structured-response instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost object if junk remains around it.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
