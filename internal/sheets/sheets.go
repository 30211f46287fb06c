// Package sheets exports the transaction collection to a Google Sheets
// spreadsheet. The export mirrors the persistence model: the whole tab is
// rewritten from the full collection, never patched row by row.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tally/internal/core"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates a Sheets client from environment variables.
// Required: SHEETS_SPREADSHEET_ID.
// Credentials: SHEETS_CREDENTIALS_JSON, SHEETS_CREDENTIALS_FILE, or the
// standard GOOGLE_APPLICATION_CREDENTIALS.
// Optional: SHEETS_TAB_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("SHEETS_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing SHEETS_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("SHEETS_TAB_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets service using service account
// credentials from the environment.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credentialsJSON := strings.TrimSpace(os.Getenv("SHEETS_CREDENTIALS_JSON"))
	credentialsFile := strings.TrimSpace(os.Getenv("SHEETS_CREDENTIALS_FILE"))
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var creds []byte
	switch {
	case credentialsJSON != "":
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		creds = data
	default:
		return nil, errors.New("missing sheets credentials (set SHEETS_CREDENTIALS_JSON, SHEETS_CREDENTIALS_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReplaceAll clears the export tab and rewrites it: a header row followed by
// one row per transaction in collection order (newest first).
func (c *Client) ReplaceAll(ctx context.Context, txs []core.Transaction) error {
	rng := c.sheetName + "!A:F"

	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng,
		&gsheet.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	vr := &gsheet.ValueRange{Values: exportRows(txs)}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.sheetName+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}

	slog.InfoContext(ctx, "Transactions exported to sheet",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"rows", len(txs))
	return nil
}

// exportRows renders the header plus one row per transaction.
func exportRows(txs []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"ID", "Date", "Description", "Category", "Type", "Amount"})
	for _, tx := range txs {
		rows = append(rows, []any{
			tx.ID,
			tx.Date.String(),
			tx.Description,
			string(tx.Category),
			string(tx.Type),
			tx.Amount,
		})
	}
	return rows
}
