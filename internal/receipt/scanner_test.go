package receipt

import (
	"strings"
	"testing"
	"time"

	"tally/internal/core"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestCleanModelJSON(t *testing.T) {
	want := `{"amount": 18.9, "description": "Corner Cafe"}`
	cases := []struct {
		name string
		in   string
	}{
		{"plain", want},
		{"surrounding whitespace", "\n  " + want + "  \n"},
		{"json fence", "```json\n" + want + "\n```"},
		{"bare fence", "```\n" + want + "\n```"},
		{"leading prose", "Here is the result:\n" + want},
		{"trailing prose", want + "\nLet me know if you need more."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanModelJSON(tc.in); got != want {
				t.Fatalf("cleanModelJSON = %q, want %q", got, want)
			}
		})
	}
}

func TestParseReceiptJSON(t *testing.T) {
	raw := `{"amount": 18.90, "description": "Corner Cafe", "category": "Food & Drink", "date": "2024-03-05"}`
	got, err := parseReceiptJSON(raw, testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Amount != 18.90 || got.Description != "Corner Cafe" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.Category != core.CategoryFoodDrink {
		t.Fatalf("category = %v", got.Category)
	}
	if got.Date.String() != "2024-03-05" {
		t.Fatalf("date = %v", got.Date)
	}
}

func TestParseReceiptJSONFenced(t *testing.T) {
	raw := "```json\n{\"amount\": 5, \"description\": \"Kiosk\", \"category\": \"Other\", \"date\": \"2024-03-01\"}\n```"
	got, err := parseReceiptJSON(raw, testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Amount != 5 || got.Description != "Kiosk" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestParseReceiptJSONFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "sorry, I cannot read this receipt"},
		{"zero amount", `{"amount": 0, "description": "Cafe", "category": "Other", "date": "2024-03-01"}`},
		{"negative amount", `{"amount": -3, "description": "Cafe", "category": "Other", "date": "2024-03-01"}`},
		{"blank description", `{"amount": 5, "description": "  ", "category": "Other", "date": "2024-03-01"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseReceiptJSON(tc.raw, testNow); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseReceiptJSONDegradesGracefully(t *testing.T) {
	// Unknown category falls back; unparseable date becomes today.
	raw := `{"amount": 12, "description": "Shop", "category": "Miscellaneous", "date": "05/03/2024"}`
	got, err := parseReceiptJSON(raw, testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Category != core.DefaultCategory {
		t.Fatalf("category = %v, want default", got.Category)
	}
	if got.Date.String() != "2024-03-15" {
		t.Fatalf("date = %v, want today", got.Date)
	}
}

func TestPromptConstrainsVocabulary(t *testing.T) {
	// The prompt must offer every spending category and never Income:
	// receipts are always expenses.
	for _, c := range core.Categories() {
		if c == core.CategoryIncome {
			if strings.Contains(prompt, string(c)) {
				t.Fatalf("prompt must not offer the Income category")
			}
			continue
		}
		if !strings.Contains(prompt, string(c)) {
			t.Fatalf("prompt missing category %q", c)
		}
	}
}
