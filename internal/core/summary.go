package core

import (
	"sort"
	"time"
)

type (
	// Totals aggregates the whole transaction history.
	Totals struct {
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Balance  float64 `json:"balance"`
	}

	// CategoryAmount is one row of a per-category breakdown.
	CategoryAmount struct {
		Category Category `json:"category"`
		Amount   float64  `json:"amount"`
	}

	// BudgetStatus pairs a budget with its current-month spend.
	BudgetStatus struct {
		Budget
		Spent      float64 `json:"spent"`
		Percentage float64 `json:"percentage"`
	}
)

// Summarize computes income, expenses and balance over the full history.
// An empty slice yields all zeros.
func Summarize(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			t.Income += tx.Amount
		case TypeExpense:
			t.Expenses += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expenses
	return t
}

// CategoryBreakdown groups expense transactions by category and sums their
// amounts. Categories without a matching transaction do not appear.
func CategoryBreakdown(txs []Transaction) map[Category]float64 {
	out := make(map[Category]float64)
	for _, tx := range txs {
		if tx.Type == TypeExpense {
			out[tx.Category] += tx.Amount
		}
	}
	return out
}

// MonthSpending groups expense spend by category for ref's calendar month,
// from the 1st through ref's own day inclusive. Transactions dated before
// the 1st or after ref are excluded.
func MonthSpending(txs []Transaction, ref time.Time) map[Category]float64 {
	start := NewDate(ref.Year(), ref.Month(), 1)
	end := DateOf(ref)
	out := make(map[Category]float64)
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		if tx.Date.Before(start.Time) || tx.Date.After(end.Time) {
			continue
		}
		out[tx.Category] += tx.Amount
	}
	return out
}

// BudgetProgress computes current-month spend and percentage for every
// budget, preserving the budget collection's order. A zero limit always
// yields percentage 0.
func BudgetProgress(budgets []Budget, txs []Transaction, ref time.Time) []BudgetStatus {
	spending := MonthSpending(txs, ref)
	out := make([]BudgetStatus, len(budgets))
	for i, b := range budgets {
		spent := spending[b.Category]
		pct := 0.0
		if b.Limit > 0 {
			pct = spent / b.Limit * 100
		}
		out[i] = BudgetStatus{Budget: b, Spent: spent, Percentage: pct}
	}
	return out
}

// BreakdownEntries flattens a breakdown map into a deterministic slice,
// largest amounts first with name as tiebreaker. Display and chart code
// need a stable order that map iteration cannot give.
func BreakdownEntries(m map[Category]float64) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(m))
	for c, v := range m {
		out = append(out, CategoryAmount{Category: c, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
