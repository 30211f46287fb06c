package core

import (
	"testing"
	"time"
)

func tx(id string, amount float64, cat Category, date Date, typ TransactionType) Transaction {
	return Transaction{
		ID:          id,
		Amount:      amount,
		Description: "test " + id,
		Category:    cat,
		Date:        date,
		Type:        typ,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.Income != 0 || got.Expenses != 0 || got.Balance != 0 {
		t.Fatalf("empty history should be all zeros, got %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	txs := []Transaction{
		tx("1", 1000, CategoryIncome, d, TypeIncome),
		tx("2", 42.50, CategoryFoodDrink, d, TypeExpense),
		tx("3", 57.50, CategoryShopping, d, TypeExpense),
		tx("4", 200, CategoryIncome, d, TypeIncome),
	}
	got := Summarize(txs)
	if got.Income != 1200 {
		t.Fatalf("income = %v, want 1200", got.Income)
	}
	if got.Expenses != 100 {
		t.Fatalf("expenses = %v, want 100", got.Expenses)
	}
	if got.Balance != got.Income-got.Expenses {
		t.Fatalf("balance = %v, want income-expenses = %v", got.Balance, got.Income-got.Expenses)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	txs := []Transaction{
		tx("1", 42.50, CategoryFoodDrink, d, TypeExpense),
		tx("2", 10, CategoryFoodDrink, d, TypeExpense),
		tx("3", 99, CategoryIncome, d, TypeIncome), // income never appears
		tx("4", 20, CategoryTransport, d, TypeExpense),
	}
	got := CategoryBreakdown(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d (%v)", len(got), got)
	}
	if got[CategoryFoodDrink] != 52.50 {
		t.Fatalf("Food & Drink = %v, want 52.50", got[CategoryFoodDrink])
	}
	if got[CategoryTransport] != 20 {
		t.Fatalf("Transport = %v, want 20", got[CategoryTransport])
	}
	if _, ok := got[CategoryIncome]; ok {
		t.Fatalf("income category must not appear in expense breakdown")
	}
}

func TestMonthSpendingWindow(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	txs := []Transaction{
		tx("1", 30, CategoryShopping, NewDate(2024, time.March, 1), TypeExpense),   // first day, included
		tx("2", 45, CategoryShopping, NewDate(2024, time.March, 15), TypeExpense),  // ref day, included
		tx("3", 99, CategoryShopping, NewDate(2024, time.February, 29), TypeExpense), // previous month
		tx("4", 77, CategoryShopping, NewDate(2024, time.March, 20), TypeExpense),  // after ref
		tx("5", 50, CategoryIncome, NewDate(2024, time.March, 10), TypeIncome),     // income ignored
	}
	got := MonthSpending(txs, ref)
	if got[CategoryShopping] != 75 {
		t.Fatalf("Shopping month spend = %v, want 75", got[CategoryShopping])
	}
	if len(got) != 1 {
		t.Fatalf("expected only Shopping, got %v", got)
	}
}

func TestBudgetProgress(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	budgets := []Budget{
		{Category: CategoryShopping, Limit: 100},
		{Category: CategoryTravel, Limit: 500},
	}
	txs := []Transaction{
		tx("1", 30, CategoryShopping, NewDate(2024, time.March, 2), TypeExpense),
		tx("2", 45, CategoryShopping, NewDate(2024, time.March, 10), TypeExpense),
	}
	got := BudgetProgress(budgets, txs, ref)
	if len(got) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(got))
	}
	if got[0].Spent != 75 || got[0].Percentage != 75 {
		t.Fatalf("Shopping progress = spent %v pct %v, want 75/75", got[0].Spent, got[0].Percentage)
	}
	if got[1].Spent != 0 || got[1].Percentage != 0 {
		t.Fatalf("Travel progress = spent %v pct %v, want 0/0", got[1].Spent, got[1].Percentage)
	}
}

func TestBudgetProgressZeroLimit(t *testing.T) {
	// A zero limit can only exist transiently (upsert rejects it), but the
	// computation must still never divide by it.
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	budgets := []Budget{{Category: CategoryShopping, Limit: 0}}
	txs := []Transaction{
		tx("1", 30, CategoryShopping, NewDate(2024, time.March, 2), TypeExpense),
	}
	got := BudgetProgress(budgets, txs, ref)
	if got[0].Percentage != 0 {
		t.Fatalf("percentage = %v, want 0 for zero limit", got[0].Percentage)
	}
}

func TestBreakdownEntriesOrder(t *testing.T) {
	m := map[Category]float64{
		CategoryTransport: 20,
		CategoryFoodDrink: 52.5,
		CategoryHealth:    20,
	}
	got := BreakdownEntries(m)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Category != CategoryFoodDrink {
		t.Fatalf("largest first, got %v", got[0].Category)
	}
	// Equal amounts fall back to name order.
	if got[1].Category != CategoryHealth || got[2].Category != CategoryTransport {
		t.Fatalf("tie order wrong: %v, %v", got[1].Category, got[2].Category)
	}
}
