package charts

import (
	"bytes"
	"testing"

	"tally/internal/core"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCategoryPieEmpty(t *testing.T) {
	g := NewGenerator()

	png, err := g.CategoryPie(nil)
	if err != nil {
		t.Fatalf("CategoryPie() error = %v", err)
	}
	if png != nil {
		t.Errorf("expected no image for empty breakdown")
	}
}

func TestCategoryPieRendersPNG(t *testing.T) {
	g := NewGenerator()

	entries := []core.CategoryAmount{
		{Category: core.CategoryFoodDrink, Amount: 120.50},
		{Category: core.CategoryTransport, Amount: 45},
	}
	png, err := g.CategoryPie(entries)
	if err != nil {
		t.Fatalf("CategoryPie() error = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestBudgetBarsEmpty(t *testing.T) {
	g := NewGenerator()

	png, err := g.BudgetBars(nil)
	if err != nil {
		t.Fatalf("BudgetBars() error = %v", err)
	}
	if png != nil {
		t.Errorf("expected no image when no budgets are set")
	}
}

func TestBudgetBarsRendersPNG(t *testing.T) {
	g := NewGenerator()

	progress := []core.BudgetStatus{
		{Budget: core.Budget{Category: core.CategoryShopping, Limit: 200}, Spent: 150, Percentage: 75},
		{Budget: core.Budget{Category: core.CategoryFoodDrink, Limit: 100}, Spent: 130, Percentage: 130},
	}
	png, err := g.BudgetBars(progress)
	if err != nil {
		t.Fatalf("BudgetBars() error = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}
