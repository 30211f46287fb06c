// Package charts renders the aggregate views as PNG images: a pie chart of
// spending by category and a bar chart of budget consumption.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"tally/internal/core"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders the expense breakdown as a pie chart. Entries are
// expected in display order (largest first). Returns nil bytes when there is
// nothing to draw.
func (g *Generator) CategoryPie(entries []core.CategoryAmount) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, e := range entries {
		total += e.Amount
	}
	if total <= 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		percentage := e.Amount / total * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f (%.1f%%)", e.Category, e.Amount, percentage),
			Value: e.Amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:  "Spending by Category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// BudgetBars renders budget consumption as one bar per budget. Bars past
// their limit are drawn red. Returns nil bytes when no budgets are set.
func (g *Generator) BudgetBars(progress []core.BudgetStatus) ([]byte, error) {
	if len(progress) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(progress))
	for _, p := range progress {
		color := chart.ColorGreen
		if p.Percentage >= 100 {
			color = chart.ColorRed
		} else if p.Percentage >= 80 {
			color = chart.ColorOrange
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: %.2f / %.2f", p.Category, p.Spent, p.Limit),
			Value: p.Percentage,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color.WithAlpha(160),
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	graph := chart.BarChart{
		Title: "Budget Usage (%)",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f%%", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render budget bar chart: %w", err)
	}
	return buffer.Bytes(), nil
}
