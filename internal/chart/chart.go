// Package chart derives the labeled numeric series behind the expense
// charts and renders them to PNG. It is a presentation-only consumer of
// ledger data.
package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/savespree/savespree/internal/ledger"
)

// ErrNoExpenseData means there is nothing to draw; callers skip the render.
var ErrNoExpenseData = fmt.Errorf("no expense data to chart")

// ExpensesByDate groups expense amounts by transaction date, in first-seen
// order.
func ExpensesByDate(transactions []ledger.Transaction) ([]string, []float64) {
	return groupExpenses(transactions, func(t ledger.Transaction) string { return t.Date })
}

// ExpensesByCategory groups expense amounts by category, in first-seen order.
func ExpensesByCategory(transactions []ledger.Transaction) ([]string, []float64) {
	return groupExpenses(transactions, func(t ledger.Transaction) string { return t.Category })
}

// FilterByDateRange keeps the transactions whose date falls inside the
// inclusive [start, end] range. A zero bound leaves that side open; two zero
// bounds return the input unchanged.
func FilterByDateRange(transactions []ledger.Transaction, start, end time.Time) []ledger.Transaction {
	if start.IsZero() && end.IsZero() {
		return transactions
	}

	var filtered []ledger.Transaction
	for _, t := range transactions {
		date, err := time.Parse(ledger.DateLayout, t.Date)
		if err != nil {
			continue
		}
		if !start.IsZero() && date.Before(start) {
			continue
		}
		if !end.IsZero() && date.After(end) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// RenderBar draws the expenses-over-time bar chart as a PNG.
func (r *Renderer) RenderBar(transactions []ledger.Transaction, w io.Writer) error {
	dates, amounts := ExpensesByDate(transactions)
	if len(dates) == 0 {
		return ErrNoExpenseData
	}

	bars := make([]gochart.Value, len(dates))
	for i, date := range dates {
		color := parseColor(r.barColor(date))
		bars[i] = gochart.Value{
			Label: date,
			Value: amounts[i],
			Style: gochart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
	}

	bar := gochart.BarChart{
		Title:    "Expenses Over Time",
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}
	if err := bar.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

// RenderPie draws the expenses-by-category pie chart as a PNG.
func (r *Renderer) RenderPie(transactions []ledger.Transaction, w io.Writer) error {
	categories, amounts := ExpensesByCategory(transactions)
	if len(categories) == 0 {
		return ErrNoExpenseData
	}

	values := make([]gochart.Value, len(categories))
	for i, name := range categories {
		values[i] = gochart.Value{
			Label: name,
			Value: amounts[i],
			Style: gochart.Style{FillColor: parseColor(r.pieColor(name))},
		}
	}

	pie := gochart.PieChart{
		Title:  "Expenses by Category",
		Width:  600,
		Height: 600,
		Values: values,
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

func groupExpenses(transactions []ledger.Transaction, keyOf func(ledger.Transaction) string) ([]string, []float64) {
	index := make(map[string]int)
	var keys []string
	var sums []float64
	for _, t := range transactions {
		if t.Type != ledger.TypeExpense {
			continue
		}
		key := keyOf(t)
		i, ok := index[key]
		if !ok {
			i = len(keys)
			index[key] = i
			keys = append(keys, key)
			sums = append(sums, 0)
		}
		sums[i] += t.Amount
	}
	return keys, sums
}

func parseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
