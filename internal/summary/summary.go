// Package summary holds the pure derivation functions over a transaction
// list: spotlight categories and per-month aggregates.
package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/savespree/savespree/internal/ledger"
)

// None is rendered when no expense exists to derive from.
const None = "N/A"

// MonthTotals is one month's income/expense aggregate, rounded to 2
// fractional digits.
type MonthTotals struct {
	Income   float64
	Expenses float64
}

// MonthGroup is a per-month bucket of the live transaction list, in
// first-seen order. After a rollover the live list only covers the current
// month; historical months come from the archived summaries instead.
type MonthGroup struct {
	Month    string
	Income   float64
	Expenses float64
}

// HighestExpenseCategory sums expense amounts by category and renders the
// winner as "<name> - ₨<amount>". Ties keep the category seen first.
func HighestExpenseCategory(transactions []ledger.Transaction) string {
	totals, order := groupExpenses(transactions, func(t ledger.Transaction) float64 { return t.Amount })
	if len(order) == 0 {
		return None
	}

	best := order[0]
	for _, name := range order[1:] {
		if totals[name] > totals[best] {
			best = name
		}
	}
	return fmt.Sprintf("%s - ₨%s", best, formatNumber(totals[best]))
}

// MostFrequentExpenseCategory counts expense occurrences by category and
// renders the winner as "<name> - <n> times". Ties keep the category seen
// first.
func MostFrequentExpenseCategory(transactions []ledger.Transaction) string {
	counts, order := groupExpenses(transactions, func(ledger.Transaction) float64 { return 1 })
	if len(order) == 0 {
		return None
	}

	best := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return fmt.Sprintf("%s - %d times", best, int(counts[best]))
}

// MonthlyTotals sums the transactions whose date falls in the given
// "YYYY-MM" month, by type.
func MonthlyTotals(transactions []ledger.Transaction, month string) MonthTotals {
	var totals MonthTotals
	for _, t := range transactions {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		switch t.Type {
		case ledger.TypeIncome:
			totals.Income += t.Amount
		case ledger.TypeExpense:
			totals.Expenses += t.Amount
		}
	}
	totals.Income = round2(totals.Income)
	totals.Expenses = round2(totals.Expenses)
	return totals
}

// GroupByMonth partitions the list into per-month aggregate buckets, in
// first-seen order.
func GroupByMonth(transactions []ledger.Transaction) []MonthGroup {
	index := make(map[string]int)
	var groups []MonthGroup
	for _, t := range transactions {
		month := t.Month()
		i, ok := index[month]
		if !ok {
			i = len(groups)
			index[month] = i
			groups = append(groups, MonthGroup{Month: month})
		}
		switch t.Type {
		case ledger.TypeIncome:
			groups[i].Income += t.Amount
		case ledger.TypeExpense:
			groups[i].Expenses += t.Amount
		}
	}
	return groups
}

func groupExpenses(transactions []ledger.Transaction, weight func(ledger.Transaction) float64) (map[string]float64, []string) {
	totals := make(map[string]float64)
	var order []string
	for _, t := range transactions {
		if t.Type != ledger.TypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += weight(t)
	}
	return totals, order
}

// formatNumber trims trailing fractional zeros, so 150 renders as "150" and
// 150.5 as "150.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
