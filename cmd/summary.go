package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/savespree/savespree/internal/ledger"
	"github.com/savespree/savespree/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the financial summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		archived, err := app.Ledger.MonthlySummaries()
		if err != nil {
			return err
		}
		if len(archived) > 0 {
			months := make([]string, 0, len(archived))
			for month := range archived {
				months = append(months, month)
			}
			sort.Strings(months)

			fmt.Println("Past months:")
			for _, month := range months {
				s := archived[month]
				fmt.Printf("  %s  income %s%.2f  expenses %s%.2f  (%d transactions)\n",
					month, currencySymbol, s.TotalIncome, currencySymbol, s.TotalExpenses, len(s.Transactions))
			}
			fmt.Println()
		}

		transactions := app.Ledger.Transactions()
		if groups := summary.GroupByMonth(transactions); len(groups) > 0 {
			fmt.Println("Live months:")
			for _, g := range groups {
				fmt.Printf("  %s  income %s%.2f  expenses %s%.2f\n",
					g.Month, currencySymbol, g.Income, currencySymbol, g.Expenses)
			}
			fmt.Println()
		}

		fmt.Printf("Highest expense category:       %s\n", summary.HighestExpenseCategory(transactions))
		fmt.Printf("Most frequent expense category: %s\n", summary.MostFrequentExpenseCategory(transactions))

		currentMonth := time.Now().Format(ledger.MonthLayout)
		totals := summary.MonthlyTotals(transactions, currentMonth)
		fmt.Printf("This month (%s):  income %s%.2f  expenses %s%.2f\n",
			currentMonth, currencySymbol, totals.Income, currencySymbol, totals.Expenses)
		return nil
	},
}
