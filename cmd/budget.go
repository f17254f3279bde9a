package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the global budget ceiling",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the budget ceiling",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		amount, err := app.Budget.SetBudget(args[0])
		if err != nil {
			return surfaceWarning(err)
		}

		fmt.Printf("Budget Set: %s%.1f\n", currencySymbol, amount)
		return nil
	},
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the ceiling and how much of it is used",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		ceiling := app.Budget.Ceiling()
		if ceiling <= 0 {
			fmt.Println("No budget set.")
			return nil
		}

		_, totalExpenses := app.Ledger.Totals()
		fmt.Printf("Budget Set: %s%.1f\n", currencySymbol, ceiling)
		fmt.Printf("Used: %s%.1f (%.0f%%)\n", currencySymbol, totalExpenses, app.Budget.Progress(totalExpenses))
		if !app.Budget.Check(totalExpenses) {
			fmt.Println("Warning: you have exceeded your budget limit!")
		}
		return nil
	},
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetShowCmd)
}
