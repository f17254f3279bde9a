package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/savespree/savespree/internal"
	"github.com/savespree/savespree/internal/ledger"
)

var (
	addType        string
	addAmount      float64
	addDate        string
	addDescription string
	addCategory    string
	addCurrency    string

	listSearch string
	deleteYes  bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		result, err := app.Ledger.Add(cmd.Context(), transactionDTO())
		if err != nil {
			return surfaceWarning(err)
		}

		app.reportWarnings(result)
		fmt.Printf("%s of %s%.1f recorded (%s)\n",
			result.Transaction.Type, currencySymbol, result.Transaction.Amount, result.Transaction.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <transaction-id>",
	Short: "Edit a transaction in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		result, err := app.Ledger.Update(cmd.Context(), args[0], transactionDTO())
		if err != nil {
			return surfaceWarning(err)
		}

		app.reportWarnings(result)
		fmt.Printf("Transaction %s updated\n", result.Transaction.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteYes {
			ok := defaultDialog.Confirm("Are you sure?",
				"Do you really want to delete this transaction? This action cannot be undone.")
			if !ok {
				fmt.Println("Kept the transaction.")
				return nil
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.Ledger.Delete(cmd.Context(), args[0]); err != nil {
			return surfaceWarning(err)
		}
		fmt.Println("Transaction removed successfully.")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions and the running balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		transactions := app.Ledger.Search(listSearch)
		for _, t := range transactions {
			sign := "+"
			if t.Type == ledger.TypeExpense {
				sign = "-"
			}
			fmt.Printf("%-36s  %s - %s (%s)  %s%s%.1f  %s\n",
				t.ID, t.Type, t.Description, t.Category, sign, currencySymbol, t.Amount, t.Date)
		}

		totalIncome, totalExpenses := app.Ledger.Totals()
		fmt.Printf("\nTotal Income:   %s%.1f\n", currencySymbol, totalIncome)
		fmt.Printf("Total Expenses: %s%.1f\n", currencySymbol, totalExpenses)
		fmt.Printf("Balance:        %s%.1f\n", currencySymbol, app.Ledger.Balance())
		if app.Budget.Ceiling() > 0 {
			fmt.Printf("Budget used:    %.0f%%\n", app.Budget.Progress(totalExpenses))
		}
		return nil
	},
}

const currencySymbol = "₨"

func transactionDTO() ledger.TransactionDTO {
	return ledger.TransactionDTO{
		Type:        addType,
		Amount:      addAmount,
		Date:        addDate,
		Description: addDescription,
		Category:    addCategory,
		Currency:    addCurrency,
	}
}

// surfaceWarning prints validation warnings instead of failing the command:
// bad input aborts the mutation but is not a fault.
func surfaceWarning(err error) error {
	if appErr, ok := internal.IsAppError(err); ok && appErr.IsWarning() {
		fmt.Printf("Warning: %s\n", appErr.Message)
		return nil
	}
	return err
}

func registerTransactionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&addType, "type", ledger.TypeExpense, "transaction type (Income or Expense)")
	cmd.Flags().Float64Var(&addAmount, "amount", 0, "amount in the source currency")
	cmd.Flags().StringVar(&addDate, "date", time.Now().Format(ledger.DateLayout), "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&addDescription, "description", "", "what the transaction was for")
	cmd.Flags().StringVar(&addCategory, "category", "", "category name")
	cmd.Flags().StringVar(&addCurrency, "currency", "", "source currency code (defaults to the base currency)")
}

func init() {
	registerTransactionFlags(addCmd)
	registerTransactionFlags(updateCmd)
	listCmd.Flags().StringVar(&listSearch, "search", "", "filter by description or category")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
