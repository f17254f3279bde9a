package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/savespree/savespree/internal/ledger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the ledger with sample data",
	Long:  `Seed the ledger with sample transactions for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Fatalf("failed to init app: %v", err)
		}

		if len(app.Ledger.Transactions()) > 0 {
			fmt.Println("Ledger already has transactions; nothing to seed.")
			return
		}

		samples := []ledger.TransactionDTO{
			{Type: ledger.TypeIncome, Amount: 85000, Date: "2026-08-01", Description: "Monthly salary", Category: "Salary"},
			{Type: ledger.TypeExpense, Amount: 25000, Date: "2026-08-02", Description: "August rent", Category: "Rent"},
			{Type: ledger.TypeExpense, Amount: 1450, Date: "2026-08-05", Description: "Groceries", Category: "Food"},
			{Type: ledger.TypeExpense, Amount: 799, Date: "2026-08-10", Description: "Cinema tickets", Category: "Entertainment"},
			{Type: ledger.TypeExpense, Amount: 2100, Date: "2026-08-14", Description: "Dinner with friends", Category: "Food"},
		}

		ctx := context.Background()
		for _, dto := range samples {
			if _, err := app.Ledger.Add(ctx, dto); err != nil {
				log.Fatalf("failed to seed transaction %q: %v", dto.Description, err)
			}
			fmt.Printf("Seeded transaction: %s\n", dto.Description)
		}

		fmt.Println("Sample transactions seeded successfully")
	},
}
