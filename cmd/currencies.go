package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List the currency codes accepted by add and update",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		codes, err := app.Converter.Currencies(cmd.Context(), app.Config.Currency.BaseCurrency)
		if err != nil {
			return err
		}
		for _, code := range codes {
			fmt.Println(code)
		}
		return nil
	},
}
