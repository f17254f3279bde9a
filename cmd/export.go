package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/savespree/savespree/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transactions as a PDF report",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		output := exportOutput
		if output == "" {
			output = app.Config.Export.OutputPath
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.WriteReport(f, app.Ledger.Transactions(), time.Now()); err != nil {
			os.Remove(output)
			return surfaceWarning(err)
		}

		fmt.Printf("Report written to %s\n", output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (defaults to export.output_path)")
}
