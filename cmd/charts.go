package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/savespree/savespree/internal/chart"
	"github.com/savespree/savespree/internal/ledger"
)

var (
	chartsStart     string
	chartsEnd       string
	chartsOutputDir string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the expense charts as PNG images",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		var start, end time.Time
		if chartsStart != "" {
			if start, err = time.Parse(ledger.DateLayout, chartsStart); err != nil {
				return fmt.Errorf("invalid --start date: %w", err)
			}
		}
		if chartsEnd != "" {
			if end, err = time.Parse(ledger.DateLayout, chartsEnd); err != nil {
				return fmt.Errorf("invalid --end date: %w", err)
			}
		}

		outputDir := chartsOutputDir
		if outputDir == "" {
			outputDir = app.Config.Charts.OutputDir
		}

		transactions := chart.FilterByDateRange(app.Ledger.Transactions(), start, end)
		if err := app.renderCharts(transactions, outputDir); err != nil {
			return err
		}

		fmt.Printf("Charts written to %s\n", outputDir)
		return nil
	},
}

func init() {
	chartsCmd.Flags().StringVar(&chartsStart, "start", "", "start of the date range (YYYY-MM-DD)")
	chartsCmd.Flags().StringVar(&chartsEnd, "end", "", "end of the date range (YYYY-MM-DD)")
	chartsCmd.Flags().StringVar(&chartsOutputDir, "output-dir", "", "directory for the images (defaults to charts.output_dir)")
}
