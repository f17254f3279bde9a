// Package export renders the transaction list as a tabular PDF report.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"

	"github.com/savespree/savespree/internal"
	"github.com/savespree/savespree/internal/ledger"
)

var ErrNoTransactions = internal.NewValidationError("there are no transactions to download", internal.ErrCodeNoTransactions)

const reportTitle = "SaveSpree - Recent Transactions"

var tableHeader = []string{"#", "Type", "Description", "Category", "Amount", "Date"}

// column widths in mm, summing to the printable width of an A4 page
var columnWidths = []float64{10, 25, 55, 35, 30, 30}

// WriteReport writes the PDF report for the given transactions. An empty
// list is a warning, not a report with an empty table.
func WriteReport(w io.Writer, transactions []ledger.Transaction, generatedAt time.Time) error {
	if len(transactions) == 0 {
		return ErrNoTransactions
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(190, 12, reportTitle, "", 1, "C", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(10, 22, 200, 22)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(63, 81, 181)
	pdf.SetTextColor(255, 255, 255)
	for i, title := range tableHeader {
		pdf.CellFormat(columnWidths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, t := range transactions {
		row := []string{
			fmt.Sprintf("%d", i+1),
			t.Type,
			t.Description,
			t.Category,
			FormatAmount(t.Amount),
			t.Date,
		}
		aligns := []string{"C", "L", "L", "L", "R", "C"}
		for col, cell := range row {
			pdf.CellFormat(columnWidths[col], 7, cell, "1", 0, aligns[col], false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetY(-15)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated on: %s", generatedAt.Format("1/2/2006, 3:04:05 PM")), "", 0, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}

// FormatAmount renders a transaction amount for the report, thousands
// separated with the currency prefix: "Rs. 27,750.5".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("Rs. %s", humanize.Commaf(amount))
}
