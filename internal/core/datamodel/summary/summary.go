package summary

import (
	transactionDatamodel "github.com/savespree/savespree/internal/core/datamodel/transaction"
)

// MonthlySummary is the archived aggregate for one "YYYY-MM" month. The
// archive is append-only: entries are overwritten on recompute of the same
// month, never deleted automatically.
type MonthlySummary struct {
	TotalIncome   float64                            `json:"totalIncome"`
	TotalExpenses float64                            `json:"totalExpenses"`
	Transactions  []transactionDatamodel.Transaction `json:"transactions"`
}
