package transaction

// Transaction is the stored form of a ledger entry. Date keeps the
// day-precision "YYYY-MM-DD" form so month grouping stays a prefix match.
type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Currency    string  `json:"currency,omitempty"`
}
