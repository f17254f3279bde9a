package ledger

import (
	"strings"
	"time"

	"github.com/savespree/savespree/internal"
	transactionDatamodel "github.com/savespree/savespree/internal/core/datamodel/transaction"
)

const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// DateLayout is the day-precision form every transaction date is stored in.
// Month grouping relies on the "YYYY-MM" prefix of this layout.
const DateLayout = "2006-01-02"

// Transaction is one ledger entry. The ID is generated at creation time and
// every mutation is keyed on it, so duplicate field tuples stay unambiguous.
type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Currency    string  `json:"currency,omitempty"`
}

// Month returns the "YYYY-MM" bucket the transaction belongs to.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// TransactionDTO carries user input for an add or update. Amount is the
// entered value in the source currency; the service normalizes it into the
// base currency before it enters the ledger.
type TransactionDTO struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Currency    string  `json:"currency"`
}

// Validate checks the boundary constraints: positive amount, parseable
// day-precision date, non-empty description. Category existence is checked
// by the service because it needs the category store.
func (dto TransactionDTO) Validate() error {
	if dto.Type != TypeIncome && dto.Type != TypeExpense {
		return internal.NewValidationError("transaction type must be Income or Expense", internal.ErrCodeInvalidType)
	}
	if dto.Amount <= 0 {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.Date == "" {
		return internal.NewValidationError("date is required", internal.ErrCodeInvalidDate)
	}
	if _, err := time.Parse(DateLayout, dto.Date); err != nil {
		return internal.NewValidationError("date must be in YYYY-MM-DD form", internal.ErrCodeInvalidDate).WithCause(err)
	}
	if strings.TrimSpace(dto.Description) == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeInvalidDescription)
	}
	return nil
}

func ToDataModel(t Transaction) transactionDatamodel.Transaction {
	return transactionDatamodel.Transaction{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Currency:    t.Currency,
	}
}

func FromDataModel(t transactionDatamodel.Transaction) Transaction {
	return Transaction{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Currency:    t.Currency,
	}
}

func ToDataModelSlice(transactions []Transaction) []transactionDatamodel.Transaction {
	result := make([]transactionDatamodel.Transaction, len(transactions))
	for i, t := range transactions {
		result[i] = ToDataModel(t)
	}
	return result
}

func FromDataModelSlice(transactions []transactionDatamodel.Transaction) []Transaction {
	result := make([]Transaction, len(transactions))
	for i, t := range transactions {
		result[i] = FromDataModel(t)
	}
	return result
}
