package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/savespree/savespree/internal"
	summaryDatamodel "github.com/savespree/savespree/internal/core/datamodel/summary"
	transactionDatamodel "github.com/savespree/savespree/internal/core/datamodel/transaction"
	"github.com/savespree/savespree/internal/core/events"
)

// MonthLayout is the "YYYY-MM" form used for summary buckets and the
// rollover marker.
const MonthLayout = "2006-01"

var ErrTransactionNotFound = internal.NewNotFoundError("transaction not found", internal.ErrCodeTransactionNotFound)

// Repository is the slice of the storage adapter the ledger persists through.
type Repository interface {
	SaveTransactions(transactions []transactionDatamodel.Transaction) error
	LoadTransactions() ([]transactionDatamodel.Transaction, error)
	SaveTotals(totalIncome, totalExpenses float64) error
	LoadTotals() (totalIncome, totalExpenses float64, err error)
	SaveMonthlySummary(month string, summary summaryDatamodel.MonthlySummary) error
	LoadMonthlySummaries() (map[string]summaryDatamodel.MonthlySummary, error)
	SaveLastMonth(month string) error
	LoadLastMonth() (string, error)
}

// CategoryAPI is what the ledger needs from the category store: existence
// checks at the add boundary and the optional per-category sub-budget.
type CategoryAPI interface {
	Exists(name string) bool
	SubBudget(name string) float64
}

// BudgetAPI reports whether the running expense total is still within the
// global ceiling.
type BudgetAPI interface {
	Check(totalExpenses float64) bool
}

// Converter normalizes an entered amount into the base currency. A failed
// lookup is fail-open: the caller keeps the entered amount.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// MutationResult carries the soft-limit signals of an add or update.
// Breaching a budget warns, it never blocks the operation.
type MutationResult struct {
	Transaction            Transaction
	WithinBudget           bool
	CategoryBudgetExceeded bool
}

// Service owns the mutable ledger state: the ordered transaction list of the
// current month and the two running totals. All mutations go through it, so
// the invariant "each total equals the sum of its type's amounts" holds
// after every completed operation.
type Service struct {
	repo         Repository
	categories   CategoryAPI
	budget       BudgetAPI
	converter    Converter
	bus          *events.EventBus
	logger       *slog.Logger
	baseCurrency string
	now          func() time.Time

	totalIncome   float64
	totalExpenses float64
	transactions  []Transaction
}

// NewService loads the persisted ledger state and returns a service bound to
// its collaborators.
func NewService(
	repo Repository,
	categories CategoryAPI,
	budget BudgetAPI,
	converter Converter,
	bus *events.EventBus,
	logger *slog.Logger,
	baseCurrency string,
) (*Service, error) {
	totalIncome, totalExpenses, err := repo.LoadTotals()
	if err != nil {
		return nil, err
	}
	stored, err := repo.LoadTransactions()
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:          repo,
		categories:    categories,
		budget:        budget,
		converter:     converter,
		bus:           bus,
		logger:        logger,
		baseCurrency:  baseCurrency,
		now:           time.Now,
		totalIncome:   totalIncome,
		totalExpenses: totalExpenses,
		transactions:  FromDataModelSlice(stored),
	}, nil
}

// Add validates, currency-normalizes and appends one transaction, updating
// the running totals, the owning month's archived summary and the dependent
// views. The returned result carries the budget warnings.
func (s *Service) Add(ctx context.Context, dto TransactionDTO) (*MutationResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("transaction validation failed", "error", err)
		return nil, err
	}
	if !s.categories.Exists(dto.Category) {
		s.logger.Warn("transaction references unknown category", "category", dto.Category)
		return nil, internal.NewValidationError("category does not exist", internal.ErrCodeUnknownCategory)
	}

	amount := s.normalizeAmount(ctx, dto.Amount, dto.Currency)
	categoryExceeded := s.checkCategoryBudget(dto.Type, dto.Category, amount, "")

	transaction := Transaction{
		ID:          uuid.NewString(),
		Type:        dto.Type,
		Amount:      amount,
		Date:        dto.Date,
		Description: strings.TrimSpace(dto.Description),
		Category:    dto.Category,
		Currency:    dto.Currency,
	}

	s.transactions = append(s.transactions, transaction)
	if err := s.repo.SaveTransactions(ToDataModelSlice(s.transactions)); err != nil {
		return nil, err
	}
	if err := s.recalcMonthlySummary(transaction.Month()); err != nil {
		return nil, err
	}

	if transaction.Type == TypeIncome {
		s.totalIncome += amount
	} else {
		s.totalExpenses += amount
	}
	if err := s.repo.SaveTotals(s.totalIncome, s.totalExpenses); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTransactionAdded, transaction)
	s.logger.Info("transaction added",
		"id", transaction.ID,
		"type", transaction.Type,
		"amount", transaction.Amount,
		"category", transaction.Category)

	return &MutationResult{
		Transaction:            transaction,
		WithinBudget:           s.budget.Check(s.totalExpenses),
		CategoryBudgetExceeded: categoryExceeded,
	}, nil
}

// Update patches a transaction in place. The running totals are adjusted by
// delta, so the totals invariant is never exposed to a half-applied edit the
// way a delete-then-add sequence would.
func (s *Service) Update(ctx context.Context, id string, dto TransactionDTO) (*MutationResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("transaction validation failed", "error", err, "id", id)
		return nil, err
	}
	if !s.categories.Exists(dto.Category) {
		s.logger.Warn("transaction references unknown category", "category", dto.Category, "id", id)
		return nil, internal.NewValidationError("category does not exist", internal.ErrCodeUnknownCategory)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTransactionNotFound
	}
	old := s.transactions[idx]

	amount := s.normalizeAmount(ctx, dto.Amount, dto.Currency)
	categoryExceeded := s.checkCategoryBudget(dto.Type, dto.Category, amount, id)

	updated := Transaction{
		ID:          old.ID,
		Type:        dto.Type,
		Amount:      amount,
		Date:        dto.Date,
		Description: strings.TrimSpace(dto.Description),
		Category:    dto.Category,
		Currency:    dto.Currency,
	}

	if old.Type == TypeIncome {
		s.totalIncome -= old.Amount
	} else {
		s.totalExpenses -= old.Amount
	}
	if updated.Type == TypeIncome {
		s.totalIncome += updated.Amount
	} else {
		s.totalExpenses += updated.Amount
	}

	s.transactions[idx] = updated
	if err := s.repo.SaveTransactions(ToDataModelSlice(s.transactions)); err != nil {
		return nil, err
	}
	if err := s.repo.SaveTotals(s.totalIncome, s.totalExpenses); err != nil {
		return nil, err
	}
	if err := s.recalcMonthlySummary(old.Month()); err != nil {
		return nil, err
	}
	if updated.Month() != old.Month() {
		if err := s.recalcMonthlySummary(updated.Month()); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.EventTransactionUpdated, updated)
	s.logger.Info("transaction updated", "id", updated.ID, "type", updated.Type, "amount", updated.Amount)

	return &MutationResult{
		Transaction:            updated,
		WithinBudget:           s.budget.Check(s.totalExpenses),
		CategoryBudgetExceeded: categoryExceeded,
	}, nil
}

// Delete removes the transaction with the given id, subtracts its amount
// from the matching running total and re-derives that month's archived
// summary from the remaining transactions.
func (s *Service) Delete(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrTransactionNotFound
	}
	removed := s.transactions[idx]

	if removed.Type == TypeIncome {
		s.totalIncome -= removed.Amount
	} else {
		s.totalExpenses -= removed.Amount
	}

	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	if err := s.repo.SaveTotals(s.totalIncome, s.totalExpenses); err != nil {
		return err
	}
	if err := s.repo.SaveTransactions(ToDataModelSlice(s.transactions)); err != nil {
		return err
	}
	if err := s.recalcMonthlySummary(removed.Month()); err != nil {
		return err
	}

	s.publish(ctx, events.EventTransactionDeleted, removed)
	s.logger.Info("transaction removed", "id", removed.ID, "type", removed.Type, "amount", removed.Amount)
	return nil
}

// ResetMonthlyDataIfNewMonth runs once per session start. On a month
// boundary it archives the prior month's totals and transaction snapshot,
// then clears the live state: per-transaction detail of past months survives
// only inside the archived summary.
func (s *Service) ResetMonthlyDataIfNewMonth(ctx context.Context) (bool, error) {
	currentMonth := s.now().Format(MonthLayout)
	lastMonth, err := s.repo.LoadLastMonth()
	if err != nil {
		return false, err
	}

	rolledOver := false
	if lastMonth != "" && lastMonth != currentMonth {
		snapshot := summaryDatamodel.MonthlySummary{
			TotalIncome:   s.totalIncome,
			TotalExpenses: s.totalExpenses,
			Transactions:  ToDataModelSlice(s.transactions),
		}
		if err := s.repo.SaveMonthlySummary(lastMonth, snapshot); err != nil {
			return false, err
		}

		s.totalIncome = 0
		s.totalExpenses = 0
		s.transactions = nil
		if err := s.repo.SaveTransactions(nil); err != nil {
			return false, err
		}
		if err := s.repo.SaveTotals(0, 0); err != nil {
			return false, err
		}

		s.publish(ctx, events.EventMonthRolledOver, Transaction{Date: lastMonth + "-01"})
		s.logger.Info("monthly data reset, summary stored", "month", lastMonth)
		rolledOver = true
	}

	if err := s.repo.SaveLastMonth(currentMonth); err != nil {
		return rolledOver, err
	}
	return rolledOver, nil
}

// Search returns the transactions whose description or category contains the
// query, case-insensitively. An empty query returns everything.
func (s *Service) Search(query string) []Transaction {
	query = strings.ToLower(query)
	var matches []Transaction
	for _, t := range s.transactions {
		if strings.Contains(strings.ToLower(t.Description), query) ||
			strings.Contains(strings.ToLower(t.Category), query) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Transactions returns a copy of the live list.
func (s *Service) Transactions() []Transaction {
	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Service) Totals() (totalIncome, totalExpenses float64) {
	return s.totalIncome, s.totalExpenses
}

func (s *Service) Balance() float64 {
	return s.totalIncome - s.totalExpenses
}

func (s *Service) MonthlySummaries() (map[string]summaryDatamodel.MonthlySummary, error) {
	return s.repo.LoadMonthlySummaries()
}

// normalizeAmount converts the entered amount into the base currency.
// A failed or empty lookup falls back to the entered amount: silent
// degradation, never a blocking error.
func (s *Service) normalizeAmount(ctx context.Context, amount float64, from string) float64 {
	if s.converter == nil || from == "" || from == s.baseCurrency {
		return amount
	}
	converted, err := s.converter.Convert(ctx, amount, from, s.baseCurrency)
	if err != nil {
		s.logger.Warn("currency conversion failed, using entered amount",
			"error", err, "from", from, "to", s.baseCurrency, "amount", amount)
		return amount
	}
	return converted
}

// checkCategoryBudget flags an expense that would push its category's
// cumulative total past the configured sub-budget. The total is recomputed
// from the live list each time; excludeID leaves out the transaction being
// edited.
func (s *Service) checkCategoryBudget(transactionType, category string, amount float64, excludeID string) bool {
	if transactionType != TypeExpense {
		return false
	}
	subBudget := s.categories.SubBudget(category)
	if subBudget <= 0 {
		return false
	}

	spent := 0.0
	for _, t := range s.transactions {
		if t.ID == excludeID {
			continue
		}
		if t.Type == TypeExpense && t.Category == category {
			spent += t.Amount
		}
	}
	if spent+amount > subBudget {
		s.logger.Warn("category budget exceeded",
			"category", category,
			"budget", subBudget,
			"spent", spent+amount)
		return true
	}
	return false
}

// recalcMonthlySummary re-derives one month's archived summary from the live
// transaction list.
func (s *Service) recalcMonthlySummary(month string) error {
	summary := summaryDatamodel.MonthlySummary{
		Transactions: []transactionDatamodel.Transaction{},
	}
	for _, t := range s.transactions {
		if t.Month() != month {
			continue
		}
		if t.Type == TypeIncome {
			summary.TotalIncome += t.Amount
		} else {
			summary.TotalExpenses += t.Amount
		}
		summary.Transactions = append(summary.Transactions, ToDataModel(t))
	}
	return s.repo.SaveMonthlySummary(month, summary)
}

func (s *Service) indexOf(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) publish(ctx context.Context, eventType string, t Transaction) {
	if s.bus == nil {
		return
	}
	event := events.NewLedgerEvent(eventType, map[string]interface{}{
		"transaction_id": t.ID,
		"type":           t.Type,
		"amount":         t.Amount,
		"category":       t.Category,
		"month":          t.Month(),
	})
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish ledger event", "event_type", eventType, "error", err)
	}
}

// SetNow overrides the clock, for tests that exercise month rollover.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}
