package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/savespree/savespree/internal"
	summaryDatamodel "github.com/savespree/savespree/internal/core/datamodel/summary"
	transactionDatamodel "github.com/savespree/savespree/internal/core/datamodel/transaction"
	"github.com/savespree/savespree/internal/ledger"
)

func TestLedgerService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ledger Service Suite")
}

// Mock repository for testing
type mockRepository struct {
	transactions []transactionDatamodel.Transaction
	totalIncome  float64
	totalExpense float64
	summaries    map[string]summaryDatamodel.MonthlySummary
	lastMonth    string
	saveError    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		summaries: make(map[string]summaryDatamodel.MonthlySummary),
	}
}

func (m *mockRepository) SaveTransactions(transactions []transactionDatamodel.Transaction) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.transactions = transactions
	return nil
}

func (m *mockRepository) LoadTransactions() ([]transactionDatamodel.Transaction, error) {
	return m.transactions, nil
}

func (m *mockRepository) SaveTotals(totalIncome, totalExpenses float64) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.totalIncome = totalIncome
	m.totalExpense = totalExpenses
	return nil
}

func (m *mockRepository) LoadTotals() (float64, float64, error) {
	return m.totalIncome, m.totalExpense, nil
}

func (m *mockRepository) SaveMonthlySummary(month string, summary summaryDatamodel.MonthlySummary) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.summaries[month] = summary
	return nil
}

func (m *mockRepository) LoadMonthlySummaries() (map[string]summaryDatamodel.MonthlySummary, error) {
	return m.summaries, nil
}

func (m *mockRepository) SaveLastMonth(month string) error {
	m.lastMonth = month
	return nil
}

func (m *mockRepository) LoadLastMonth() (string, error) {
	return m.lastMonth, nil
}

// Mock category store for testing
type mockCategories struct {
	names      map[string]bool
	subBudgets map[string]float64
}

func newMockCategories(names ...string) *mockCategories {
	m := &mockCategories{
		names:      make(map[string]bool),
		subBudgets: make(map[string]float64),
	}
	for _, name := range names {
		m.names[name] = true
	}
	return m
}

func (m *mockCategories) Exists(name string) bool {
	return m.names[name]
}

func (m *mockCategories) SubBudget(name string) float64 {
	return m.subBudgets[name]
}

// Mock budget checker for testing
type mockBudget struct {
	withinBudget bool
}

func (m *mockBudget) Check(totalExpenses float64) bool {
	return m.withinBudget
}

// Mock currency converter for testing
type mockConverter struct {
	rate         float64
	convertError error
	calls        int
}

func (m *mockConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	m.calls++
	if m.convertError != nil {
		return 0, m.convertError
	}
	return amount * m.rate, nil
}

var _ = Describe("LedgerService", func() {
	var (
		service    *ledger.Service
		repo       *mockRepository
		categories *mockCategories
		budget     *mockBudget
		converter  *mockConverter
		logger     *slog.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		repo = newMockRepository()
		categories = newMockCategories("Food", "Rent", "Salary", "Entertainment")
		budget = &mockBudget{withinBudget: true}
		converter = &mockConverter{rate: 1}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ctx = context.Background()

		var err error
		service, err = ledger.NewService(repo, categories, budget, converter, nil, logger, "PKR")
		Expect(err).ToNot(HaveOccurred())
	})

	addTransaction := func(dto ledger.TransactionDTO) *ledger.MutationResult {
		result, err := service.Add(ctx, dto)
		Expect(err).ToNot(HaveOccurred())
		return result
	}

	Describe("Add", func() {
		Context("when adding a valid expense", func() {
			It("should assign a unique id and update the expense total", func() {
				result := addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      150,
					Date:        "2024-03-05",
					Description: "Groceries",
					Category:    "Food",
				})

				Expect(result.Transaction.ID).ToNot(BeEmpty())
				totalIncome, totalExpenses := service.Totals()
				Expect(totalIncome).To(Equal(0.0))
				Expect(totalExpenses).To(Equal(150.0))
				Expect(service.Transactions()).To(HaveLen(1))
			})

			It("should assign distinct ids to identical field tuples", func() {
				dto := ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      150,
					Date:        "2024-03-05",
					Description: "Groceries",
					Category:    "Food",
				}
				first := addTransaction(dto)
				second := addTransaction(dto)

				Expect(first.Transaction.ID).ToNot(Equal(second.Transaction.ID))
			})

			It("should persist the transaction list and totals", func() {
				addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeIncome,
					Amount:      500,
					Date:        "2024-03-01",
					Description: "March salary",
					Category:    "Salary",
				})

				Expect(repo.transactions).To(HaveLen(1))
				Expect(repo.totalIncome).To(Equal(500.0))
			})

			It("should re-derive the owning month's summary", func() {
				addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeIncome,
					Amount:      500,
					Date:        "2024-03-01",
					Description: "March salary",
					Category:    "Salary",
				})
				addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      200,
					Date:        "2024-03-10",
					Description: "Groceries",
					Category:    "Food",
				})

				summary := repo.summaries["2024-03"]
				Expect(summary.TotalIncome).To(Equal(500.0))
				Expect(summary.TotalExpenses).To(Equal(200.0))
				Expect(summary.Transactions).To(HaveLen(2))
			})
		})

		Context("when the budget ceiling is breached", func() {
			It("should complete the add and flag the breach", func() {
				budget.withinBudget = false

				result := addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      9000,
					Date:        "2024-03-05",
					Description: "New laptop",
					Category:    "Entertainment",
				})

				Expect(result.WithinBudget).To(BeFalse())
				Expect(service.Transactions()).To(HaveLen(1))
			})
		})

		Context("when a category sub-budget is breached", func() {
			It("should complete the add and flag the category breach", func() {
				categories.subBudgets["Food"] = 200
				addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      150,
					Date:        "2024-03-05",
					Description: "Groceries",
					Category:    "Food",
				})

				result := addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      100,
					Date:        "2024-03-08",
					Description: "Takeaway",
					Category:    "Food",
				})

				Expect(result.CategoryBudgetExceeded).To(BeTrue())
				Expect(service.Transactions()).To(HaveLen(2))
			})

			It("should not flag income against the sub-budget", func() {
				categories.subBudgets["Salary"] = 10

				result := addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeIncome,
					Amount:      500,
					Date:        "2024-03-01",
					Description: "March salary",
					Category:    "Salary",
				})

				Expect(result.CategoryBudgetExceeded).To(BeFalse())
			})
		})

		Context("when validation fails", func() {
			It("should reject a non-positive amount without mutating state", func() {
				_, err := service.Add(ctx, ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      0,
					Date:        "2024-03-05",
					Description: "Groceries",
					Category:    "Food",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
				Expect(service.Transactions()).To(BeEmpty())
			})

			It("should reject an unparseable date", func() {
				_, err := service.Add(ctx, ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      10,
					Date:        "05/03/2024",
					Description: "Groceries",
					Category:    "Food",
				})

				Expect(err).To(HaveOccurred())
				appErr, _ := internal.IsAppError(err)
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
			})

			It("should reject an unknown category", func() {
				_, err := service.Add(ctx, ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      10,
					Date:        "2024-03-05",
					Description: "Groceries",
					Category:    "Gadgets",
				})

				Expect(err).To(HaveOccurred())
				appErr, _ := internal.IsAppError(err)
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownCategory))
			})

			It("should reject a whitespace-only description", func() {
				_, err := service.Add(ctx, ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      10,
					Date:        "2024-03-05",
					Description: "   ",
					Category:    "Food",
				})

				Expect(err).To(HaveOccurred())
				appErr, _ := internal.IsAppError(err)
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDescription))
			})
		})

		Context("when the entered currency differs from the base", func() {
			It("should store the converted amount", func() {
				converter.rate = 280

				result := addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      10,
					Date:        "2024-03-05",
					Description: "Imported snacks",
					Category:    "Food",
					Currency:    "USD",
				})

				Expect(result.Transaction.Amount).To(Equal(2800.0))
				_, totalExpenses := service.Totals()
				Expect(totalExpenses).To(Equal(2800.0))
			})

			It("should fall back to the entered amount when the lookup fails", func() {
				converter.convertError = errors.New("rates endpoint unreachable")

				result := addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      10,
					Date:        "2024-03-05",
					Description: "Imported snacks",
					Category:    "Food",
					Currency:    "USD",
				})

				Expect(result.Transaction.Amount).To(Equal(10.0))
			})

			It("should skip the lookup when the currency matches the base", func() {
				addTransaction(ledger.TransactionDTO{
					Type:        ledger.TypeExpense,
					Amount:      10,
					Date:        "2024-03-05",
					Description: "Groceries",
					Category:    "Food",
					Currency:    "PKR",
				})

				Expect(converter.calls).To(BeZero())
			})
		})
	})

	Describe("Update", func() {
		var id string

		BeforeEach(func() {
			result := addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      150,
				Date:        "2024-03-05",
				Description: "Groceries",
				Category:    "Food",
			})
			id = result.Transaction.ID
		})

		It("should patch the transaction in place and adjust totals by delta", func() {
			result, err := service.Update(ctx, id, ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      90,
				Date:        "2024-03-05",
				Description: "Groceries (corrected)",
				Category:    "Food",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Transaction.ID).To(Equal(id))
			Expect(service.Transactions()).To(HaveLen(1))
			_, totalExpenses := service.Totals()
			Expect(totalExpenses).To(Equal(90.0))
		})

		It("should move the amount between totals when the type flips", func() {
			_, err := service.Update(ctx, id, ledger.TransactionDTO{
				Type:        ledger.TypeIncome,
				Amount:      150,
				Date:        "2024-03-05",
				Description: "Refund",
				Category:    "Food",
			})

			Expect(err).ToNot(HaveOccurred())
			totalIncome, totalExpenses := service.Totals()
			Expect(totalIncome).To(Equal(150.0))
			Expect(totalExpenses).To(Equal(0.0))
		})

		It("should re-derive both month summaries when the date moves", func() {
			_, err := service.Update(ctx, id, ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      150,
				Date:        "2024-04-02",
				Description: "Groceries",
				Category:    "Food",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.summaries["2024-03"].Transactions).To(BeEmpty())
			Expect(repo.summaries["2024-04"].Transactions).To(HaveLen(1))
		})

		It("should return not found for an unknown id", func() {
			_, err := service.Update(ctx, "no-such-id", ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      90,
				Date:        "2024-03-05",
				Description: "Groceries",
				Category:    "Food",
			})

			Expect(err).To(Equal(ledger.ErrTransactionNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the transaction and subtract its amount", func() {
			kept := addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      150,
				Date:        "2024-03-05",
				Description: "Groceries",
				Category:    "Food",
			})
			removed := addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      100,
				Date:        "2024-03-08",
				Description: "Takeaway",
				Category:    "Food",
			})

			Expect(service.Delete(ctx, removed.Transaction.ID)).To(Succeed())

			transactions := service.Transactions()
			Expect(transactions).To(HaveLen(1))
			Expect(transactions[0].ID).To(Equal(kept.Transaction.ID))
			_, totalExpenses := service.Totals()
			Expect(totalExpenses).To(Equal(150.0))
			Expect(repo.summaries["2024-03"].TotalExpenses).To(Equal(150.0))
		})

		It("should return not found for an unknown id", func() {
			Expect(service.Delete(ctx, "no-such-id")).To(Equal(ledger.ErrTransactionNotFound))
		})
	})

	Describe("ResetMonthlyDataIfNewMonth", func() {
		fixedNow := func(value string) func() time.Time {
			parsed, err := time.Parse("2006-01-02", value)
			Expect(err).ToNot(HaveOccurred())
			return func() time.Time { return parsed }
		}

		It("should archive the prior month and clear the live state", func() {
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeIncome,
				Amount:      500,
				Date:        "2024-03-01",
				Description: "March salary",
				Category:    "Salary",
			})
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      200,
				Date:        "2024-03-10",
				Description: "Groceries",
				Category:    "Food",
			})
			repo.lastMonth = "2024-03"
			service.SetNow(fixedNow("2024-04-01"))

			rolledOver, err := service.ResetMonthlyDataIfNewMonth(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(rolledOver).To(BeTrue())

			archived := repo.summaries["2024-03"]
			Expect(archived.TotalIncome).To(Equal(500.0))
			Expect(archived.TotalExpenses).To(Equal(200.0))
			Expect(archived.Transactions).To(HaveLen(2))

			totalIncome, totalExpenses := service.Totals()
			Expect(totalIncome).To(BeZero())
			Expect(totalExpenses).To(BeZero())
			Expect(service.Transactions()).To(BeEmpty())
			Expect(repo.lastMonth).To(Equal("2024-04"))
		})

		It("should only move the marker when no prior month is recorded", func() {
			service.SetNow(fixedNow("2024-04-01"))

			rolledOver, err := service.ResetMonthlyDataIfNewMonth(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(rolledOver).To(BeFalse())
			Expect(repo.lastMonth).To(Equal("2024-04"))
		})

		It("should do nothing within the same month", func() {
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      200,
				Date:        "2024-04-10",
				Description: "Groceries",
				Category:    "Food",
			})
			repo.lastMonth = "2024-04"
			service.SetNow(fixedNow("2024-04-20"))

			rolledOver, err := service.ResetMonthlyDataIfNewMonth(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(rolledOver).To(BeFalse())
			Expect(service.Transactions()).To(HaveLen(1))
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      150,
				Date:        "2024-03-05",
				Description: "Weekly groceries",
				Category:    "Food",
			})
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      799,
				Date:        "2024-03-08",
				Description: "Cinema tickets",
				Category:    "Entertainment",
			})
		})

		It("should match the description case-insensitively", func() {
			matches := service.Search("GROCERIES")
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Description).To(Equal("Weekly groceries"))
		})

		It("should match the category", func() {
			matches := service.Search("entertainment")
			Expect(matches).To(HaveLen(1))
		})

		It("should return everything for an empty query", func() {
			Expect(service.Search("")).To(HaveLen(2))
		})
	})

	Describe("Balance", func() {
		It("should be income minus expenses", func() {
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeIncome,
				Amount:      500,
				Date:        "2024-03-01",
				Description: "March salary",
				Category:    "Salary",
			})
			addTransaction(ledger.TransactionDTO{
				Type:        ledger.TypeExpense,
				Amount:      200,
				Date:        "2024-03-10",
				Description: "Groceries",
				Category:    "Food",
			})

			Expect(service.Balance()).To(Equal(300.0))
		})
	})
})
