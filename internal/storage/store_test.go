package storage_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	categoryDatamodel "github.com/savespree/savespree/internal/core/datamodel/category"
	chartDatamodel "github.com/savespree/savespree/internal/core/datamodel/chart"
	summaryDatamodel "github.com/savespree/savespree/internal/core/datamodel/summary"
	transactionDatamodel "github.com/savespree/savespree/internal/core/datamodel/transaction"
	"github.com/savespree/savespree/internal/storage"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

var _ = Describe("Store", func() {
	var store *storage.Store

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		store, err = storage.Open(":memory:", logger)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("budget", func() {
		It("should round-trip the ceiling", func() {
			Expect(store.SaveBudget(2500.5)).To(Succeed())

			ceiling, err := store.LoadBudget()
			Expect(err).ToNot(HaveOccurred())
			Expect(ceiling).To(Equal(2500.5))
		})

		It("should read 0 before any save", func() {
			ceiling, err := store.LoadBudget()
			Expect(err).ToNot(HaveOccurred())
			Expect(ceiling).To(BeZero())
		})

		It("should overwrite on a second save", func() {
			Expect(store.SaveBudget(100)).To(Succeed())
			Expect(store.SaveBudget(200)).To(Succeed())

			ceiling, err := store.LoadBudget()
			Expect(err).ToNot(HaveOccurred())
			Expect(ceiling).To(Equal(200.0))
		})
	})

	Describe("totals", func() {
		It("should round-trip both running totals", func() {
			Expect(store.SaveTotals(500, 123.45)).To(Succeed())

			totalIncome, totalExpenses, err := store.LoadTotals()
			Expect(err).ToNot(HaveOccurred())
			Expect(totalIncome).To(Equal(500.0))
			Expect(totalExpenses).To(Equal(123.45))
		})
	})

	Describe("transactions", func() {
		It("should round-trip the transaction list", func() {
			list := []transactionDatamodel.Transaction{
				{ID: "a", Type: "Expense", Amount: 150, Date: "2024-03-05", Description: "Groceries", Category: "Food"},
				{ID: "b", Type: "Income", Amount: 500, Date: "2024-03-01", Description: "Salary", Category: "Salary"},
			}
			Expect(store.SaveTransactions(list)).To(Succeed())

			loaded, err := store.LoadTransactions()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(Equal(list))
		})

		It("should read an empty list before any save", func() {
			loaded, err := store.LoadTransactions()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(BeEmpty())
		})

		It("should persist a nil list as empty", func() {
			Expect(store.SaveTransactions(nil)).To(Succeed())

			loaded, err := store.LoadTransactions()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(BeEmpty())
		})
	})

	Describe("categories", func() {
		It("should round-trip the category list in order", func() {
			list := []categoryDatamodel.Category{
				{Name: "Food", Emoji: "🍔", Color: "#f44336"},
				{Name: "Rent", Emoji: "🏠", Color: "#3f51b5", Budget: 1000},
			}
			Expect(store.SaveCategories(list)).To(Succeed())

			loaded, err := store.LoadCategories()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(Equal(list))
		})
	})

	Describe("monthly summaries", func() {
		It("should upsert months into the archive", func() {
			march := summaryDatamodel.MonthlySummary{
				TotalIncome:   500,
				TotalExpenses: 200,
				Transactions: []transactionDatamodel.Transaction{
					{ID: "a", Type: "Expense", Amount: 200, Date: "2024-03-05", Description: "Groceries", Category: "Food"},
				},
			}
			april := summaryDatamodel.MonthlySummary{TotalIncome: 100}

			Expect(store.SaveMonthlySummary("2024-03", march)).To(Succeed())
			Expect(store.SaveMonthlySummary("2024-04", april)).To(Succeed())

			loaded, err := store.LoadMonthlySummaries()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(HaveLen(2))
			Expect(loaded["2024-03"]).To(Equal(march))
		})

		It("should overwrite a duplicate month", func() {
			Expect(store.SaveMonthlySummary("2024-03", summaryDatamodel.MonthlySummary{TotalIncome: 1})).To(Succeed())
			Expect(store.SaveMonthlySummary("2024-03", summaryDatamodel.MonthlySummary{TotalIncome: 2})).To(Succeed())

			loaded, err := store.LoadMonthlySummaries()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(HaveLen(1))
			Expect(loaded["2024-03"].TotalIncome).To(Equal(2.0))
		})

		It("should read an empty archive before any save", func() {
			loaded, err := store.LoadMonthlySummaries()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(BeEmpty())
		})
	})

	Describe("last month marker", func() {
		It("should round-trip the marker", func() {
			Expect(store.SaveLastMonth("2024-03")).To(Succeed())

			month, err := store.LoadLastMonth()
			Expect(err).ToNot(HaveOccurred())
			Expect(month).To(Equal("2024-03"))
		})

		It("should read empty before any save", func() {
			month, err := store.LoadLastMonth()
			Expect(err).ToNot(HaveOccurred())
			Expect(month).To(BeEmpty())
		})
	})

	Describe("color cache", func() {
		It("should round-trip both color maps", func() {
			cache := chartDatamodel.ColorCache{
				BarChartColors: map[string]string{"2024-03-05": "#AABBCC"},
				PieChartColors: map[string]string{"Food": "#112233"},
			}
			Expect(store.SaveColorCache(cache)).To(Succeed())

			loaded, err := store.LoadColorCache()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(Equal(cache))
		})

		It("should read initialized empty maps before any save", func() {
			loaded, err := store.LoadColorCache()
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.BarChartColors).ToNot(BeNil())
			Expect(loaded.PieChartColors).ToNot(BeNil())
		})
	})
})
