package summary_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/savespree/savespree/internal/ledger"
	"github.com/savespree/savespree/internal/summary"
)

func TestSummary(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summary Suite")
}

func expense(amount float64, date, category string) ledger.Transaction {
	return ledger.Transaction{Type: ledger.TypeExpense, Amount: amount, Date: date, Category: category}
}

func income(amount float64, date, category string) ledger.Transaction {
	return ledger.Transaction{Type: ledger.TypeIncome, Amount: amount, Date: date, Category: category}
}

var _ = Describe("Summary", func() {
	Describe("HighestExpenseCategory", func() {
		It("should pick the category with the largest expense sum", func() {
			transactions := []ledger.Transaction{
				expense(100, "2024-03-01", "Rent"),
				expense(90, "2024-03-02", "Food"),
				expense(60, "2024-03-10", "Food"),
			}

			Expect(summary.HighestExpenseCategory(transactions)).To(Equal("Food - ₨150"))
		})

		It("should render a fractional sum without trailing zeros", func() {
			transactions := []ledger.Transaction{
				expense(150.5, "2024-03-01", "Food"),
			}

			Expect(summary.HighestExpenseCategory(transactions)).To(Equal("Food - ₨150.5"))
		})

		It("should ignore income", func() {
			transactions := []ledger.Transaction{
				income(5000, "2024-03-01", "Salary"),
				expense(10, "2024-03-02", "Food"),
			}

			Expect(summary.HighestExpenseCategory(transactions)).To(Equal("Food - ₨10"))
		})

		It("should keep the first-seen category on a tie", func() {
			transactions := []ledger.Transaction{
				expense(100, "2024-03-01", "Rent"),
				expense(100, "2024-03-02", "Food"),
			}

			Expect(summary.HighestExpenseCategory(transactions)).To(Equal("Rent - ₨100"))
		})

		It("should return N/A when no expense exists", func() {
			Expect(summary.HighestExpenseCategory(nil)).To(Equal(summary.None))
			Expect(summary.HighestExpenseCategory([]ledger.Transaction{
				income(500, "2024-03-01", "Salary"),
			})).To(Equal(summary.None))
		})
	})

	Describe("MostFrequentExpenseCategory", func() {
		It("should pick the category with the most expense entries", func() {
			transactions := []ledger.Transaction{
				expense(500, "2024-03-01", "Rent"),
				expense(10, "2024-03-02", "Food"),
				expense(20, "2024-03-05", "Food"),
				expense(30, "2024-03-09", "Food"),
			}

			Expect(summary.MostFrequentExpenseCategory(transactions)).To(Equal("Food - 3 times"))
		})

		It("should keep the first-seen category on a tie", func() {
			transactions := []ledger.Transaction{
				expense(10, "2024-03-01", "Entertainment"),
				expense(20, "2024-03-02", "Food"),
			}

			Expect(summary.MostFrequentExpenseCategory(transactions)).To(Equal("Entertainment - 1 times"))
		})

		It("should return N/A when no expense exists", func() {
			Expect(summary.MostFrequentExpenseCategory(nil)).To(Equal(summary.None))
		})
	})

	Describe("MonthlyTotals", func() {
		It("should only count transactions of the given month", func() {
			transactions := []ledger.Transaction{
				income(500, "2024-03-01", "Salary"),
				expense(200, "2024-03-15", "Food"),
				income(999, "2024-04-01", "Salary"),
				expense(50, "2024-04-02", "Food"),
			}

			totals := summary.MonthlyTotals(transactions, "2024-03")

			Expect(totals.Income).To(Equal(500.0))
			Expect(totals.Expenses).To(Equal(200.0))
		})

		It("should round the aggregates to 2 fractional digits", func() {
			transactions := []ledger.Transaction{
				expense(0.1, "2024-03-01", "Food"),
				expense(0.2, "2024-03-02", "Food"),
			}

			Expect(summary.MonthlyTotals(transactions, "2024-03").Expenses).To(Equal(0.3))
		})

		It("should return zero totals for an unmatched month", func() {
			transactions := []ledger.Transaction{
				expense(200, "2024-03-15", "Food"),
			}

			totals := summary.MonthlyTotals(transactions, "2024-07")

			Expect(totals.Income).To(BeZero())
			Expect(totals.Expenses).To(BeZero())
		})
	})

	Describe("GroupByMonth", func() {
		It("should bucket transactions per month in first-seen order", func() {
			transactions := []ledger.Transaction{
				expense(200, "2024-04-15", "Food"),
				income(500, "2024-03-01", "Salary"),
				expense(100, "2024-04-20", "Rent"),
			}

			groups := summary.GroupByMonth(transactions)

			Expect(groups).To(HaveLen(2))
			Expect(groups[0].Month).To(Equal("2024-04"))
			Expect(groups[0].Expenses).To(Equal(300.0))
			Expect(groups[1].Month).To(Equal("2024-03"))
			Expect(groups[1].Income).To(Equal(500.0))
		})

		It("should return no groups for an empty list", func() {
			Expect(summary.GroupByMonth(nil)).To(BeEmpty())
		})
	})
})
