package finance

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyReport aggregates the records of a single month.
type MonthlyReport struct {
	Month time.Month
	Year  int

	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetSavings   decimal.Decimal // NetSavings is TotalIncome minus TotalExpense.

	// ByCategory holds the expenditure total of every category that has at least one expenditure.
	ByCategory map[Category]decimal.Decimal
}

// MonthlyReport computes the report for the given month.
func (l *Ledger) MonthlyReport(month time.Month, year int) *MonthlyReport {
	r := &MonthlyReport{
		Month:        month,
		Year:         year,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByCategory:   make(map[Category]decimal.Decimal),
	}
	for _, rec := range l.records {
		if !rec.When().In(month, year) {
			continue
		}
		switch v := rec.(type) {
		case Income:
			r.TotalIncome = r.TotalIncome.Add(v.Amount)
		case Expenditure:
			r.TotalExpense = r.TotalExpense.Add(v.Amount)
			r.ByCategory[v.Category] = r.ByCategory[v.Category].Add(v.Amount)
		}
	}
	r.NetSavings = r.TotalIncome.Sub(r.TotalExpense)
	return r
}

// Expenses iterates over the categories with expenditures, in category order.
func (r *MonthlyReport) Expenses() iter.Seq2[Category, decimal.Decimal] {
	return func(yield func(Category, decimal.Decimal) bool) {
		for c := range Categories() {
			amount, ok := r.ByCategory[c]
			if !ok {
				continue
			}
			if !yield(c, amount) {
				return
			}
		}
	}
}

// Share returns the part of the total expense spent in category c.
// It returns false when there is no expense at all.
func (r *MonthlyReport) Share(c Category) (Percent, bool) {
	return PercentOf(r.ByCategory[c], r.TotalExpense)
}

// Maturities iterates over investments and their maturity amount.
func (l *Ledger) Maturities() iter.Seq2[Investment, decimal.Decimal] {
	return func(yield func(Investment, decimal.Decimal) bool) {
		for _, inv := range l.investments {
			if !yield(inv, MaturityAmount(inv)) {
				return
			}
		}
	}
}
