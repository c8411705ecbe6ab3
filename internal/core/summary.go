package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Uncategorized is the bucket name for expenses without a category.
const Uncategorized = "Uncategorized"

type (
	// Balance is income minus expenses for a given scope. It is derived
	// on every call and never stored, so it cannot go stale.
	Balance struct {
		Income   decimal.Decimal `json:"income"`
		Expenses decimal.Decimal `json:"expenses"`
		Balance  decimal.Decimal `json:"balance"`
	}

	// PeriodSummary is one dashboard row: a period's balance plus how
	// many rows contributed to it.
	PeriodSummary struct {
		Period TimePeriod `json:"time_period"`
		Balance
		ExpenseCount  int `json:"expense_count"`
		PaycheckCount int `json:"paycheck_count"`
	}

	// CategoryAmount is one slice of the category breakdown chart.
	CategoryAmount struct {
		Name  string          `json:"name"`
		Value decimal.Decimal `json:"value"`
	}
)

func newBalance(income, expenses decimal.Decimal) Balance {
	return Balance{Income: income, Expenses: expenses, Balance: income.Sub(expenses)}
}

// PeriodBalance sums the paychecks and expenses scoped to one time period.
func PeriodBalance(periodID int64, expenses []Expense, paychecks []Paycheck) Balance {
	income := decimal.Zero
	spent := decimal.Zero
	for _, p := range paychecks {
		if p.TimePeriodID == periodID {
			income = income.Add(p.Amount)
		}
	}
	for _, e := range expenses {
		if e.TimePeriodID == periodID {
			spent = spent.Add(e.Amount)
		}
	}
	return newBalance(income, spent)
}

// GlobalTotals sums every paycheck and expense regardless of period.
func GlobalTotals(expenses []Expense, paychecks []Paycheck) Balance {
	income := decimal.Zero
	spent := decimal.Zero
	for _, p := range paychecks {
		income = income.Add(p.Amount)
	}
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	return newBalance(income, spent)
}

// Summaries produces one PeriodSummary per time period, in the order the
// periods were given.
func Summaries(periods []TimePeriod, expenses []Expense, paychecks []Paycheck) []PeriodSummary {
	out := make([]PeriodSummary, 0, len(periods))
	for _, tp := range periods {
		s := PeriodSummary{Period: tp, Balance: PeriodBalance(tp.ID, expenses, paychecks)}
		for _, e := range expenses {
			if e.TimePeriodID == tp.ID {
				s.ExpenseCount++
			}
		}
		for _, p := range paychecks {
			if p.TimePeriodID == tp.ID {
				s.PaycheckCount++
			}
		}
		out = append(out, s)
	}
	return out
}

// CategoryBreakdown groups expenses by category, summing amounts per
// group. Expenses without a category land in the Uncategorized bucket.
// The result is ordered by descending value; equal values keep the order
// in which their category was first seen.
func CategoryBreakdown(expenses []Expense) []CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	var names []string // first-seen order for stable ties
	for _, e := range expenses {
		name := e.Category
		if name == "" {
			name = Uncategorized
		}
		if _, ok := totals[name]; !ok {
			names = append(names, name)
		}
		totals[name] = totals[name].Add(e.Amount)
	}

	out := make([]CategoryAmount, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryAmount{Name: name, Value: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}
