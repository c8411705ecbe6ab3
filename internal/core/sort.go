package core

import (
	"sort"
	"strings"
)

// Column names accepted by the sort helpers. Unknown columns fall back
// to the id column.
const (
	ColID           = "id"
	ColDescription  = "description"
	ColAmount       = "amount"
	ColDueDate      = "due_date"
	ColCategory     = "category"
	ColDateReceived = "date_received"
	ColType         = "type"
	ColIncome       = "income"
	ColExpenses     = "expenses"
	ColBalance      = "balance"
)

// SortExpenses orders expenses in place by the given column. Sorting is
// stable, so rows that compare equal keep their insertion order.
func SortExpenses(items []Expense, column string, descending bool) {
	less := func(a, b Expense) bool {
		switch column {
		case ColDescription:
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		case ColAmount:
			return a.Amount.LessThan(b.Amount)
		case ColDueDate:
			return a.DueDate.Before(b.DueDate.Time)
		case ColCategory:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default:
			return a.ID < b.ID
		}
	}
	sortStable(items, less, descending)
}

// SortPaychecks orders paychecks in place by the given column.
func SortPaychecks(items []Paycheck, column string, descending bool) {
	less := func(a, b Paycheck) bool {
		switch column {
		case ColAmount:
			return a.Amount.LessThan(b.Amount)
		case ColDateReceived:
			return a.DateReceived.Before(b.DateReceived.Time)
		default:
			return a.ID < b.ID
		}
	}
	sortStable(items, less, descending)
}

// SortSummaries orders dashboard rows in place by the given column,
// including the derived balance columns.
func SortSummaries(items []PeriodSummary, column string, descending bool) {
	less := func(a, b PeriodSummary) bool {
		switch column {
		case ColType:
			return strings.ToLower(a.Period.Type) < strings.ToLower(b.Period.Type)
		case ColIncome:
			return a.Income.LessThan(b.Income)
		case ColExpenses:
			return a.Expenses.LessThan(b.Expenses)
		case ColBalance:
			return a.Balance.Balance.LessThan(b.Balance.Balance)
		default:
			return a.Period.ID < b.Period.ID
		}
	}
	sortStable(items, less, descending)
}

func sortStable[T any](items []T, less func(a, b T) bool, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
