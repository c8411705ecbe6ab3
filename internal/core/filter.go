package core

import "strings"

// FilterAll is the sentinel type label meaning "no type filter".
const FilterAll = "All"

// Filter narrows expenses and paychecks to the time periods the user is
// looking at. A specific PeriodID always takes precedence over the type
// label; a label of FilterAll (or empty) disables type filtering.
type Filter struct {
	PeriodID   *int64
	PeriodType string
}

func (f Filter) matches(periods []TimePeriod, timePeriodID int64) bool {
	if f.PeriodID != nil {
		return timePeriodID == *f.PeriodID
	}
	if f.PeriodType == "" || strings.EqualFold(f.PeriodType, FilterAll) {
		return true
	}
	for _, tp := range periods {
		if tp.ID == timePeriodID {
			return strings.EqualFold(tp.Type, f.PeriodType)
		}
	}
	return false
}

// FilterExpenses returns the expenses whose owning period passes the filter.
func FilterExpenses(items []Expense, periods []TimePeriod, f Filter) []Expense {
	out := make([]Expense, 0, len(items))
	for _, e := range items {
		if f.matches(periods, e.TimePeriodID) {
			out = append(out, e)
		}
	}
	return out
}

// FilterPaychecks returns the paychecks whose owning period passes the filter.
func FilterPaychecks(items []Paycheck, periods []TimePeriod, f Filter) []Paycheck {
	out := make([]Paycheck, 0, len(items))
	for _, p := range items {
		if f.matches(periods, p.TimePeriodID) {
			out = append(out, p)
		}
	}
	return out
}
