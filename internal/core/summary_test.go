package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleData() ([]TimePeriod, []Expense, []Paycheck) {
	periods := []TimePeriod{
		{ID: 1, Type: "monthly"},
		{ID: 2, Type: "yearly"},
	}
	expenses := []Expense{
		{ID: 1, TimePeriodID: 1, Description: "Rent", Amount: amt("1200"), Category: "Housing"},
		{ID: 2, TimePeriodID: 1, Description: "Groceries", Amount: amt("300"), Category: "Food"},
		{ID: 3, TimePeriodID: 2, Description: "Insurance", Amount: amt("900")},
	}
	paychecks := []Paycheck{
		{ID: 1, TimePeriodID: 1, Amount: amt("2000")},
		{ID: 2, TimePeriodID: 2, Amount: amt("500")},
	}
	return periods, expenses, paychecks
}

func TestPeriodBalance(t *testing.T) {
	_, expenses, paychecks := sampleData()

	b := PeriodBalance(1, expenses, paychecks)
	if b.Income.String() != "2000" || b.Expenses.String() != "1500" || b.Balance.String() != "500" {
		t.Fatalf("unexpected balance %+v", b)
	}
	if !b.Balance.Equal(b.Income.Sub(b.Expenses)) {
		t.Fatalf("balance must equal income minus expenses")
	}

	// A period with no rows sums to zero everywhere.
	empty := PeriodBalance(99, expenses, paychecks)
	if !empty.Income.IsZero() || !empty.Expenses.IsZero() || !empty.Balance.IsZero() {
		t.Fatalf("unexpected balance for empty period %+v", empty)
	}
}

func TestGlobalTotals(t *testing.T) {
	_, expenses, paychecks := sampleData()
	b := GlobalTotals(expenses, paychecks)
	if b.Income.String() != "2500" || b.Expenses.String() != "2400" || b.Balance.String() != "100" {
		t.Fatalf("unexpected totals %+v", b)
	}
}

func TestSummaries(t *testing.T) {
	periods, expenses, paychecks := sampleData()
	s := Summaries(periods, expenses, paychecks)
	if len(s) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(s))
	}
	if s[0].Period.ID != 1 || s[0].ExpenseCount != 2 || s[0].PaycheckCount != 1 {
		t.Fatalf("unexpected first summary %+v", s[0])
	}
	if s[1].Balance.Balance.String() != "-400" {
		t.Fatalf("unexpected second balance %+v", s[1].Balance)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []Expense{
		{ID: 1, Category: "Food", Amount: amt("100")},
		{ID: 2, Category: "Food", Amount: amt("50")},
		{ID: 3, Category: "", Amount: amt("20")},
	}
	got := CategoryBreakdown(expenses)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Name != "Food" || got[0].Value.String() != "150" {
		t.Fatalf("unexpected first group %+v", got[0])
	}
	if got[1].Name != Uncategorized || got[1].Value.String() != "20" {
		t.Fatalf("unexpected second group %+v", got[1])
	}
}

func TestCategoryBreakdownStableTies(t *testing.T) {
	expenses := []Expense{
		{ID: 1, Category: "B-first", Amount: amt("10")},
		{ID: 2, Category: "A-second", Amount: amt("10")},
	}
	got := CategoryBreakdown(expenses)
	if got[0].Name != "B-first" || got[1].Name != "A-second" {
		t.Fatalf("equal sums must keep first-seen order, got %+v", got)
	}
}

func TestFilterPrecedence(t *testing.T) {
	periods, expenses, paychecks := sampleData()

	// No filter returns everything.
	if got := FilterExpenses(expenses, periods, Filter{PeriodType: FilterAll}); len(got) != 3 {
		t.Fatalf("expected all expenses, got %d", len(got))
	}

	// Type filter is case-insensitive.
	if got := FilterExpenses(expenses, periods, Filter{PeriodType: "Monthly"}); len(got) != 2 {
		t.Fatalf("expected 2 monthly expenses, got %d", len(got))
	}

	// A specific period id wins over the type label.
	id := int64(2)
	got := FilterExpenses(expenses, periods, Filter{PeriodID: &id, PeriodType: "Monthly"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("period id filter should take precedence, got %+v", got)
	}

	if got := FilterPaychecks(paychecks, periods, Filter{PeriodType: "yearly"}); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected paycheck filter result %+v", got)
	}
}

func TestSortExpenses(t *testing.T) {
	items := []Expense{
		{ID: 1, Description: "b", Amount: amt("10")},
		{ID: 2, Description: "a", Amount: amt("30")},
		{ID: 3, Description: "c", Amount: amt("20")},
	}

	SortExpenses(items, ColAmount, false)
	if items[0].ID != 1 || items[1].ID != 3 || items[2].ID != 2 {
		t.Fatalf("ascending amount order wrong: %+v", items)
	}

	SortExpenses(items, ColDescription, true)
	if items[0].Description != "c" || items[2].Description != "a" {
		t.Fatalf("descending description order wrong: %+v", items)
	}
}

func TestSortStableOnTies(t *testing.T) {
	items := []Expense{
		{ID: 1, Amount: amt("10")},
		{ID: 2, Amount: amt("10")},
		{ID: 3, Amount: amt("10")},
	}
	SortExpenses(items, ColAmount, false)
	if items[0].ID != 1 || items[1].ID != 2 || items[2].ID != 3 {
		t.Fatalf("stable sort must preserve original order on ties: %+v", items)
	}
}

func TestSortSummariesByBalance(t *testing.T) {
	periods, expenses, paychecks := sampleData()
	s := Summaries(periods, expenses, paychecks)
	SortSummaries(s, ColBalance, true)
	if s[0].Period.ID != 1 {
		t.Fatalf("expected the positive balance first, got %+v", s[0])
	}
}
