package datacache

import "paycheckbuddy/internal/core"

// The read side. Accessors hand out defensive copies and every derived
// value is recomputed from the current snapshot, so a mutation confirmed
// between two reads is always visible in the second one.

func (c *Cache) TimePeriods() []core.TimePeriod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.TimePeriod(nil), c.periods...)
}

func (c *Cache) Expenses() []core.Expense {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Expense(nil), c.expenses...)
}

func (c *Cache) Paychecks() []core.Paycheck {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Paycheck(nil), c.paychecks...)
}

// ExpensesByPeriod returns the expenses scoped to one time period.
func (c *Cache) ExpensesByPeriod(timePeriodID int64) []core.Expense {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Expense, 0)
	for _, e := range c.expenses {
		if e.TimePeriodID == timePeriodID {
			out = append(out, e)
		}
	}
	return out
}

// PaychecksByPeriod returns the paychecks scoped to one time period.
func (c *Cache) PaychecksByPeriod(timePeriodID int64) []core.Paycheck {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Paycheck, 0)
	for _, p := range c.paychecks {
		if p.TimePeriodID == timePeriodID {
			out = append(out, p)
		}
	}
	return out
}

// Balance derives income, expenses, and their difference for one period.
func (c *Cache) Balance(timePeriodID int64) core.Balance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.PeriodBalance(timePeriodID, c.expenses, c.paychecks)
}

// GlobalTotals derives the dashboard-level sums across all periods.
func (c *Cache) GlobalTotals() core.Balance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.GlobalTotals(c.expenses, c.paychecks)
}

// Summaries derives one row per time period for dashboard tables.
func (c *Cache) Summaries() []core.PeriodSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.Summaries(c.periods, c.expenses, c.paychecks)
}

// CategoryBreakdown derives the ranked per-category expense totals.
func (c *Cache) CategoryBreakdown() []core.CategoryAmount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.CategoryBreakdown(c.expenses)
}

func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the message of the most recent gateway failure, or
// the empty string. Validation failures never land here.
func (c *Cache) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Version increments on every applied change. Presentation code can key
// memoized derivations on it instead of deep-comparing collections.
func (c *Cache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// SetPeriodTypeFilter narrows the filtered views to periods of one type
// label; core.FilterAll (or the empty string) removes the narrowing.
func (c *Cache) SetPeriodTypeFilter(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.PeriodType = label
}

// SetPeriodFilter pins the filtered views to a single period. It takes
// precedence over any type filter until cleared.
func (c *Cache) SetPeriodFilter(timePeriodID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := timePeriodID
	c.filter.PeriodID = &id
}

func (c *Cache) ClearPeriodFilter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.PeriodID = nil
}

// ResetFilters restores the unfiltered view.
func (c *Cache) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = core.Filter{}
}

func (c *Cache) FilteredExpenses() []core.Expense {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.FilterExpenses(c.expenses, c.periods, c.filter)
}

func (c *Cache) FilteredPaychecks() []core.Paycheck {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.FilterPaychecks(c.paychecks, c.periods, c.filter)
}
