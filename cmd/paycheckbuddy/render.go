package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"paycheckbuddy/internal/core"
	"paycheckbuddy/internal/datacache"
)

// renderOverview prints the dashboard: one row per time period, the
// totals across all periods, and the spending split by category.
func renderOverview(w io.Writer, cache *datacache.Cache) error {
	summaries := cache.Summaries()
	core.SortSummaries(summaries, core.ColBalance, false)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tPERIOD\tINCOME\tEXPENSES\tBALANCE\tROWS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
			s.Period.ID,
			s.Period.Type,
			s.Income.StringFixed(2),
			s.Expenses.StringFixed(2),
			s.Balance.Balance.StringFixed(2),
			s.ExpenseCount,
			s.PaycheckCount,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	totals := cache.GlobalTotals()
	fmt.Fprintf(w, "\nTotal income:   %s\n", core.FormatAmount(totals.Income, core.DefaultCurrency))
	fmt.Fprintf(w, "Total expenses: %s\n", core.FormatAmount(totals.Expenses, core.DefaultCurrency))
	fmt.Fprintf(w, "Balance:        %s\n", core.FormatAmount(totals.Balance, core.DefaultCurrency))

	breakdown := cache.CategoryBreakdown()
	if len(breakdown) == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nSpending by category:")
	ctw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range breakdown {
		fmt.Fprintf(ctw, "  %s\t%s\n", c.Name, c.Value.StringFixed(2))
	}
	return ctw.Flush()
}
