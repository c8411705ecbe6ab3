// Package datacache mirrors the server-held collections in memory for
// the lifetime of one authenticated session and keeps them consistent
// across mutations issued from independent screens.
//
// Every mutation is confirm-then-apply: local state changes only after
// the gateway acknowledges, so a failed request can never leave the
// mirror out of step with the server.
package datacache

import (
	"context"
	"log/slog"
	"sync"

	"paycheckbuddy/internal/core"
	"paycheckbuddy/internal/gateway"
	"paycheckbuddy/internal/metrics"

	"golang.org/x/sync/singleflight"
)

// Gateway bundles the remote ports the cache mutates through.
type Gateway interface {
	gateway.UserDataFetcher
	gateway.TimePeriodWriter
	gateway.ExpenseStore
	gateway.PaycheckStore
}

// SessionState is the read-only authentication signal consumed by the
// cache; the session package provides it.
type SessionState interface {
	Authenticated() bool
}

type Cache struct {
	gw      Gateway
	session SessionState
	group   singleflight.Group

	mu        sync.Mutex
	periods   []core.TimePeriod
	expenses  []core.Expense
	paychecks []core.Paycheck
	loaded    bool
	loading   bool
	lastErr   string
	version   uint64
	gen       uint64
	filter    core.Filter
}

func New(gw Gateway, session SessionState) *Cache {
	return &Cache{gw: gw, session: session}
}

// LoadAll populates the three collections with one bulk fetch. It is a
// no-op while unauthenticated or once a load has succeeded, and calls
// arriving during an in-flight fetch share that fetch instead of
// triggering their own; screens can therefore invoke it freely.
func (c *Cache) LoadAll(ctx context.Context) error {
	c.mu.Lock()
	if !c.session.Authenticated() || c.loaded {
		c.mu.Unlock()
		return nil
	}
	gen := c.gen
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	_, err, _ := c.group.Do("user_data", func() (any, error) {
		return c.fetchAndInstall(ctx, gen)
	})
	return err
}

// fetchAndInstall is the body of the shared load flight. The generation
// captured before the fetch ties the payload to the session that asked
// for it: a Reset while the request is in flight bumps the generation,
// and a payload from a stale generation is dropped on the floor instead
// of resurrecting the previous user's data.
func (c *Cache) fetchAndInstall(ctx context.Context, gen uint64) (any, error) {
	c.mu.Lock()
	if c.loaded {
		c.loading = false
		c.mu.Unlock()
		return nil, nil
	}
	c.mu.Unlock()

	data, err := c.gw.FetchUserData(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.gen != gen || !c.session.Authenticated() {
		slog.DebugContext(ctx, "Discarding bulk payload from ended session")
		return nil, nil
	}
	if err != nil {
		c.lastErr = gateway.Message(err)
		slog.ErrorContext(ctx, "Bulk load failed", "error", err)
		return nil, err
	}
	c.periods = data.TimePeriods
	c.expenses = data.Expenses
	c.paychecks = data.Paychecks
	c.loaded = true
	c.version++
	metrics.CacheLoadsTotal.Inc()
	return nil, nil
}

// Reset clears every collection and flag atomically. It runs on the
// logout transition so no stale rows survive into the next session.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.periods = nil
	c.expenses = nil
	c.paychecks = nil
	c.loaded = false
	c.loading = false
	c.lastErr = ""
	c.filter = core.Filter{}
	c.version++
	c.gen++
}

// CreateTimePeriod validates the draft, asks the gateway to create the
// period, and appends the confirmed entity.
func (c *Cache) CreateTimePeriod(ctx context.Context, draft core.TimePeriodDraft) (core.TimePeriod, error) {
	if err := draft.Validate(); err != nil {
		return core.TimePeriod{}, err
	}
	c.beginOp()
	tp, err := c.gw.CreateTimePeriod(ctx, draft)
	if err != nil {
		c.failOp(err)
		return core.TimePeriod{}, err
	}
	c.mu.Lock()
	c.periods = append(c.periods, tp)
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("time_period", "create").Inc()
	return tp, nil
}

func (c *Cache) CreateExpense(ctx context.Context, timePeriodID int64, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}
	c.beginOp()
	e, err := c.gw.CreateExpense(ctx, timePeriodID, draft)
	if err != nil {
		c.failOp(err)
		return core.Expense{}, err
	}
	c.mu.Lock()
	c.expenses = append(c.expenses, e)
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("expense", "create").Inc()
	return e, nil
}

func (c *Cache) UpdateExpense(ctx context.Context, timePeriodID, expenseID int64, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}
	if !c.hasExpense(expenseID) {
		return core.Expense{}, core.ErrNotFound
	}
	c.beginOp()
	e, err := c.gw.UpdateExpense(ctx, timePeriodID, expenseID, draft)
	if err != nil {
		c.failOp(err)
		return core.Expense{}, err
	}
	c.mu.Lock()
	for i := range c.expenses {
		if c.expenses[i].ID == expenseID {
			c.expenses[i] = e
			break
		}
	}
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("expense", "update").Inc()
	return e, nil
}

func (c *Cache) DeleteExpense(ctx context.Context, timePeriodID, expenseID int64) error {
	if !c.hasExpense(expenseID) {
		return core.ErrNotFound
	}
	c.beginOp()
	if err := c.gw.DeleteExpense(ctx, timePeriodID, expenseID); err != nil {
		c.failOp(err)
		return err
	}
	c.mu.Lock()
	for i := range c.expenses {
		if c.expenses[i].ID == expenseID {
			c.expenses = append(c.expenses[:i], c.expenses[i+1:]...)
			break
		}
	}
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("expense", "delete").Inc()
	return nil
}

func (c *Cache) CreatePaycheck(ctx context.Context, timePeriodID int64, draft core.PaycheckDraft) (core.Paycheck, error) {
	if err := draft.Validate(); err != nil {
		return core.Paycheck{}, err
	}
	c.beginOp()
	p, err := c.gw.CreatePaycheck(ctx, timePeriodID, draft)
	if err != nil {
		c.failOp(err)
		return core.Paycheck{}, err
	}
	c.mu.Lock()
	c.paychecks = append(c.paychecks, p)
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("paycheck", "create").Inc()
	return p, nil
}

func (c *Cache) UpdatePaycheck(ctx context.Context, timePeriodID, paycheckID int64, draft core.PaycheckDraft) (core.Paycheck, error) {
	if err := draft.Validate(); err != nil {
		return core.Paycheck{}, err
	}
	if !c.hasPaycheck(paycheckID) {
		return core.Paycheck{}, core.ErrNotFound
	}
	c.beginOp()
	p, err := c.gw.UpdatePaycheck(ctx, timePeriodID, paycheckID, draft)
	if err != nil {
		c.failOp(err)
		return core.Paycheck{}, err
	}
	c.mu.Lock()
	for i := range c.paychecks {
		if c.paychecks[i].ID == paycheckID {
			c.paychecks[i] = p
			break
		}
	}
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("paycheck", "update").Inc()
	return p, nil
}

func (c *Cache) DeletePaycheck(ctx context.Context, timePeriodID, paycheckID int64) error {
	if !c.hasPaycheck(paycheckID) {
		return core.ErrNotFound
	}
	c.beginOp()
	if err := c.gw.DeletePaycheck(ctx, timePeriodID, paycheckID); err != nil {
		c.failOp(err)
		return err
	}
	c.mu.Lock()
	for i := range c.paychecks {
		if c.paychecks[i].ID == paycheckID {
			c.paychecks = append(c.paychecks[:i], c.paychecks[i+1:]...)
			break
		}
	}
	c.version++
	c.mu.Unlock()
	metrics.CacheMutationsTotal.WithLabelValues("paycheck", "delete").Inc()
	return nil
}

// beginOp clears the previous error before a gateway-backed operation,
// matching how every screen expects a fresh slate per attempt.
func (c *Cache) beginOp() {
	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
}

func (c *Cache) failOp(err error) {
	c.mu.Lock()
	c.lastErr = gateway.Message(err)
	c.mu.Unlock()
}

func (c *Cache) hasExpense(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.expenses {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (c *Cache) hasPaycheck(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.paychecks {
		if p.ID == id {
			return true
		}
	}
	return false
}
