// Package memory is an in-process gateway used by the demo CLI backend
// and by tests that need a full gateway without a server.
package memory

import (
	"context"
	"net/http"
	"sync"
	"time"

	"paycheckbuddy/internal/core"
	"paycheckbuddy/internal/gateway"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu        sync.Mutex
	nextID    int64
	periods   []core.TimePeriod
	expenses  []core.Expense
	paychecks []core.Paycheck
	signKey   []byte
	tokenTTL  time.Duration
}

// Ensure interface conformance
var (
	_ gateway.UserDataFetcher  = (*Store)(nil)
	_ gateway.TimePeriodWriter = (*Store)(nil)
	_ gateway.ExpenseStore     = (*Store)(nil)
	_ gateway.PaycheckStore    = (*Store)(nil)
	_ gateway.Authenticator    = (*Store)(nil)
)

func New() *Store {
	return &Store{
		nextID:   1,
		signKey:  []byte("paycheckbuddy-demo"),
		tokenTTL: time.Hour,
	}
}

// NewSeeded returns a store preloaded with a small realistic data set so
// the CLI has something to show without a server.
func NewSeeded() *Store {
	s := New()
	ctx := context.Background()
	monthly, _ := s.CreateTimePeriod(ctx, core.TimePeriodDraft{Type: "monthly"})
	yearly, _ := s.CreateTimePeriod(ctx, core.TimePeriodDraft{Type: "yearly"})

	s.CreatePaycheck(ctx, monthly.ID, core.PaycheckDraft{Amount: decimal.NewFromInt(2000), DateReceived: core.NewDate(2025, 8, 1)})
	s.CreateExpense(ctx, monthly.ID, core.ExpenseDraft{Description: "Rent", Amount: decimal.NewFromInt(1200), Category: "Housing", IsRecurring: true, RecurrenceInterval: "monthly"})
	s.CreateExpense(ctx, monthly.ID, core.ExpenseDraft{Description: "Groceries", Amount: decimal.NewFromInt(300), Category: "Food"})
	s.CreatePaycheck(ctx, yearly.ID, core.PaycheckDraft{Amount: decimal.NewFromInt(500)})
	s.CreateExpense(ctx, yearly.ID, core.ExpenseDraft{Description: "Insurance", Amount: decimal.NewFromInt(900)})
	return s
}

func (s *Store) FetchUserData(_ context.Context) (core.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.UserData{
		TimePeriods: append([]core.TimePeriod(nil), s.periods...),
		Expenses:    append([]core.Expense(nil), s.expenses...),
		Paychecks:   append([]core.Paycheck(nil), s.paychecks...),
	}, nil
}

func (s *Store) CreateTimePeriod(_ context.Context, draft core.TimePeriodDraft) (core.TimePeriod, error) {
	if err := draft.Validate(); err != nil {
		return core.TimePeriod{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tp := core.TimePeriod{ID: s.allocID(), Type: draft.Type}
	s.periods = append(s.periods, tp)
	return tp, nil
}

func (s *Store) CreateExpense(_ context.Context, timePeriodID int64, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPeriod(timePeriodID) {
		return core.Expense{}, gateway.NewError("create expense", http.StatusNotFound, "time period not found")
	}
	e := expenseFromDraft(timePeriodID, draft)
	e.ID = s.allocID()
	s.expenses = append(s.expenses, e)
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, timePeriodID, expenseID int64, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == expenseID && e.TimePeriodID == timePeriodID {
			updated := expenseFromDraft(timePeriodID, draft)
			updated.ID = expenseID
			s.expenses[i] = updated
			return updated, nil
		}
	}
	return core.Expense{}, gateway.NewError("update expense", http.StatusNotFound, "expense not found")
}

func (s *Store) DeleteExpense(_ context.Context, timePeriodID, expenseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == expenseID && e.TimePeriodID == timePeriodID {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return gateway.NewError("delete expense", http.StatusNotFound, "expense not found")
}

func (s *Store) CreatePaycheck(_ context.Context, timePeriodID int64, draft core.PaycheckDraft) (core.Paycheck, error) {
	if err := draft.Validate(); err != nil {
		return core.Paycheck{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPeriod(timePeriodID) {
		return core.Paycheck{}, gateway.NewError("create paycheck", http.StatusNotFound, "time period not found")
	}
	p := paycheckFromDraft(timePeriodID, draft)
	p.ID = s.allocID()
	s.paychecks = append(s.paychecks, p)
	return p, nil
}

func (s *Store) UpdatePaycheck(_ context.Context, timePeriodID, paycheckID int64, draft core.PaycheckDraft) (core.Paycheck, error) {
	if err := draft.Validate(); err != nil {
		return core.Paycheck{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.paychecks {
		if p.ID == paycheckID && p.TimePeriodID == timePeriodID {
			updated := paycheckFromDraft(timePeriodID, draft)
			updated.ID = paycheckID
			s.paychecks[i] = updated
			return updated, nil
		}
	}
	return core.Paycheck{}, gateway.NewError("update paycheck", http.StatusNotFound, "paycheck not found")
}

func (s *Store) DeletePaycheck(_ context.Context, timePeriodID, paycheckID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.paychecks {
		if p.ID == paycheckID && p.TimePeriodID == timePeriodID {
			s.paychecks = append(s.paychecks[:i], s.paychecks[i+1:]...)
			return nil
		}
	}
	return gateway.NewError("delete paycheck", http.StatusNotFound, "paycheck not found")
}

// Login accepts any non-empty credential pair and issues a signed token,
// which is enough to exercise the session's expiry handling.
func (s *Store) Login(_ context.Context, username, password string) (gateway.Credentials, error) {
	if username == "" || password == "" {
		return gateway.Credentials{}, gateway.NewError("login", http.StatusBadRequest, "Username and password are required")
	}
	access, err := s.mintToken(username, s.tokenTTL)
	if err != nil {
		return gateway.Credentials{}, err
	}
	refresh, err := s.mintToken(username, 24*s.tokenTTL)
	if err != nil {
		return gateway.Credentials{}, err
	}
	return gateway.Credentials{
		User:         core.User{ID: 1, Username: username},
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Store) Register(ctx context.Context, username, password string) (gateway.Credentials, error) {
	return s.Login(ctx, username, password)
}

func (s *Store) RefreshToken(_ context.Context, refreshToken string) (string, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(refreshToken, &claims, func(t *jwt.Token) (any, error) {
		return s.signKey, nil
	})
	if err != nil {
		return "", gateway.NewError("refresh token", http.StatusUnauthorized, "invalid refresh token")
	}
	return s.mintToken(claims.Subject, s.tokenTTL)
}

func (s *Store) mintToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(s.signKey)
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) hasPeriod(id int64) bool {
	for _, tp := range s.periods {
		if tp.ID == id {
			return true
		}
	}
	return false
}

func expenseFromDraft(timePeriodID int64, d core.ExpenseDraft) core.Expense {
	return core.Expense{
		TimePeriodID:       timePeriodID,
		Description:        d.Description,
		Amount:             d.Amount,
		DueDate:            d.DueDate,
		Category:           d.Category,
		IsRecurring:        d.IsRecurring,
		RecurrenceInterval: d.RecurrenceInterval,
		Currency:           core.NormalizeCurrency(d.Currency),
	}
}

func paycheckFromDraft(timePeriodID int64, d core.PaycheckDraft) core.Paycheck {
	return core.Paycheck{
		TimePeriodID: timePeriodID,
		Amount:       d.Amount,
		DateReceived: d.DateReceived,
		Currency:     core.NormalizeCurrency(d.Currency),
	}
}
