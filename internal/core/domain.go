package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// TimePeriod is a shared financial cycle (e.g. "monthly") that scopes
	// expenses and paychecks. Users can create periods but never edit or
	// delete them from this client.
	TimePeriod struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}

	Expense struct {
		ID                 int64           `json:"id"`
		TimePeriodID       int64           `json:"time_period_id"`
		Description        string          `json:"description"`
		Amount             decimal.Decimal `json:"amount"`
		DueDate            Date            `json:"due_date"`
		Category           string          `json:"category,omitempty"`
		IsRecurring        bool            `json:"is_recurring"`
		RecurrenceInterval string          `json:"recurrence_interval,omitempty"`
		Currency           string          `json:"currency"`
	}

	Paycheck struct {
		ID           int64           `json:"id"`
		TimePeriodID int64           `json:"time_period_id"`
		Amount       decimal.Decimal `json:"amount"`
		DateReceived Date            `json:"date_received"`
		Currency     string          `json:"currency"`
	}

	// User identifies the authenticated account; the server returns it
	// alongside the token pair on login and register.
	User struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}

	// UserData is the bulk payload returned by the gateway's
	// fetch-everything endpoint for the current user.
	UserData struct {
		TimePeriods []TimePeriod `json:"time_periods"`
		Expenses    []Expense    `json:"expenses"`
		Paychecks   []Paycheck   `json:"paychecks"`
	}
)

type (
	// TimePeriodDraft is the user input for creating a time period.
	TimePeriodDraft struct {
		Type string `json:"type" validate:"required,min=2,max=50"`
	}

	// ExpenseDraft is the user input for creating or replacing an expense.
	// The owning time period is addressed separately.
	ExpenseDraft struct {
		Description        string          `json:"description" validate:"required,max=255"`
		Amount             decimal.Decimal `json:"amount"`
		DueDate            Date            `json:"due_date"`
		Category           string          `json:"category,omitempty" validate:"max=80"`
		IsRecurring        bool            `json:"is_recurring"`
		RecurrenceInterval string          `json:"recurrence_interval,omitempty" validate:"required_if=IsRecurring true,max=50"`
		Currency           string          `json:"currency,omitempty" validate:"omitempty,iso4217"`
	}

	PaycheckDraft struct {
		Amount       decimal.Decimal `json:"amount"`
		DateReceived Date            `json:"date_received"`
		Currency     string          `json:"currency,omitempty" validate:"omitempty,iso4217"`
	}
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive decimal")
	ErrNotFound      = errors.New("not found")
)

func (d TimePeriodDraft) Validate() error {
	return validateStruct(d)
}

func (d ExpenseDraft) Validate() error {
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return validateStruct(d)
}

func (d PaycheckDraft) Validate() error {
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return validateStruct(d)
}

// Date is an optional calendar date exchanged as "YYYY-MM-DD" on the
// wire. The zero value marshals to null.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date was never set.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
