package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTimePeriodDraftValidate(t *testing.T) {
	cases := []struct {
		typ string
		ok  bool
	}{
		{"monthly", true},
		{"bi-weekly", true},
		{"", false},
		{"x", false}, // below minimum length
	}
	for i, tc := range cases {
		err := TimePeriodDraft{Type: tc.typ}.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseDraftValidate(t *testing.T) {
	good := ExpenseDraft{
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Currency:    "USD",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	recurring := good
	recurring.IsRecurring = true
	recurring.RecurrenceInterval = "monthly"
	if err := recurring.Validate(); err != nil {
		t.Fatalf("expected ok for recurring with interval, got %v", err)
	}

	bads := []ExpenseDraft{
		{Description: "", Amount: decimal.NewFromInt(10)},
		{Description: "x", Amount: decimal.Zero},
		{Description: "x", Amount: decimal.NewFromInt(-5)},
		{Description: "x", Amount: decimal.NewFromInt(10), IsRecurring: true}, // missing interval
		{Description: "x", Amount: decimal.NewFromInt(10), Currency: "dollars"},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestPaycheckDraftValidate(t *testing.T) {
	if err := (PaycheckDraft{Amount: decimal.NewFromInt(2000)}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (PaycheckDraft{Amount: decimal.Zero}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2025, 3, 14))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-14"` {
		t.Fatalf("unexpected marshal output %s", b)
	}

	b, err = json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("zero date should marshal to null, got %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-12-01"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Year() != 2024 || int(d.Month()) != 12 || d.Day() != 1 {
		t.Fatalf("unexpected date %v", d)
	}

	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsEmpty() {
		t.Fatalf("null should produce an empty date")
	}
}

func TestExpenseJSONAmountIsNumber(t *testing.T) {
	e := Expense{ID: 1, TimePeriodID: 2, Description: "Food", Amount: decimal.RequireFromString("12.50"), Currency: "USD"}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["amount"]) != "12.5" {
		t.Fatalf("amount should be a plain JSON number, got %s", raw["amount"])
	}
}
