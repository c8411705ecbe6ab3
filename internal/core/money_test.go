package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 2000 ", "2000", true},
		{"0.01", "0.01", true},
		{"", "", false},
		{"abc", "", false},
		{"0", "", false},
		{"-5", "", false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d expected ok, got %v", i, err)
			}
			if got.String() != tc.want {
				t.Fatalf("case %d got %s, want %s", i, got, tc.want)
			}
			continue
		}
		if err != ErrInvalidAmount {
			t.Fatalf("case %d expected ErrInvalidAmount, got %v", i, err)
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	if got := NormalizeCurrency(""); got != "USD" {
		t.Fatalf("blank currency should default to USD, got %q", got)
	}
	if got := NormalizeCurrency(" eur "); got != "EUR" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	d, _ := ParseAmount("1200.5")
	if got := FormatAmount(d, ""); got != "USD 1200.50" {
		t.Fatalf("got %q", got)
	}
}
