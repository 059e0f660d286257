package utils

import (
	"testing"
	"time"
)

func TestFormatBudget(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{999, "$999.00"},
		{1500, "$1,500.00"},
		{1500000, "$1,500,000.00"},
		{1234567.89, "$1,234,567.89"},
	}
	for _, tc := range cases {
		if got := FormatBudget(tc.in); got != tc.want {
			t.Errorf("FormatBudget(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got := FormatBudgetPtr(nil); got != "" {
		t.Errorf("FormatBudgetPtr(nil) = %q, want empty", got)
	}
	v := 2500.0
	if got := FormatBudgetPtr(&v); got != "$2,500.00" {
		t.Errorf("FormatBudgetPtr(&2500) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.Local)
	if got := FormatDate(d); got != "March 5, 2026" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("zero time should format empty, got %q", got)
	}
	if got := FormatDatePtr(nil); got != "" {
		t.Errorf("FormatDatePtr(nil) = %q, want empty", got)
	}
}
