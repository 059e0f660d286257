package utils

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatBudget renders an estimated budget the way it appears in
// submission emails, e.g. 1500000 -> "$1,500,000.00".
func FormatBudget(amount float64) string {
	return usPrinter.Sprintf("$%.2f", amount)
}

// FormatBudgetPtr renders an optional budget, empty when unset.
func FormatBudgetPtr(amount *float64) string {
	if amount == nil {
		return ""
	}
	return FormatBudget(*amount)
}

// FormatDate returns the long-form date used in emails and on the
// tracking page.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format("January 2, 2006")
}

// FormatDatePtr returns the long-form date for pointer values.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
