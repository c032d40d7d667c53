package output

import "github.com/rgehrsitz/finbuddy/pkg/money"

// FormatCurrency formats an amount rounded to whole units with thousands
// separators, e.g. "NT$6,367,914".
func FormatCurrency(amount float64, currency string) string { return money.Format(amount, currency) }

// FormatPercentage formats a percentage with one decimal.
func FormatPercentage(v float64) string { return money.Percent(v) }
