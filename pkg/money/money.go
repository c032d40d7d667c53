// Package money formats projection amounts for display.
//
// The engine computes in float64; amounts are converted to decimal only at the
// presentation boundary so rounding happens once and consistently.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// String returns the amount with two decimals and no grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount rounded to whole units with thousands separators
// and the given currency prefix, e.g. "NT$6,367,914". Negative amounts are
// rendered as "-NT$1,234".
func (m Money) Format(currency string) string {
	return formatGrouped(m.Decimal, 0, currency)
}

// Format is a shorthand for NewMoney(v).Format(currency). Non-finite values
// render as "n/a" or a signed "∞".
func Format(v float64, currency string) string {
	if s, ok := nonFinite(v, currency); ok {
		return s
	}
	return NewMoney(v).Format(currency)
}

// Percent formats a percentage value such as 5 as "5.0%".
func Percent(v float64) string {
	if s, ok := nonFinite(v, ""); ok {
		return s
	}
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// Compact renders large amounts with K/M/B suffixes for chart axes.
func Compact(v float64, currency string) string {
	if s, ok := nonFinite(v, currency); ok {
		return s
	}
	d := decimal.NewFromFloat(v)
	abs := d.Abs()
	var suffix string
	switch {
	case abs.GreaterThanOrEqual(decimal.New(1, 9)):
		d, suffix = d.Div(decimal.New(1, 9)), "B"
	case abs.GreaterThanOrEqual(decimal.New(1, 6)):
		d, suffix = d.Div(decimal.New(1, 6)), "M"
	case abs.GreaterThanOrEqual(decimal.New(1, 3)):
		d, suffix = d.Div(decimal.New(1, 3)), "K"
	default:
		return formatGrouped(d, 0, currency)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + currency + d.StringFixed(1) + suffix
}

func formatGrouped(d decimal.Decimal, places int32, currency string) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	if strings.Trim(s, "0.") == "" {
		// rounded to zero; drop the sign
		sign = ""
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + currency + b.String() + frac
}

// nonFinite renders values decimal cannot hold.
func nonFinite(v float64, currency string) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return currency + "∞", true
	case math.IsInf(v, -1):
		return "-" + currency + "∞", true
	}
	return "", false
}
