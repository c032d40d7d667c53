package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	assert.Equal(t, "12.35", m.String())

	d := decimal.NewFromFloat(10.125)
	assert.True(t, NewMoneyFromDecimal(d).Decimal.Equal(d))
	assert.Equal(t, "-1,234", NewMoneyFromDecimal(decimal.NewFromFloat(-1234.4)).Format(""))
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in       float64
		currency string
		want     string
	}{
		{0, "NT$", "NT$0"},
		{999.4, "NT$", "NT$999"},
		{1000, "NT$", "NT$1,000"},
		{6367914.4923, "NT$", "NT$6,367,914"},
		{2400000, "$", "$2,400,000"},
		{-1234567.8, "$", "-$1,234,568"},
		{-0.2, "$", "$0"},
		{123456789012, "", "123,456,789,012"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Format(c.in, c.currency), "Format(%v)", c.in)
	}
}

func TestNonFiniteValuesDoNotPanic(t *testing.T) {
	cases := []struct {
		in      float64
		format  string
		compact string
	}{
		{math.Inf(1), "NT$∞", "NT$∞"},
		{math.Inf(-1), "-NT$∞", "-NT$∞"},
		{math.NaN(), "n/a", "n/a"},
	}
	for _, c := range cases {
		assert.NotPanics(t, func() {
			assert.Equal(t, c.format, Format(c.in, "NT$"))
			assert.Equal(t, c.compact, Compact(c.in, "NT$"))
			Percent(c.in)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "5.0%", Percent(5))
	assert.Equal(t, "12.3%", Percent(12.34))
	assert.Equal(t, "100.0%", Percent(100))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "$950", Compact(950, "$"))
	assert.Equal(t, "$12.5K", Compact(12500, "$"))
	assert.Equal(t, "NT$6.4M", Compact(6367914, "NT$"))
	assert.Equal(t, "$1.2B", Compact(1.2e9, "$"))
	assert.Equal(t, "-$2.0M", Compact(-2e6, "$"))
}
