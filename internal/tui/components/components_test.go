package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finbuddy/internal/tui/tuistyles"
)

func TestASCIIChartEmpty(t *testing.T) {
	out := NewASCIIChart("Growth").Render()
	assert.Contains(t, out, "No data to display")
}

func TestASCIIChartDrawsSeriesAndReference(t *testing.T) {
	chart := NewASCIIChart("Growth").
		WithSize(40, 8).
		WithCurrency("NT$").
		WithXAxisLabel("month").
		AddSeries("DCA", []float64{100, 200, 300, 400}, tuistyles.ColorPeriodic).
		AddReference("Lump sum", 350, tuistyles.ColorLumpSum)

	out := chart.Render()
	assert.Contains(t, out, "Growth")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, string(referenceRune))
	assert.Contains(t, out, "month")
	assert.Contains(t, out, "DCA")
	assert.Contains(t, out, "Lump sum")
	assert.Contains(t, out, "NT$")
}

func TestASCIIChartBounds(t *testing.T) {
	chart := NewASCIIChart("").AddSeries("a", []float64{10, 20}, tuistyles.ColorPeriodic)
	lo, hi := chart.bounds()
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 21.0, hi, 1e-9)

	chart.AddReference("ref", 40, tuistyles.ColorLumpSum)
	_, hi = chart.bounds()
	assert.InDelta(t, 42.0, hi, 1e-9)

	flat := NewASCIIChart("").AddSeries("zero", []float64{0, 0, 0}, tuistyles.ColorPeriodic)
	lo, hi = flat.bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestASCIIChartSeriesEndpoints(t *testing.T) {
	chart := NewASCIIChart("").WithSize(23, 5).AddSeries("a", []float64{0, 10}, tuistyles.ColorPeriodic)
	lo, hi := chart.bounds()
	grid := chart.renderGrid(lo, hi)

	lines := strings.Split(grid, "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasSuffix(lines[0], "●"), lines[0])
	assert.Contains(t, lines[4], "│ ●")
}

func TestASCIIChartMinimumHeight(t *testing.T) {
	chart := NewASCIIChart("").WithSize(30, 1).AddSeries("a", []float64{0, 10}, tuistyles.ColorPeriodic)
	assert.Equal(t, minChartHeight, chart.Height)

	lo, hi := chart.bounds()
	lines := strings.Split(chart.renderGrid(lo, hi), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0]+lines[1], "n/a")

	zero := &ASCIIChart{Width: 30, Series: chart.Series}
	assert.NotPanics(t, func() { _ = zero.Render() })
}

func TestDrawLineStaysInBounds(t *testing.T) {
	grid := [][]rune{[]rune("   "), []rune("   ")}
	drawLine(grid, -2, -2, 5, 5, '*')
	assert.Equal(t, "*  ", string(grid[0]))
	assert.Equal(t, " * ", string(grid[1]))
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2").WithTone(TonePositive),
		NewMetricCard("C", "3").WithDescription("note").WithHighlight(true),
	}
	out := MetricGrid(cards, 2)
	for _, s := range []string{"A", "B", "C", "note"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, NewMetricCard("Final", "NT$1").RenderCompact(), "Final:")
}

func TestShareBar(t *testing.T) {
	bar := NewShareBar("DCA", 60, 100).WithWidth(10)
	assert.InDelta(t, 40.0, bar.GrowthPercentage(), 1e-9)
	out := bar.Render()
	assert.Contains(t, out, "40% growth")
	assert.Equal(t, 6, strings.Count(out, "█"))
	assert.Equal(t, 4, strings.Count(out, "▓"))

	assert.Equal(t, 0.0, NewShareBar("", 0, 0).GrowthPercentage())
	assert.Equal(t, 0.0, NewShareBar("", 100, 100).GrowthPercentage())
}
