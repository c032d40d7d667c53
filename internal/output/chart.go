package output

import (
	"fmt"
	"strings"
)

// plot maps a monthly series and a horizontal reference value onto a
// rectangular drawing area whose origin is the top-left corner.
type plot struct {
	Left, Top, Width, Height float64
	MaxY                     float64
	N                        int
}

func newPlot(series []float64, reference, left, top, width, height float64) plot {
	maxY := reference
	for _, v := range series {
		if v > maxY {
			maxY = v
		}
	}
	if maxY <= 0 {
		maxY = 1
	}
	// headroom above the highest value
	maxY *= 1.05
	return plot{Left: left, Top: top, Width: width, Height: height, MaxY: maxY, N: len(series)}
}

// X returns the horizontal position of the i-th (zero based) month.
func (p plot) X(i int) float64 {
	if p.N <= 1 {
		return p.Left
	}
	return p.Left + float64(i)*p.Width/float64(p.N-1)
}

// Y returns the vertical position of value v.
func (p plot) Y(v float64) float64 {
	return p.Top + p.Height - v/p.MaxY*p.Height
}

// Ticks returns n+1 evenly spaced values from zero to MaxY.
func (p plot) Ticks(n int) []float64 {
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, p.MaxY*float64(i)/float64(n))
	}
	return ticks
}

// svgPoints renders the series as an SVG polyline points attribute.
func (p plot) svgPoints(series []float64) string {
	var b strings.Builder
	for i, v := range series {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", p.X(i), p.Y(v))
	}
	return b.String()
}
