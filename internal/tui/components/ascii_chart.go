package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finbuddy/internal/tui/tuistyles"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

const (
	yAxisWidth     = 10
	referenceRune  = '┄'
	minChartHeight = 2
)

// DataSeries is a single line in a chart.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
	Mark   rune
}

// ReferenceLine is a horizontal line drawn across the whole plot area.
type ReferenceLine struct {
	Name  string
	Value float64
	Color lipgloss.Color
}

// ASCIIChart draws line series against a shared y axis.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	References []ReferenceLine
	Width      int
	Height     int
	Currency   string
	XAxisLabel string
	ShowLegend bool
}

// NewASCIIChart creates a chart with a default size.
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries adds a line. Series marks cycle through ●, ■, ▲ and ♦.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	marks := []rune{'●', '■', '▲', '♦'}
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
		Mark:   marks[len(c.Series)%len(marks)],
	})
	return c
}

// AddReference adds a horizontal reference line at value.
func (c *ASCIIChart) AddReference(name string, value float64, color lipgloss.Color) *ASCIIChart {
	c.References = append(c.References, ReferenceLine{Name: name, Value: value, Color: color})
	return c
}

// WithSize sets the chart dimensions, y axis included.
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = max(height, minChartHeight)
	return c
}

// WithCurrency sets the prefix used for y axis values.
func (c *ASCIIChart) WithCurrency(currency string) *ASCIIChart {
	c.Currency = currency
	return c
}

// WithXAxisLabel sets the caption printed under the x axis.
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart.
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	b.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}
	if c.ShowLegend && len(c.Series)+len(c.References) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds returns the y range. The floor is zero unless a value is negative and
// the ceiling leaves 5% headroom.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := 0.0, math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	for _, r := range c.References {
		lo = math.Min(lo, r.Value)
		hi = math.Max(hi, r.Value)
	}
	if hi <= lo {
		return lo, lo + 1
	}
	return lo, hi * 1.05
}

func (c *ASCIIChart) plotWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 2 {
		return 2
	}
	return w
}

// rows is the grid height; a top and a bottom row are always drawn.
func (c *ASCIIChart) rows() int {
	return max(c.Height, minChartHeight)
}

func (c *ASCIIChart) row(v, lo, hi float64) int {
	n := c.rows()
	return n - 1 - int(math.Round((v-lo)/(hi-lo)*float64(n-1)))
}

func (c *ASCIIChart) col(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width, height := c.plotWidth(), c.rows()
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, r := range c.References {
		y := c.row(r.Value, lo, hi)
		if y < 0 || y >= height {
			continue
		}
		for x := range grid[y] {
			grid[y][x] = referenceRune
		}
	}

	for _, s := range c.Series {
		n := len(s.Points)
		for i, p := range s.Points {
			x, y := c.col(i, n, width), c.row(p, lo, hi)
			if i > 0 {
				drawLine(grid, c.col(i-1, n, width), c.row(s.Points[i-1], lo, hi), x, y, s.Mark)
			} else {
				set(grid, x, y, s.Mark)
			}
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var out strings.Builder
	for i, row := range grid {
		label := ""
		if i == 0 || i == height-1 || i == (height-1)/2 {
			label = money.Compact(hi-float64(i)/float64(height-1)*(hi-lo), c.Currency)
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width+1))
	return out.String()
}

func set(grid [][]rune, x, y int, r rune) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = r
	}
}

// drawLine connects two cells with Bresenham's algorithm.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, r rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		set(grid, x0, y0, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *ASCIIChart) renderLegend() string {
	var items []string
	for _, s := range c.Series {
		items = append(items, fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Mark)), s.Name))
	}
	for _, r := range c.References {
		items = append(items, fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(r.Color).Render(string(referenceRune)), r.Name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.Join(items, " • "))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
