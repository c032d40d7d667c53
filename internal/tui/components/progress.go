package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finbuddy/internal/tui/tuistyles"
)

// ShareBar splits a balance into the part that was paid in and the part that
// was earned.
type ShareBar struct {
	Label       string
	Contributed float64
	Total       float64
	Width       int
}

// NewShareBar creates a share bar for a final balance.
func NewShareBar(label string, contributed, total float64) *ShareBar {
	return &ShareBar{Label: label, Contributed: contributed, Total: total, Width: 30}
}

// WithWidth sets the bar width
func (p *ShareBar) WithWidth(width int) *ShareBar {
	p.Width = width
	return p
}

// GrowthPercentage returns the earned share of the total, in [0, 100].
func (p *ShareBar) GrowthPercentage() float64 {
	if p.Total <= 0 || p.Contributed >= p.Total {
		return 0
	}
	return (p.Total - p.Contributed) / p.Total * 100
}

// Render returns the styled bar.
func (p *ShareBar) Render() string {
	growth := p.GrowthPercentage()
	earned := int(float64(p.Width)*growth/100 + 0.5)
	paid := p.Width - earned

	paidStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorInfo)
	earnedStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(tuistyles.MetricLabelStyle.Render(p.Label))
		b.WriteString(" ")
	}
	b.WriteString("[")
	b.WriteString(paidStyle.Render(strings.Repeat("█", paid)))
	b.WriteString(earnedStyle.Render(strings.Repeat("▓", earned)))
	b.WriteString("] ")
	b.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%.0f%% growth", growth)))
	return b.String()
}
