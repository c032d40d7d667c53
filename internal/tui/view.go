package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/internal/output"
	"github.com/rgehrsitz/finbuddy/internal/tui/components"
	"github.com/rgehrsitz/finbuddy/internal/tui/tuistyles"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

const (
	defaultWidth  = 120
	sidebarWidth  = 34
	historyListed = 10
)

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	mainWidth := width - sidebarWidth - 4
	if mainWidth < 40 {
		mainWidth = 40
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderForm(),
		m.renderResults(mainWidth),
		m.renderNarrative(mainWidth),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth).Render(main),
		"  ",
		m.renderHistory(),
	)

	sections := []string{m.renderTitle(), "", body, ""}
	if m.showHelp {
		sections = append(sections, m.renderHelp(), "")
	}
	sections = append(sections, m.renderStatusBar())
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTitle() string {
	return tuistyles.TitleStyle.Render("FinBuddy") + " " +
		tuistyles.SubtitleStyle.Render("compound growth: dollar-cost averaging vs lump sum")
}

func (m Model) renderForm() string {
	var b strings.Builder
	for f := fieldContribution; f < fieldCount; f++ {
		label := fmt.Sprintf("%-22s", f.label())
		if f == m.focus {
			b.WriteString(tuistyles.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(tuistyles.ParameterLabelStyle.Render(label))
		}
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%-22s", "Mode"))
	b.WriteString(tuistyles.ParameterValueStyle.Render(m.mode.Label()))

	if m.inputErr != nil {
		b.WriteString("\n\n")
		b.WriteString(tuistyles.ErrorStyle.Render("✗ " + m.inputErr.Error()))
	}
	return tuistyles.BorderStyle.Render(b.String())
}

func (m Model) renderResults(width int) string {
	if m.result == nil {
		return "\n" + tuistyles.SubtitleStyle.Render("Press enter to run the simulation.")
	}
	res, cur := *m.result, m.currency()

	report := output.NewReport(m.request, res)
	report.Mode = m.mode
	report.Currency = cur
	headline, headlineValue := report.Headline()

	diffTone := components.ToneNeutral
	switch res.Leader() {
	case domain.StrategyLumpSum:
		diffTone = components.TonePositive
	case domain.StrategyPeriodic:
		diffTone = components.ToneNegative
	}

	cards := []*components.MetricCard{
		components.NewMetricCard(headline+" (selected)", money.Format(headlineValue, cur)).WithHighlight(true).WithWidth(36),
		components.NewMetricCard("Total contributed", money.Format(res.LumpSumPrincipal, cur)).
			WithDescription(fmt.Sprintf("%d months", m.request.PeriodCount())),
		components.NewMetricCard("Dollar-cost averaging", money.Format(res.PeriodicFinal, cur)),
		components.NewMetricCard("Lump sum", money.Format(res.LumpSumFinal, cur)),
		components.NewMetricCard("Lump sum minus DCA", money.Format(res.Difference, cur)).WithTone(diffTone),
	}

	columns := max(1, width/28)
	chartWidth := min(width, 90)
	chart := components.NewASCIIChart("Balance by month").
		WithSize(chartWidth, 12).
		WithCurrency(cur).
		WithXAxisLabel(fmt.Sprintf("month 1 → %d", len(res.PeriodicSeries))).
		AddSeries("Dollar-cost averaging", res.PeriodicSeries, tuistyles.ColorPeriodic).
		AddReference("Lump sum final", res.LumpSumFinal, tuistyles.ColorLumpSum)

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		components.MetricGrid(cards, columns),
		tuistyles.InfoStyle.Render(output.DifferenceLabel(res.Difference, cur)),
		"",
		components.NewShareBar("DCA     ", res.LumpSumPrincipal, res.PeriodicFinal).Render(),
		components.NewShareBar("Lump sum", res.LumpSumPrincipal, res.LumpSumFinal).Render(),
		"",
		chart.Render(),
	)
}

func (m Model) renderNarrative(width int) string {
	var body string
	switch {
	case m.narrating:
		body = m.spinner.View() + " FinBuddy is thinking..."
	case m.narrativeErr != nil:
		body = tuistyles.ErrorStyle.Render("Explanation unavailable: " + m.narrativeErr.Error())
	case m.narrative != "":
		body = lipgloss.NewStyle().Width(width - 4).Render(m.narrative)
	default:
		return ""
	}
	return "\n" + tuistyles.BorderStyle.Render(
		tuistyles.ParameterLabelStyle.Render("FinBuddy says")+"\n\n"+body)
}

// renderHistory lists past simulations, newest first.
func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(tuistyles.ParameterLabelStyle.Render("History"))
	b.WriteString("\n\n")

	entries := m.history.Entries()
	if len(entries) == 0 {
		b.WriteString(tuistyles.SubtitleStyle.Render("No simulations yet"))
	}
	for i, e := range entries {
		if i == historyListed {
			b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("… %d more", len(entries)-i)))
			break
		}
		b.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("#%d %s", i+1, e.CreatedAt.Format("15:04:05"))))
		b.WriteString("\n")
		b.WriteString(e.Summary)
		b.WriteString("\n\n")
	}
	return tuistyles.BorderStyle.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderHelp() string {
	var lines []string
	for _, k := range m.keys.fullHelp() {
		h := k.Help()
		lines = append(lines, fmt.Sprintf("%s  %s",
			tuistyles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
			tuistyles.HelpDescStyle.Render(h.Desc)))
	}
	return tuistyles.BorderStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	var parts []string
	for _, k := range m.keys.shortHelp() {
		parts = append(parts, formatShortcut(k))
	}
	return tuistyles.StatusBarStyle.Render(strings.Join(parts, "  "))
}

func formatShortcut(k key.Binding) string {
	h := k.Help()
	return tuistyles.StatusKeyStyle.Render(h.Key) + " " + tuistyles.HelpDescStyle.Render(h.Desc)
}
