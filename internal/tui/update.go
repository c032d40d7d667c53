package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ProjectionCompleteMsg:
		return m.handleProjection(msg)

	case NarrativeMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.narrating = false
		m.narrative, m.narrativeErr = msg.Text, msg.Err
		return m, nil

	case spinner.TickMsg:
		if !m.narrating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keys.ToggleMode):
		if m.mode == domain.ModeLumpSum {
			m.mode = domain.ModePeriodic
		} else {
			m.mode = domain.ModeLumpSum
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.resetInputs()
		return m, nil

	case key.Matches(msg, m.keys.ClearHistory):
		m.history.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		req, err := m.parseRequest()
		if err != nil {
			m.inputErr = err
			return m, nil
		}
		m.inputErr = nil
		return m, projectCmd(m.engine, req)
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// handleProjection stores the result, records it in history and, when a
// generator is configured, starts the narrative request.
func (m Model) handleProjection(msg ProjectionCompleteMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	m.request = msg.Request
	m.result = &res
	m.history.Record(msg.Request)

	m.seq++
	m.narrative, m.narrativeErr = "", nil
	if m.generator == nil {
		m.narrating = false
		return m, nil
	}

	m.narrating = true
	facts := narrative.FactsFrom(msg.Request, res, m.currency(), m.settings.Language)
	return m, tea.Batch(
		m.spinner.Tick,
		narrateCmd(m.generator, m.settings, m.seq, narrative.BuildPrompt(facts)),
	)
}

func projectCmd(engine *calculation.CalculationEngine, req domain.ProjectionRequest) tea.Cmd {
	return func() tea.Msg {
		return ProjectionCompleteMsg{Request: req, Result: engine.Project(req)}
	}
}

func narrateCmd(gen narrative.Generator, settings config.Settings, seq int, p narrative.Prompt) tea.Cmd {
	return func() tea.Msg {
		text, err := narrative.Narrate(context.Background(), gen, settings.NarrativeTimeout, p)
		return NarrativeMsg{Seq: seq, Text: text, Err: err}
	}
}

// parseRequest reads the form. Parse failures and out-of-range values are
// both reported as config.ErrInvalidInput.
func (m Model) parseRequest() (domain.ProjectionRequest, error) {
	var req domain.ProjectionRequest

	contribution, err := parseNumber(m.inputs[fieldContribution].Value())
	if err != nil {
		return req, fmt.Errorf("%w: monthly contribution must be a number", config.ErrInvalidInput)
	}
	rate, err := parseNumber(strings.TrimSuffix(strings.TrimSpace(m.inputs[fieldRate].Value()), "%"))
	if err != nil {
		return req, fmt.Errorf("%w: annual rate must be a number", config.ErrInvalidInput)
	}
	years, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldYears].Value()))
	if err != nil {
		return req, fmt.Errorf("%w: horizon must be a whole number of years", config.ErrInvalidInput)
	}

	req = domain.ProjectionRequest{
		PeriodicContribution: contribution,
		AnnualRatePercent:    rate,
		HorizonYears:         years,
	}
	return req, config.ValidateRequest(req)
}

// parseNumber accepts thousands separators such as "10,000".
func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	return strconv.ParseFloat(s, 64)
}
