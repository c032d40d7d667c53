// Package tui is the interactive terminal front end: an input form, the
// projection results with a chart, a history sidebar and an optional
// narrative explanation.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/internal/history"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/tui/tuistyles"
)

type field int

const (
	fieldContribution field = iota
	fieldRate
	fieldYears
	fieldCount
)

func (f field) label() string {
	switch f {
	case fieldContribution:
		return "Monthly contribution"
	case fieldRate:
		return "Annual return (%)"
	case fieldYears:
		return "Horizon (years)"
	default:
		return ""
	}
}

// Model is the root bubbletea model.
type Model struct {
	engine    *calculation.CalculationEngine
	history   *history.Store
	generator narrative.Generator
	settings  config.Settings

	inputs []textinput.Model
	focus  field
	mode   domain.Mode

	request  domain.ProjectionRequest
	result   *domain.ProjectionResult
	inputErr error

	narrative    string
	narrativeErr error
	narrating    bool
	seq          int
	spinner      spinner.Model

	keys     keyMap
	showHelp bool
	width    int
	height   int
}

// NewModel creates the app model. A nil generator disables narratives.
func NewModel(engine *calculation.CalculationEngine, store *history.Store, gen narrative.Generator, settings config.Settings) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if store == nil {
		store = history.NewStore(settings.HistoryCapacity)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tuistyles.InfoStyle

	m := Model{
		engine:    engine,
		history:   store,
		generator: gen,
		settings:  settings,
		inputs:    make([]textinput.Model, fieldCount),
		mode:      domain.ModePeriodic,
		spinner:   s,
		keys:      defaultKeyMap(),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 16
		ti.Width = 16
		m.inputs[i] = ti
	}
	m.resetInputs()
	m.inputs[fieldContribution].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// resetInputs restores the form defaults. Results and history are kept.
func (m *Model) resetInputs() {
	d := config.DefaultRequest()
	m.inputs[fieldContribution].SetValue(strconv.FormatFloat(d.PeriodicContribution, 'f', -1, 64))
	m.inputs[fieldRate].SetValue(strconv.FormatFloat(d.AnnualRatePercent, 'f', -1, 64))
	m.inputs[fieldYears].SetValue(strconv.Itoa(d.HorizonYears))
	m.inputErr = nil
}

func (m Model) currency() string {
	if m.settings.Currency == "" {
		return "NT$"
	}
	return m.settings.Currency
}
