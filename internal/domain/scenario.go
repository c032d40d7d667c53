package domain

import "fmt"

// Mode selects which strategy is presented as the headline figure.
// Both strategies are always computed.
type Mode string

const (
	ModePeriodic Mode = "periodic"
	ModeLumpSum  Mode = "lump_sum"
)

// ParseMode converts user input into a Mode. An empty string yields ModePeriodic.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "periodic", "dca":
		return ModePeriodic, nil
	case "lump_sum", "lump-sum", "lump":
		return ModeLumpSum, nil
	default:
		return "", fmt.Errorf("unknown mode %q (valid: periodic, lump_sum)", s)
	}
}

// Label returns a display name for the mode.
func (m Mode) Label() string {
	if m == ModeLumpSum {
		return "Lump Sum"
	}
	return "Dollar-Cost Averaging"
}

// Scenario is a named projection request loaded from a scenario file.
type Scenario struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Request     ProjectionRequest `yaml:",inline" json:"request"`
}

// ScenarioFile is the top-level structure of a YAML scenario file.
type ScenarioFile struct {
	Currency  string     `yaml:"currency,omitempty" json:"currency,omitempty"`
	Mode      Mode       `yaml:"mode,omitempty" json:"mode,omitempty"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Find returns the scenario with the given name.
func (f *ScenarioFile) Find(name string) (*Scenario, bool) {
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == name {
			return &f.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioOutcome pairs a scenario with its projection result.
type ScenarioOutcome struct {
	Scenario Scenario         `json:"scenario"`
	Result   ProjectionResult `json:"result"`
}
