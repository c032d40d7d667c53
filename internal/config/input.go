package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// Input bounds accepted by the projection engine.
const (
	MinAnnualRatePercent = 0.0
	MaxAnnualRatePercent = 100.0
	MinHorizonYears      = 1
	MaxHorizonYears      = 100

	// MaxProjectedAmount bounds the principal and both final balances. It
	// leaves headroom below math.MaxFloat64 for sums and chart scaling.
	MaxProjectedAmount = 1e300
)

// Defaults mirror the values pre-filled in the input form.
const (
	DefaultContribution      = 10000.0
	DefaultAnnualRatePercent = 5.0
	DefaultHorizonYears      = 20
)

// ErrInvalidInput is returned (wrapped) for any request outside the accepted bounds.
var ErrInvalidInput = errors.New("invalid input")

// DefaultRequest returns the request shown when the form is first opened or cleared.
func DefaultRequest() domain.ProjectionRequest {
	return domain.ProjectionRequest{
		PeriodicContribution: DefaultContribution,
		AnnualRatePercent:    DefaultAnnualRatePercent,
		HorizonYears:         DefaultHorizonYears,
	}
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML file and validates them.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML scenario data and validates it.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioFile, error) {
	var file domain.ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if mode, err := domain.ParseMode(string(file.Mode)); err == nil {
		file.Mode = mode
	}

	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &file, nil
}

// ValidateScenarioFile validates every scenario in the file.
func (ip *InputParser) ValidateScenarioFile(file *domain.ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios provided", ErrInvalidInput)
	}
	if _, err := domain.ParseMode(string(file.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i, sc := range file.Scenarios {
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			return fmt.Errorf("%w: scenario %d: name is required", ErrInvalidInput, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate scenario name %q", ErrInvalidInput, name)
		}
		seen[name] = true

		if err := ValidateRequest(sc.Request); err != nil {
			return fmt.Errorf("scenario %d (%s): %w", i, name, err)
		}
	}
	return nil
}

// ValidateRequest rejects any request outside the engine's accepted bounds.
// Values are never clamped.
func ValidateRequest(req domain.ProjectionRequest) error {
	c := req.PeriodicContribution
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%w: monthly contribution must be a finite number", ErrInvalidInput)
	}
	if c < 0 {
		return fmt.Errorf("%w: monthly contribution cannot be negative", ErrInvalidInput)
	}

	r := req.AnnualRatePercent
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: annual rate must be a finite number", ErrInvalidInput)
	}
	if r < MinAnnualRatePercent || r > MaxAnnualRatePercent {
		return fmt.Errorf("%w: annual rate must be between %.0f%% and %.0f%%", ErrInvalidInput, MinAnnualRatePercent, MaxAnnualRatePercent)
	}

	if req.HorizonYears < MinHorizonYears || req.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("%w: horizon must be between %d and %d years", ErrInvalidInput, MinHorizonYears, MaxHorizonYears)
	}

	// The periodic balance never exceeds principal*(1+r/12)^n and the lump
	// sum is principal*(1+r)^years, so bounding both factors bounds every
	// value the engine produces.
	principal := c * domain.MonthsPerYear * float64(req.HorizonYears)
	growth := math.Max(
		math.Pow(1+r/100, float64(req.HorizonYears)),
		math.Pow(1+r/100/domain.MonthsPerYear, float64(req.PeriodCount())),
	)
	if !(principal*growth <= MaxProjectedAmount) {
		return fmt.Errorf("%w: monthly contribution is too large to project over %d years", ErrInvalidInput, req.HorizonYears)
	}

	return nil
}
