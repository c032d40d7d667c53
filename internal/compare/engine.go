package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// ErrUnknownScenario is returned when a requested scenario is not in the file.
var ErrUnknownScenario = errors.New("unknown scenario")

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario; the first scenario when empty
	Alternatives     []string // Scenarios to compare; every other scenario when empty
	ConfigPath       string
	Currency         string
}

// Compare runs every selected scenario and diffs it against the base.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	file *domain.ScenarioFile,
	options CompareOptions,
) (*ComparisonSet, error) {
	if file == nil || len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = file.Scenarios[0].Name
	}
	baseScenario, ok := file.Find(baseName)
	if !ok {
		return nil, fmt.Errorf("base scenario %q: %w", baseName, ErrUnknownScenario)
	}

	altNames := options.Alternatives
	if len(altNames) == 0 {
		for _, sc := range file.Scenarios {
			if sc.Name != baseName {
				altNames = append(altNames, sc.Name)
			}
		}
	}

	baseResult, err := ce.run(ctx, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, altName := range altNames {
		sc, ok := file.Find(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %q: %w", altName, ErrUnknownScenario)
		}
		altResult, err := ce.run(ctx, sc)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	currency := options.Currency
	if currency == "" {
		currency = file.Currency
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
		Currency:           currency,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) run(ctx context.Context, sc *domain.Scenario) (ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	if err := config.ValidateRequest(sc.Request); err != nil {
		return ComparisonResult{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	outcome := domain.ScenarioOutcome{Scenario: *sc, Result: ce.CalcEngine.Project(sc.Request)}
	return ce.MetricsCalculator.CalculateMetrics(outcome), nil
}
