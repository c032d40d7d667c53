package calculation

import (
	"time"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// CalculationEngine runs projections and reports them to an optional logger.
// It holds no per-request state and may be shared between goroutines.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger installs l, falling back to a no-op logger when l is nil.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Project runs a single projection request.
func (ce *CalculationEngine) Project(req domain.ProjectionRequest) domain.ProjectionResult {
	start := time.Now()
	result := Project(req)

	log := ce.logger()
	if ce.Debug {
		log.Debugf("projection: contribution=%.2f rate=%.4f%% years=%d periods=%d monthly_rate=%.6f",
			req.PeriodicContribution, req.AnnualRatePercent, req.HorizonYears, req.PeriodCount(), req.PeriodicRate())
		for year := 1; year <= req.HorizonYears; year++ {
			idx := year*domain.MonthsPerYear - 1
			log.Debugf("  year %3d: periodic balance %.2f", year, result.PeriodicSeries[idx])
		}
	}
	log.Infof("projection complete: periodic_final=%.2f lump_sum_final=%.2f difference=%.2f (%s)",
		result.PeriodicFinal, result.LumpSumFinal, result.Difference, time.Since(start))

	return result
}

// RunScenarios projects every scenario in order.
func (ce *CalculationEngine) RunScenarios(file *domain.ScenarioFile) []domain.ScenarioOutcome {
	outcomes := make([]domain.ScenarioOutcome, 0, len(file.Scenarios))
	for _, sc := range file.Scenarios {
		ce.logger().Debugf("running scenario %q", sc.Name)
		outcomes = append(outcomes, domain.ScenarioOutcome{
			Scenario: sc,
			Result:   ce.Project(sc.Request),
		})
	}
	return outcomes
}
