package domain

// MonthsPerYear is the number of contribution periods in one year.
const MonthsPerYear = 12

// ProjectionRequest holds the three user inputs for a simulation.
// Values are expected to be validated before reaching the engine.
type ProjectionRequest struct {
	PeriodicContribution float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	AnnualRatePercent    float64 `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	HorizonYears         int     `yaml:"horizon_years" json:"horizon_years"`
}

// PeriodCount returns the number of monthly periods in the horizon.
func (r ProjectionRequest) PeriodCount() int {
	return r.HorizonYears * MonthsPerYear
}

// PeriodicRate returns the monthly growth rate as a fraction.
func (r ProjectionRequest) PeriodicRate() float64 {
	return r.AnnualRatePercent / 100 / MonthsPerYear
}

// ProjectionResult is the output of a single projection run.
type ProjectionResult struct {
	PeriodicSeries   []float64 `json:"periodic_series"`
	PeriodicFinal    float64   `json:"periodic_final"`
	LumpSumPrincipal float64   `json:"lump_sum_principal"`
	LumpSumFinal     float64   `json:"lump_sum_final"`
	// Difference is LumpSumFinal - PeriodicFinal. Positive favours the lump sum.
	Difference float64 `json:"difference"`
}

// PeriodicPrincipal returns the nominal capital deployed by monthly contributions.
// It always equals LumpSumPrincipal for results produced by the engine.
func (r ProjectionResult) PeriodicPrincipal(req ProjectionRequest) float64 {
	return req.PeriodicContribution * MonthsPerYear * float64(req.HorizonYears)
}

// Leader reports which strategy ends ahead.
func (r ProjectionResult) Leader() Strategy {
	switch {
	case r.Difference > 0:
		return StrategyLumpSum
	case r.Difference < 0:
		return StrategyPeriodic
	default:
		return StrategyTie
	}
}

// Strategy identifies an accumulation strategy.
type Strategy string

const (
	StrategyPeriodic Strategy = "periodic"
	StrategyLumpSum  Strategy = "lump_sum"
	StrategyTie      Strategy = "tie"
)
