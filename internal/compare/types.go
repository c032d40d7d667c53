package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description,omitempty"`
	Request      domain.ProjectionRequest `json:"request"`

	// Key Metrics
	TotalContributed decimal.Decimal `json:"totalContributed"`
	PeriodicFinal    decimal.Decimal `json:"periodicFinal"`
	LumpSumFinal     decimal.Decimal `json:"lumpSumFinal"`
	Difference       decimal.Decimal `json:"difference"`
	PeriodicGain     decimal.Decimal `json:"periodicGain"`   // PeriodicFinal - TotalContributed
	GrowthMultiple   decimal.Decimal `json:"growthMultiple"` // PeriodicFinal / TotalContributed
	Leader           domain.Strategy `json:"leader"`

	// Comparison to Base
	PeriodicDiffFromBase    decimal.Decimal `json:"periodicDiffFromBase"`
	PeriodicPctFromBase     decimal.Decimal `json:"periodicPctFromBase"`
	LumpSumDiffFromBase     decimal.Decimal `json:"lumpSumDiffFromBase"`
	ContributedDiffFromBase decimal.Decimal `json:"contributedDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
	Currency           string             `json:"currency"`
}

// MetricsCalculator extracts key metrics from scenario outcomes
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

var hundred = decimal.NewFromInt(100)

// CalculateMetrics computes all comparison metrics for a scenario outcome
func (mc *MetricsCalculator) CalculateMetrics(outcome domain.ScenarioOutcome) ComparisonResult {
	res := outcome.Result
	result := ComparisonResult{
		ScenarioName:     outcome.Scenario.Name,
		Description:      outcome.Scenario.Description,
		Request:          outcome.Scenario.Request,
		TotalContributed: decimal.NewFromFloat(res.LumpSumPrincipal),
		PeriodicFinal:    decimal.NewFromFloat(res.PeriodicFinal),
		LumpSumFinal:     decimal.NewFromFloat(res.LumpSumFinal),
		Difference:       decimal.NewFromFloat(res.Difference),
		Leader:           res.Leader(),
	}
	result.PeriodicGain = result.PeriodicFinal.Sub(result.TotalContributed)
	if !result.TotalContributed.IsZero() {
		result.GrowthMultiple = result.PeriodicFinal.Div(result.TotalContributed)
	}
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PeriodicDiffFromBase = scenario.PeriodicFinal.Sub(base.PeriodicFinal)

	if !base.PeriodicFinal.IsZero() {
		scenario.PeriodicPctFromBase = scenario.PeriodicDiffFromBase.
			Div(base.PeriodicFinal).
			Mul(hundred)
	}

	scenario.LumpSumDiffFromBase = scenario.LumpSumFinal.Sub(base.LumpSumFinal)
	scenario.ContributedDiffFromBase = scenario.TotalContributed.Sub(base.TotalContributed)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult
	cur := compSet.Currency

	// Find highest dollar-cost averaging balance
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PeriodicFinal.GreaterThan(best.PeriodicFinal) {
			best = alt
		}
	}

	if best != base {
		diff := best.PeriodicFinal.Sub(base.PeriodicFinal)
		recommendations = append(recommendations,
			"Highest Balance: "+best.ScenarioName+" ends "+money.NewMoneyFromDecimal(diff).Format(cur)+
				" above the base scenario with dollar-cost averaging")
	}

	// Find best growth per unit of capital
	efficient := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.GrowthMultiple.GreaterThan(efficient.GrowthMultiple) {
			efficient = alt
		}
	}

	if efficient != base {
		recommendations = append(recommendations,
			"Best Growth Multiple: "+efficient.ScenarioName+" turns every unit contributed into "+
				efficient.GrowthMultiple.StringFixed(2)+" (base: "+base.GrowthMultiple.StringFixed(2)+")")
	}

	// Count where investing up front wins
	lumpLeads, total := 0, len(compSet.AlternativeResults)+1
	all := append([]ComparisonResult{*base}, compSet.AlternativeResults...)
	for _, r := range all {
		if r.Leader == domain.StrategyLumpSum {
			lumpLeads++
		}
	}
	switch lumpLeads {
	case total:
		recommendations = append(recommendations,
			"Timing: a lump sum of the same capital ends ahead in every scenario")
	case 0:
		recommendations = append(recommendations,
			"Timing: dollar-cost averaging ends ahead in every scenario")
	default:
		recommendations = append(recommendations,
			fmt.Sprintf("Timing: a lump sum ends ahead in %d of %d scenarios", lumpLeads, total))
	}

	return recommendations
}
