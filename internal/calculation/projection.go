package calculation

import (
	"math"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// ProjectPeriodic accumulates a fixed monthly contribution over horizonYears.
//
// Each period the running total grows by one month of interest and then the
// new contribution is added, so a contribution earns nothing in the month it
// is made. The returned slice holds the balance after every month and has
// length horizonYears*12.
//
// Inputs must already be validated.
func ProjectPeriodic(contribution, annualRatePercent float64, horizonYears int) []float64 {
	n := horizonYears * domain.MonthsPerYear
	if n <= 0 {
		return []float64{}
	}
	r := annualRatePercent / 100 / domain.MonthsPerYear

	series := make([]float64, 0, n)
	total := 0.0
	for i := 0; i < n; i++ {
		total = total*(1+r) + contribution
		series = append(series, total)
	}
	return series
}

// ProjectLumpSum returns the capital an equivalent one-off deposit would
// deploy (contribution*12*horizonYears) and its value after compounding
// annually at the annual rate for horizonYears.
func ProjectLumpSum(contribution, annualRatePercent float64, horizonYears int) (principal, final float64) {
	principal = contribution * domain.MonthsPerYear * float64(horizonYears)
	final = ProjectSingleDeposit(principal, annualRatePercent, horizonYears)
	return principal, final
}

// ProjectSingleDeposit compounds principal annually for years at annualRatePercent.
func ProjectSingleDeposit(principal, annualRatePercent float64, years int) float64 {
	return principal * math.Pow(1+annualRatePercent/100, float64(years))
}

// Compare returns lumpSumFinal - periodicFinal. A positive value means the
// lump sum ends ahead.
func Compare(periodicFinal, lumpSumFinal float64) float64 {
	return lumpSumFinal - periodicFinal
}

// Project runs both strategies for req and returns the combined result.
func Project(req domain.ProjectionRequest) domain.ProjectionResult {
	series := ProjectPeriodic(req.PeriodicContribution, req.AnnualRatePercent, req.HorizonYears)

	var periodicFinal float64
	if len(series) > 0 {
		periodicFinal = series[len(series)-1]
	}

	principal, lumpFinal := ProjectLumpSum(req.PeriodicContribution, req.AnnualRatePercent, req.HorizonYears)

	return domain.ProjectionResult{
		PeriodicSeries:   series,
		PeriodicFinal:    periodicFinal,
		LumpSumPrincipal: principal,
		LumpSumFinal:     lumpFinal,
		Difference:       Compare(periodicFinal, lumpFinal),
	}
}
