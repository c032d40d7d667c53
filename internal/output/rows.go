package output

import (
	"math"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// yearRow is the state of both strategies at the end of a year.
type yearRow struct {
	Year        int
	Contributed float64
	Periodic    float64
	LumpSum     float64
}

// yearlyRows samples the monthly series at each year end. The lump-sum column
// compounds the full principal annually.
func yearlyRows(req domain.ProjectionRequest, res domain.ProjectionResult) []yearRow {
	rows := make([]yearRow, 0, req.HorizonYears)
	growth := 1 + req.AnnualRatePercent/100
	for y := 1; y <= req.HorizonYears; y++ {
		idx := y*domain.MonthsPerYear - 1
		if idx >= len(res.PeriodicSeries) {
			break
		}
		rows = append(rows, yearRow{
			Year:        y,
			Contributed: req.PeriodicContribution * domain.MonthsPerYear * float64(y),
			Periodic:    res.PeriodicSeries[idx],
			LumpSum:     res.LumpSumPrincipal * math.Pow(growth, float64(y)),
		})
	}
	return rows
}
