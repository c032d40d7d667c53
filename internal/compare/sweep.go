package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// MaxSweepPoints bounds the number of rates a single sweep may project.
const MaxSweepPoints = 1000

// SweepPoint is the projection of the base request at one annual rate.
type SweepPoint struct {
	AnnualRatePercent float64         `json:"annualRatePercent"`
	PeriodicFinal     float64         `json:"periodicFinal"`
	LumpSumFinal      float64         `json:"lumpSumFinal"`
	Difference        float64         `json:"difference"`
	Leader            domain.Strategy `json:"leader"`
}

// RateSweep projects base once per rate, keeping contribution and horizon
// fixed. Every rate must pass the usual input validation.
func (ce *CompareEngine) RateSweep(base domain.ProjectionRequest, rates []float64) ([]SweepPoint, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: at least one rate is required", config.ErrInvalidInput)
	}
	if len(rates) > MaxSweepPoints {
		return nil, fmt.Errorf("%w: at most %d rates per sweep, got %d", config.ErrInvalidInput, MaxSweepPoints, len(rates))
	}

	points := make([]SweepPoint, 0, len(rates))
	for _, rate := range rates {
		req := base
		req.AnnualRatePercent = rate
		if err := config.ValidateRequest(req); err != nil {
			return nil, err
		}
		res := ce.CalcEngine.Project(req)
		points = append(points, SweepPoint{
			AnnualRatePercent: rate,
			PeriodicFinal:     res.PeriodicFinal,
			LumpSumFinal:      res.LumpSumFinal,
			Difference:        res.Difference,
			Leader:            res.Leader(),
		})
	}
	return points, nil
}

// ParseRates parses either a comma separated list ("3,5,7.5") or an
// inclusive range with a step ("2:10:2").
func ParseRates(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty rate list")
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("rate range %q must be start:end:step", s)
		}
		var vals [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid rate %q: %w", p, err)
			}
			vals[i] = v
		}
		start, end, step := vals[0], vals[1], vals[2]
		if step <= 0 || end < start {
			return nil, fmt.Errorf("rate range %q must have start <= end and a positive step", s)
		}
		var rates []float64
		// integer stepping avoids accumulating float error
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if v > end+step*1e-9 {
				break
			}
			if len(rates) == MaxSweepPoints {
				return nil, fmt.Errorf("rate range %q yields more than %d rates", s, MaxSweepPoints)
			}
			rates = append(rates, v)
		}
		return rates, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > MaxSweepPoints {
		return nil, fmt.Errorf("rate list has %d entries, at most %d allowed", len(parts), MaxSweepPoints)
	}
	var rates []float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", p, err)
		}
		rates = append(rates, v)
	}
	return rates, nil
}
