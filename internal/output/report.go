package output

import (
	"time"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// DefaultCurrency is the currency prefix used when a report does not set one.
const DefaultCurrency = "NT$"

// Report bundles everything a formatter renders for one projection.
type Report struct {
	Request  domain.ProjectionRequest
	Result   domain.ProjectionResult
	Mode     domain.Mode
	Currency string
	// Narrative is the markdown explanation, empty when none was requested.
	Narrative string
	// NarrativeError is set when an explanation was requested but failed.
	// The numeric result is still complete.
	NarrativeError string
	GeneratedAt    time.Time
}

// NewReport creates a report for a computed projection.
func NewReport(req domain.ProjectionRequest, res domain.ProjectionResult) *Report {
	return &Report{
		Request:     req,
		Result:      res,
		Mode:        domain.ModePeriodic,
		Currency:    DefaultCurrency,
		GeneratedAt: time.Now(),
	}
}

func (r *Report) currency() string {
	if r.Currency == "" {
		return DefaultCurrency
	}
	return r.Currency
}

// Headline returns the label and final value of the strategy selected by Mode.
func (r *Report) Headline() (string, float64) {
	if r.Mode == domain.ModeLumpSum {
		return r.Mode.Label(), r.Result.LumpSumFinal
	}
	return domain.ModePeriodic.Label(), r.Result.PeriodicFinal
}

// DifferenceLabel describes a signed lump-sum minus periodic difference in
// words. The amount is formatted as an absolute value.
func DifferenceLabel(diff float64, currency string) string {
	amount := FormatCurrency(abs(diff), currency)
	switch {
	case diff > 0:
		return "Lump sum ends ahead by about " + amount
	case diff < 0:
		return "Dollar-cost averaging ends ahead by about " + amount
	default:
		return "Both strategies end with the same amount"
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
