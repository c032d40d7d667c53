package output

import (
	"encoding/json"
	"time"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

// JSONReport is the wire shape shared by the json formatter and the HTTP API.
type JSONReport struct {
	Request        domain.ProjectionRequest `json:"request"`
	Mode           domain.Mode              `json:"mode"`
	Currency       string                   `json:"currency"`
	Result         domain.ProjectionResult  `json:"result"`
	Leader         domain.Strategy          `json:"leader"`
	Summary        string                   `json:"summary"`
	Narrative      string                   `json:"narrative,omitempty"`
	NarrativeError string                   `json:"narrative_error,omitempty"`
	GeneratedAt    time.Time                `json:"generated_at"`
}

// ToJSONReport converts r to its wire shape.
func ToJSONReport(r *Report) JSONReport {
	return JSONReport{
		Request:        r.Request,
		Mode:           r.Mode,
		Currency:       r.currency(),
		Result:         r.Result,
		Leader:         r.Result.Leader(),
		Summary:        DifferenceLabel(r.Result.Difference, r.currency()),
		Narrative:      r.Narrative,
		NarrativeError: r.NarrativeError,
		GeneratedAt:    r.GeneratedAt,
	}
}

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	return json.MarshalIndent(ToJSONReport(r), "", "  ")
}
