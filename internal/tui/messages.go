package tui

import "github.com/rgehrsitz/finbuddy/internal/domain"

// ProjectionCompleteMsg carries a finished projection back to the model.
type ProjectionCompleteMsg struct {
	Request domain.ProjectionRequest
	Result  domain.ProjectionResult
}

// NarrativeMsg carries the outcome of a narrative request. Seq identifies the
// projection that asked for it; replies for older projections are dropped.
type NarrativeMsg struct {
	Seq  int
	Text string
	Err  error
}
