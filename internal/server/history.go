package server

import (
	"encoding/json"
	"net/http"

	"github.com/rgehrsitz/finbuddy/internal/history"
	"github.com/rgehrsitz/finbuddy/internal/observability/metrics"
)

// HistoryHandler serves GET and DELETE /api/v1/history.
type HistoryHandler struct {
	store *history.Store
}

type historyResponse struct {
	Capacity int             `json:"capacity"`
	Entries  []history.Entry `json:"entries"`
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(historyResponse{
			Capacity: h.store.Capacity(),
			Entries:  h.store.Entries(),
		})
	case http.MethodDelete:
		h.store.Clear()
		metrics.SetHistoryEntries(0)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
