package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/observability/metrics"
	"github.com/rgehrsitz/finbuddy/internal/output"
)

const maxBodyBytes = 64 << 10

// ProjectionRequest is the POST body of /api/v1/projections.
type ProjectionRequest struct {
	domain.ProjectionRequest
	Mode string `json:"mode,omitempty"`
}

// ProjectionsHandler serves POST /api/v1/projections.
type ProjectionsHandler struct {
	server *Server
}

var contentTypes = map[string]string{
	"html":            "text/html; charset=utf-8",
	"csv":             "text/csv; charset=utf-8",
	"console":         "text/plain; charset=utf-8",
	"console-verbose": "text/plain; charset=utf-8",
	"pdf":             "application/pdf",
	"xlsx":            "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func (h *ProjectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s := h.server
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var in ProjectionRequest
	if err := json.Unmarshal(body, &in); err != nil {
		metrics.ObserveProjection(metrics.ResultInvalid, time.Since(start))
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	mode, err := domain.ParseMode(in.Mode)
	if err != nil {
		metrics.ObserveProjection(metrics.ResultInvalid, time.Since(start))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.ValidateRequest(in.ProjectionRequest); err != nil {
		metrics.ObserveProjection(metrics.ResultInvalid, time.Since(start))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := "json"
	if f := r.URL.Query().Get("format"); f != "" {
		format = output.NormalizeFormatName(f)
	}
	formatter := s.formatter(format)
	if formatter == nil {
		http.Error(w, "unknown format "+strconv.Quote(format), http.StatusBadRequest)
		return
	}

	result := s.Engine.Project(in.ProjectionRequest)
	metrics.ObserveProjection(metrics.ResultSuccess, time.Since(start))

	report := output.NewReport(in.ProjectionRequest, result)
	report.Mode = mode
	report.Currency = s.Settings.Currency

	if narrate, _ := strconv.ParseBool(r.URL.Query().Get("narrate")); narrate {
		h.narrate(r, report)
	}

	var data []byte
	if format == "json" {
		data, err = json.Marshal(output.ToJSONReport(report))
	} else {
		data, err = formatter.Format(report)
	}
	if err != nil {
		metrics.IncExport(format, metrics.ResultError)
		s.Logger.Printf("format %s: %v", format, err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	metrics.IncExport(format, metrics.ResultSuccess)

	// Only projections that were delivered are recorded.
	s.History.Record(in.ProjectionRequest)
	metrics.SetHistoryEntries(s.History.Len())

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		data = append(data, '\n')
	} else {
		w.Header().Set("Content-Type", contentTypes[format])
	}
	if output.IsBinary(formatter) {
		w.Header().Set("Content-Disposition", `attachment; filename="finbuddy_report.`+output.Extension(formatter)+`"`)
	}
	if _, err := w.Write(data); err != nil {
		s.Logger.Printf("write response: %v", err)
	}
}

func (s *Server) formatter(name string) output.Formatter {
	if s.Formatters != nil {
		return s.Formatters(name)
	}
	return output.GetFormatterByName(name)
}

// narrate fills the report narrative. Failures are recorded on the report and
// never change the status code.
func (h *ProjectionsHandler) narrate(r *http.Request, report *output.Report) {
	s := h.server
	provider := "none"
	if s.Generator != nil {
		provider = s.Generator.Name()
	}

	facts := narrative.FactsFrom(report.Request, report.Result, report.Currency, s.Settings.Language)
	start := time.Now()
	text, err := narrative.Narrate(r.Context(), s.Generator, s.Settings.NarrativeTimeout, narrative.BuildPrompt(facts))
	if err != nil {
		metrics.ObserveNarrative(provider, metrics.ResultError, time.Since(start))
		s.Logger.Printf("narrative (%s): %v", provider, err)
		report.NarrativeError = err.Error()
		return
	}
	metrics.ObserveNarrative(provider, metrics.ResultSuccess, time.Since(start))
	report.Narrative = text
}
