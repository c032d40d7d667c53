package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/internal/history"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/output"
)

type failingGenerator struct{}

func (failingGenerator) Name() string { return "failing" }

func (failingGenerator) Explain(context.Context, narrative.Prompt) (string, error) {
	return "", errors.New("upstream 503")
}

func newTestServer(t *testing.T, gen narrative.Generator) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s, err := New(config.DefaultSettings(), calculation.NewCalculationEngine(), history.NewStore(10), gen, log.New(&logs, "", 0))
	require.NoError(t, err)
	return s, &logs
}

const validBody = `{"monthly_contribution":10000,"annual_rate_percent":5,"horizon_years":20}`

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) output.JSONReport {
	t.Helper()
	var rep output.JSONReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	return rep
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(config.DefaultSettings(), nil, history.NewStore(1), nil, nil)
	assert.Error(t, err)
	_, err = New(config.DefaultSettings(), calculation.NewCalculationEngine(), nil, nil, nil)
	assert.Error(t, err)
}

func TestProjections_Success(t *testing.T) {
	s, logs := newTestServer(t, nil)
	h := s.Handler()

	rec := post(t, h, "/api/v1/projections", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rep := decodeReport(t, rec)
	assert.Len(t, rep.Result.PeriodicSeries, 240)
	assert.InDelta(t, 4110336.69, rep.Result.PeriodicFinal, 0.01)
	assert.InDelta(t, 6367914.49, rep.Result.LumpSumFinal, 0.01)
	assert.Equal(t, 2400000.0, rep.Result.LumpSumPrincipal)
	assert.Equal(t, domain.StrategyLumpSum, rep.Leader)
	assert.Equal(t, domain.ModePeriodic, rep.Mode)
	assert.Empty(t, rep.Narrative)
	assert.Empty(t, rep.NarrativeError, "narrative not requested")

	assert.Equal(t, 1, s.History.Len())
	assert.Contains(t, logs.String(), "http POST /api/v1/projections 200")
}

func TestProjections_LumpSumMode(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := post(t, s.Handler(), "/api/v1/projections",
		`{"monthly_contribution":10000,"annual_rate_percent":5,"horizon_years":20,"mode":"lump"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ModeLumpSum, decodeReport(t, rec).Mode)
}

func TestProjections_Narrative(t *testing.T) {
	t.Run("static provider", func(t *testing.T) {
		s, _ := newTestServer(t, narrative.StaticGenerator{})
		rec := post(t, s.Handler(), "/api/v1/projections?narrate=true", validBody)
		require.Equal(t, http.StatusOK, rec.Code)

		rep := decodeReport(t, rec)
		assert.Contains(t, rep.Narrative, "How the numbers work")
		assert.Empty(t, rep.NarrativeError)
	})

	t.Run("no provider", func(t *testing.T) {
		s, _ := newTestServer(t, nil)
		rec := post(t, s.Handler(), "/api/v1/projections?narrate=1", validBody)
		require.Equal(t, http.StatusOK, rec.Code)

		rep := decodeReport(t, rec)
		assert.Contains(t, rep.NarrativeError, "no narrative provider configured")
		assert.InDelta(t, 4110336.69, rep.Result.PeriodicFinal, 0.01)
	})

	t.Run("provider failure keeps numbers", func(t *testing.T) {
		s, logs := newTestServer(t, failingGenerator{})
		rec := post(t, s.Handler(), "/api/v1/projections?narrate=true", validBody)
		require.Equal(t, http.StatusOK, rec.Code)

		rep := decodeReport(t, rec)
		assert.Contains(t, rep.NarrativeError, "narrative service failure")
		assert.Contains(t, rep.NarrativeError, "upstream 503")
		assert.Len(t, rep.Result.PeriodicSeries, 240)
		assert.Equal(t, 1, s.History.Len())
		assert.Contains(t, logs.String(), "narrative (failing)")
	})
}

func TestProjections_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		contains string
	}{
		{"malformed json", "/api/v1/projections", `{"monthly_contribution":`, "invalid json"},
		{"negative contribution", "/api/v1/projections", `{"monthly_contribution":-1,"annual_rate_percent":5,"horizon_years":20}`, "cannot be negative"},
		{"rate too high", "/api/v1/projections", `{"monthly_contribution":1,"annual_rate_percent":150,"horizon_years":20}`, "annual rate must be between"},
		{"zero horizon", "/api/v1/projections", `{"monthly_contribution":1,"annual_rate_percent":5,"horizon_years":0}`, "horizon must be between"},
		{"bad mode", "/api/v1/projections", `{"monthly_contribution":1,"annual_rate_percent":5,"horizon_years":1,"mode":"weekly"}`, "unknown mode"},
		{"unknown format", "/api/v1/projections?format=yaml", validBody, "unknown format"},
		{"contribution overflows", "/api/v1/projections", `{"monthly_contribution":1e306,"annual_rate_percent":5,"horizon_years":100}`, "too large to project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)
			rec := post(t, s.Handler(), tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Equal(t, 0, s.History.Len(), "rejected input is not recorded")
		})
	}
}

func TestProjections_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projections", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestProjections_Formats(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	rec := post(t, h, "/api/v1/projections?format=csv", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Month,Year"))

	rec = post(t, h, "/api/v1/projections?format=excel", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "finbuddy_report.xlsx")

	rec = post(t, h, "/api/v1/projections?format=pdf", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = post(t, h, "/api/v1/projections?format=html", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestProjections_RenderFailureNotRecorded(t *testing.T) {
	s, logs := newTestServer(t, nil)
	s.Formatters = func(name string) output.Formatter {
		return output.FormatterFunc{ID: name, F: func(*output.Report) ([]byte, error) {
			return nil, errors.New("disk full")
		}}
	}

	rec := post(t, s.Handler(), "/api/v1/projections?format=csv", validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, s.History.Len(), "undelivered projection is not recorded")
	assert.Contains(t, logs.String(), "disk full")

	s.Formatters = nil
	rec = post(t, s.Handler(), "/api/v1/projections?format=csv", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.History.Len())
}

func TestHistoryEndpoints(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	post(t, h, "/api/v1/projections", validBody)
	post(t, h, "/api/v1/projections", `{"monthly_contribution":5000,"annual_rate_percent":7,"horizon_years":10}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10, got.Capacity)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, 5000.0, got.Entries[0].Request.PeriodicContribution, "newest first")
	assert.Equal(t, "Monthly: 10000, annual rate: 5.0%, years: 20 -> completed", got.Entries[1].Summary)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.History.Len())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/history", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()
	post(t, h, "/api/v1/projections", validBody)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "finbuddy_projections_total")
	assert.Contains(t, string(body), "finbuddy_history_entries")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
