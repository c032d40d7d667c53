package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/domain"
)

func buildTestReport() *Report {
	req := domain.ProjectionRequest{PeriodicContribution: 10000, AnnualRatePercent: 5, HorizonYears: 20}
	r := NewReport(req, calculation.Project(req))
	r.GeneratedAt = time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	return r
}

func TestDifferenceLabel(t *testing.T) {
	assert.Equal(t, "Lump sum ends ahead by about NT$2,257,578", DifferenceLabel(2257577.81, "NT$"))
	assert.Equal(t, "Dollar-cost averaging ends ahead by about $46,435", DifferenceLabel(-46435.2, "$"))
	assert.Equal(t, "Both strategies end with the same amount", DifferenceLabel(0, "NT$"))
}

func TestReportHeadline(t *testing.T) {
	r := buildTestReport()

	label, v := r.Headline()
	assert.Equal(t, "Dollar-Cost Averaging", label)
	assert.Equal(t, r.Result.PeriodicFinal, v)

	r.Mode = domain.ModeLumpSum
	label, v = r.Headline()
	assert.Equal(t, "Lump Sum", label)
	assert.Equal(t, r.Result.LumpSumFinal, v)
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "html", "json", "pdf", "xlsx"}, AvailableFormatterNames())

	tests := []struct {
		in   string
		want string
	}{
		{"console", "console"},
		{" JSON ", "json"},
		{"verbose", "console-verbose"},
		{"excel", "xlsx"},
		{"html-report", "html"},
		{"csv-monthly", "csv"},
		{"text", "console"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.in)
		require.NotNil(t, f, tt.in)
		assert.Equal(t, tt.want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("yaml"))
	assert.Contains(t, AvailableFormatAliases(), "excel")

	assert.True(t, IsBinary(PDFFormatter{}))
	assert.False(t, IsBinary(CSVFormatter{}))
	assert.Equal(t, "txt", Extension(ConsoleFormatter{}))
	assert.Equal(t, "xlsx", Extension(XLSXFormatter{}))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "FINBUDDY COMPOUND GROWTH PROJECTION"))
	assert.Contains(t, content, "Dollar-cost averaging final: about NT$4,110,337")
	assert.Contains(t, content, "Lump sum (same capital) final: about NT$6,367,914")
	assert.Contains(t, content, "Total capital: NT$10,000 x 12 x 20 = NT$2,400,000")
	assert.Contains(t, content, "Lump sum ends ahead by about NT$2,257,578")
	assert.NotContains(t, content, "YEAR-BY-YEAR")
}

func TestConsoleFormatter_Narrative(t *testing.T) {
	r := buildTestReport()
	r.Narrative = "Compounding explained."
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "FINBUDDY SAYS")
	assert.Contains(t, string(out), "Compounding explained.")

	r.Narrative = ""
	r.NarrativeError = "narrative service failure: timeout"
	out, err = ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Explanation unavailable: narrative service failure: timeout")
	assert.Contains(t, string(out), "NT$4,110,337", "numbers are still rendered")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "YEAR-BY-YEAR BALANCES")
	assert.Contains(t, content, "NT$2,400,000")
	assert.Len(t, yearRowPattern.FindAllString(content, -1), 20)
}

var yearRowPattern = regexp.MustCompile(`(?m)^\d+\s+NT\$`)

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 241)
	assert.Equal(t, "Month,Year,Contributed,DCABalance,LumpSumFinal", lines[0])
	assert.Equal(t, "1,1,10000.00,10000.00,6367914.49", lines[1])
	assert.Equal(t, "13,2,130000.00", lines[13][:len("13,2,130000.00")])
	assert.Equal(t, "240,20,2400000.00,4110336.69,6367914.49", lines[240])
}

func TestJSONFormatter(t *testing.T) {
	r := buildTestReport()
	r.NarrativeError = "narrative service failure: no narrative provider configured"

	out, err := JSONFormatter{}.Format(r)
	require.NoError(t, err)

	var decoded JSONReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, r.Request, decoded.Request)
	assert.Equal(t, domain.StrategyLumpSum, decoded.Leader)
	assert.Equal(t, "NT$", decoded.Currency)
	assert.Len(t, decoded.Result.PeriodicSeries, 240)
	assert.InDelta(t, 2257577.81, decoded.Result.Difference, 0.01)
	assert.Equal(t, r.NarrativeError, decoded.NarrativeError)
	assert.Empty(t, decoded.Narrative)
	assert.Contains(t, string(out), `"monthly_contribution": 10000`)
}

func TestHTMLFormatter(t *testing.T) {
	r := buildTestReport()
	r.Narrative = "### Steps\n\n1. **Save** monthly\n<script>alert(1)</script>"

	out, err := HTMLFormatter{}.Format(r)
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "<polyline points=")
	assert.Contains(t, content, "stroke-dasharray")
	assert.Contains(t, content, "NT$6,367,914")
	assert.Contains(t, content, "Lump sum ends ahead by about NT$2,257,578")
	assert.Contains(t, content, "<strong>Save</strong>")
	assert.NotContains(t, content, "<script>alert(1)</script>")
	assert.Contains(t, content, "Month 240")
}

func TestHTMLFormatter_NarrativeErrorEscaped(t *testing.T) {
	r := buildTestReport()
	r.NarrativeError = "<b>boom</b>"

	out, err := HTMLFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "&lt;b&gt;boom&lt;/b&gt;")
	assert.NotContains(t, string(out), "FinBuddy Says")
}

func TestXLSXFormatter(t *testing.T) {
	out, err := XLSXFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"summary", "monthly", "yearly"}, f.GetSheetList())

	v, err := f.GetCellValue("summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "10000", v)

	rows, err := f.GetRows("monthly")
	require.NoError(t, err)
	assert.Len(t, rows, 241)

	rows, err = f.GetRows("yearly")
	require.NoError(t, err)
	assert.Len(t, rows, 21)
}

func TestPDFFormatter(t *testing.T) {
	r := buildTestReport()
	r.Narrative = "**Plain** latin narrative"

	out, err := PDFFormatter{}.Format(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	r.Narrative = "複利效果"
	out, err = PDFFormatter{}.Format(r)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteFormatted(CSVFormatter{}, buildTestReport(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(name))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Month,"))
}

func TestYearlyRows(t *testing.T) {
	r := buildTestReport()
	rows := yearlyRows(r.Request, r.Result)

	require.Len(t, rows, 20)
	assert.Equal(t, 1, rows[0].Year)
	assert.Equal(t, 120000.0, rows[0].Contributed)
	assert.Equal(t, r.Result.PeriodicFinal, rows[19].Periodic)
	assert.InDelta(t, r.Result.LumpSumFinal, rows[19].LumpSum, 1e-6)
}

func TestPlotGeometry(t *testing.T) {
	series := []float64{0, 50, 100}
	p := newPlot(series, 80, 10, 5, 200, 100)

	assert.InDelta(t, 105.0, p.MaxY, 1e-9)
	assert.Equal(t, 10.0, p.X(0))
	assert.Equal(t, 210.0, p.X(2))
	assert.Equal(t, 105.0, p.Y(0))
	assert.InDelta(t, 5.0, p.Y(p.MaxY), 1e-9)
	assert.Len(t, p.Ticks(4), 5)
	assert.Equal(t, "10.0,105.0 110.0,57.4 210.0,9.8", p.svgPoints(series))
}
