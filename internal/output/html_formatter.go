package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"compact": func(v float64, currency string) string {
		return money.Compact(v, currency)
	},
}).Parse(htmlTemplateSource))

const (
	svgWidth   = 720.0
	svgHeight  = 360.0
	svgLeft    = 80.0
	svgTop     = 20.0
	svgPlotW   = 620.0
	svgPlotH   = 300.0
	svgYTicks  = 4
	svgXLabelY = svgTop + svgPlotH + 24
)

type svgTick struct {
	Y     float64
	Value float64
}

type svgChart struct {
	Width, Height float64
	Left, Right   float64
	Top, Bottom   float64
	XLabelY       float64
	Points        string
	ReferenceY    float64
	Ticks         []svgTick
	Months        int
}

func buildSVGChart(r *Report) svgChart {
	p := newPlot(r.Result.PeriodicSeries, r.Result.LumpSumFinal, svgLeft, svgTop, svgPlotW, svgPlotH)
	c := svgChart{
		Width: svgWidth, Height: svgHeight,
		Left: svgLeft, Right: svgLeft + svgPlotW,
		Top: svgTop, Bottom: svgTop + svgPlotH,
		XLabelY:    svgXLabelY,
		Points:     p.svgPoints(r.Result.PeriodicSeries),
		ReferenceY: p.Y(r.Result.LumpSumFinal),
		Months:     len(r.Result.PeriodicSeries),
	}
	for _, v := range p.Ticks(svgYTicks) {
		c.Ticks = append(c.Ticks, svgTick{Y: p.Y(v), Value: v})
	}
	return c
}

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var narrativeHTML template.HTML
	if r.Narrative != "" {
		rendered, err := narrative.RenderHTML(r.Narrative)
		if err != nil {
			return nil, err
		}
		// goldmark omits raw HTML by default, so the fragment is safe to embed.
		narrativeHTML = template.HTML(rendered)
	}

	label, headline := r.Headline()
	data := struct {
		*Report
		Currency       string
		HeadlineLabel  string
		Headline       float64
		DifferenceText string
		Chart          svgChart
		Years          []yearRow
		NarrativeHTML  template.HTML
	}{
		Report:         r,
		Currency:       r.currency(),
		HeadlineLabel:  label,
		Headline:       headline,
		DifferenceText: DifferenceLabel(r.Result.Difference, r.currency()),
		Chart:          buildSVGChart(r),
		Years:          yearlyRows(r.Request, r.Result),
		NarrativeHTML:  narrativeHTML,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
