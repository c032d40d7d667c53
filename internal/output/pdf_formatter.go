package output

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf"

	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// PDFFormatter renders a one-document summary with a chart and a yearly table.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfChartLeft   = 30.0
	pdfChartWidth  = 160.0
	pdfChartHeight = 70.0
	pdfYTicks      = 4
)

func (p PDFFormatter) Format(r *Report) ([]byte, error) {
	cur := r.currency()
	req, res := r.Request, r.Result
	label, headline := r.Headline()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "FinBuddy Projection Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly contribution: %s", FormatCurrency(req.PeriodicContribution, cur)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual rate: %s", FormatPercentage(req.AnnualRatePercent)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Horizon: %d years (%d months)", req.HorizonYears, req.PeriodCount()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s final value: %s", label, FormatCurrency(headline, cur)))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("DCA final: %s", FormatCurrency(res.PeriodicFinal, cur)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Lump sum final: %s", FormatCurrency(res.LumpSumFinal, cur)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total capital: %s", FormatCurrency(res.LumpSumPrincipal, cur)))
	pdf.Ln(5)
	pdf.Cell(0, 6, DifferenceLabel(res.Difference, cur))
	pdf.Ln(10)

	drawPDFChart(pdf, r)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 6, "Year", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Contributed", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "DCA balance", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Lump sum value", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range yearlyRows(req, res) {
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", row.Year), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, FormatCurrency(row.Contributed, cur), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, FormatCurrency(row.Periodic, cur), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, FormatCurrency(row.LumpSum, cur), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	switch {
	case r.Narrative != "" && isLatin1(r.Narrative):
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "FinBuddy says")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, pdf.UnicodeTranslatorFromDescriptor("")(stripMarkdown(r.Narrative)), "", "L", false)
	case r.Narrative != "":
		// the core fonts only cover Latin-1
		pdf.Cell(0, 6, "Explanation available in the html report.")
		pdf.Ln(5)
	case r.NarrativeError != "":
		pdf.Cell(0, 6, "Explanation unavailable: "+r.NarrativeError)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPDFChart(pdf *gofpdf.Fpdf, r *Report) {
	series := r.Result.PeriodicSeries
	if len(series) == 0 {
		return
	}
	cur := r.currency()
	top := pdf.GetY()
	pl := newPlot(series, r.Result.LumpSumFinal, pdfChartLeft, top, pdfChartWidth, pdfChartHeight)

	pdf.SetFont("Arial", "", 7)
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.1)
	for _, v := range pl.Ticks(pdfYTicks) {
		y := pl.Y(v)
		pdf.Line(pl.Left, y, pl.Left+pl.Width, y)
		pdf.Text(pl.Left-22, y+1, compactLabel(v, cur))
	}

	pdf.SetDrawColor(245, 158, 11)
	pdf.SetLineWidth(0.4)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	ref := pl.Y(r.Result.LumpSumFinal)
	pdf.Line(pl.Left, ref, pl.Left+pl.Width, ref)
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetDrawColor(15, 118, 110)
	pdf.SetLineWidth(0.5)
	for i := 1; i < len(series); i++ {
		pdf.Line(pl.X(i-1), pl.Y(series[i-1]), pl.X(i), pl.Y(series[i]))
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	bottom := top + pdfChartHeight
	pdf.Text(pl.Left, bottom+4, "Month 1")
	pdf.Text(pl.Left+pl.Width-15, bottom+4, fmt.Sprintf("Month %d", len(series)))
	pdf.Text(pl.Left, bottom+9, "Teal: Dollar-Cost Averaging   Orange dashed: Lump-Sum Investment")
	pdf.SetY(bottom + 14)
	pdf.SetFont("Arial", "", 10)
}

func compactLabel(v float64, currency string) string {
	if !isLatin1(currency) {
		currency = ""
	}
	return money.Compact(v, currency)
}

func isLatin1(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}

// stripMarkdown removes emphasis and heading markers for plain-text output.
func stripMarkdown(s string) string {
	s = strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, "# ")
	}
	return strings.Join(lines, "\n")
}
