package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter prints the comparison summary followed by the
// step-by-step explanation of how the figures were reached.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, r)
	writeNarrative(&buf, r)
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter adds a year-by-year balance table to the console output.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, r)

	cur := r.currency()
	fmt.Fprintln(&buf, "YEAR-BY-YEAR BALANCES")
	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintf(&buf, "%-6s %20s %20s %20s\n", "Year", "Contributed", "DCA Balance", "Lump Sum Value")
	fmt.Fprintln(&buf, strings.Repeat("-", 70))
	for _, row := range yearlyRows(r.Request, r.Result) {
		fmt.Fprintf(&buf, "%-6d %20s %20s %20s\n", row.Year,
			FormatCurrency(row.Contributed, cur),
			FormatCurrency(row.Periodic, cur),
			FormatCurrency(row.LumpSum, cur))
	}
	fmt.Fprintln(&buf)

	writeNarrative(&buf, r)
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, r *Report) {
	cur := r.currency()
	req, res := r.Request, r.Result
	label, headline := r.Headline()

	fmt.Fprintln(buf, "FINBUDDY COMPOUND GROWTH PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("=", 70))
	fmt.Fprintf(buf, "Monthly contribution: %s\n", FormatCurrency(req.PeriodicContribution, cur))
	fmt.Fprintf(buf, "Annual rate:          %s\n", FormatPercentage(req.AnnualRatePercent))
	fmt.Fprintf(buf, "Horizon:              %d years (%d months)\n", req.HorizonYears, req.PeriodCount())
	fmt.Fprintf(buf, "Mode:                 %s\n", label)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "RESULTS")
	fmt.Fprintln(buf, strings.Repeat("-", 70))
	fmt.Fprintf(buf, "%s final value: about %s\n", label, FormatCurrency(headline, cur))
	fmt.Fprintf(buf, "  Dollar-cost averaging final: about %s\n", FormatCurrency(res.PeriodicFinal, cur))
	fmt.Fprintf(buf, "  Lump sum (same capital) final: about %s\n", FormatCurrency(res.LumpSumFinal, cur))
	fmt.Fprintf(buf, "  Total capital invested: %s\n", FormatCurrency(res.LumpSumPrincipal, cur))
	fmt.Fprintf(buf, "  %s\n", DifferenceLabel(res.Difference, cur))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "HOW IT WAS CALCULATED")
	fmt.Fprintln(buf, strings.Repeat("-", 70))
	fmt.Fprintf(buf, "1. Total capital: %s x 12 x %d = %s\n",
		FormatCurrency(req.PeriodicContribution, cur), req.HorizonYears, FormatCurrency(res.LumpSumPrincipal, cur))
	fmt.Fprintf(buf, "2. Dollar-cost averaging: each month the balance grows by %s / 12, then %s is added; after %d months it reaches about %s\n",
		FormatPercentage(req.AnnualRatePercent), FormatCurrency(req.PeriodicContribution, cur), req.PeriodCount(), FormatCurrency(res.PeriodicFinal, cur))
	fmt.Fprintf(buf, "3. Lump sum: investing %s once and holding for %d years gives about %s\n",
		FormatCurrency(res.LumpSumPrincipal, cur), req.HorizonYears, FormatCurrency(res.LumpSumFinal, cur))
	fmt.Fprintf(buf, "4. Difference (lump sum - DCA): %s\n", FormatCurrency(res.Difference, cur))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Formula: FV = P x (1 + r)^t, where P is the capital, r the annual rate and t the number of years.")
	fmt.Fprintln(buf, "This simulation is for reference only; actual returns are subject to market risk.")
	fmt.Fprintln(buf)
}

func writeNarrative(buf *bytes.Buffer, r *Report) {
	switch {
	case r.Narrative != "":
		fmt.Fprintln(buf, "FINBUDDY SAYS")
		fmt.Fprintln(buf, strings.Repeat("-", 70))
		fmt.Fprintln(buf, r.Narrative)
	case r.NarrativeError != "":
		fmt.Fprintf(buf, "Explanation unavailable: %s\n", r.NarrativeError)
	}
}
