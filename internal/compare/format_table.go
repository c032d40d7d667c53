package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder
	cur := compSet.Currency

	// Header
	sb.WriteString("COMPOUND GROWTH SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Contributed",
		numWidth, "DCA Final",
		numWidth, "Lump Final",
		numWidth, "Multiple"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, cur, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], cur, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))

			sb.WriteString(fmt.Sprintf("  DCA Final:        %s%s (%s%%)\n",
				tf.deltaSymbol(alt.PeriodicDiffFromBase),
				tf.formatDecimal(alt.PeriodicDiffFromBase, cur),
				alt.PeriodicPctFromBase.StringFixed(1)))

			sb.WriteString(fmt.Sprintf("  Lump Sum Final:   %s%s\n",
				tf.deltaSymbol(alt.LumpSumDiffFromBase),
				tf.formatDecimal(alt.LumpSumDiffFromBase, cur)))

			if !alt.ContributedDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Contributed:      %s%s\n",
					tf.deltaSymbol(alt.ContributedDiffFromBase),
					tf.formatDecimal(alt.ContributedDiffFromBase, cur)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, cur string, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.TotalContributed, cur),
		numWidth, tf.formatDecimal(result.PeriodicFinal, cur),
		numWidth, tf.formatDecimal(result.LumpSumFinal, cur),
		numWidth, result.GrowthMultiple.StringFixed(2)+"x")
}

// formatDecimal formats a decimal for display with K/M suffixes
func (tf *TableFormatter) formatDecimal(d decimal.Decimal, cur string) string {
	return money.Compact(d.InexactFloat64(), cur)
}

// deltaSymbol returns a + for positive deltas; negative amounts carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.PeriodicDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.PeriodicDiffFromBase) + tf.formatDecimal(alt.PeriodicDiffFromBase, compSet.Currency)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

// FormatSweep renders a rate sweep as a table.
func (tf *TableFormatter) FormatSweep(points []SweepPoint, cur string) string {
	var sb strings.Builder
	sb.WriteString("RATE SENSITIVITY\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%8s %16s %16s %16s %12s\n", "Rate", "DCA Final", "Lump Final", "Difference", "Leader"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%8s %16s %16s %16s %12s\n",
			money.Percent(p.AnnualRatePercent),
			money.Format(p.PeriodicFinal, cur),
			money.Format(p.LumpSumFinal, cur),
			money.Format(p.Difference, cur),
			string(p.Leader)))
	}
	return sb.String()
}
