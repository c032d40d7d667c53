package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Monthly Contribution",
		"Annual Rate (%)",
		"Horizon (Years)",
		"Total Contributed",
		"DCA Final",
		"Lump Sum Final",
		"Difference",
		"Growth Multiple",
		"Leader",
		"DCA Diff from Base",
		"DCA % Change",
		"Lump Sum Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		formatFloat(result.Request.PeriodicContribution),
		formatFloat(result.Request.AnnualRatePercent),
		strconv.Itoa(result.Request.HorizonYears),
		result.TotalContributed.StringFixed(2),
		result.PeriodicFinal.StringFixed(2),
		result.LumpSumFinal.StringFixed(2),
		result.Difference.StringFixed(2),
		result.GrowthMultiple.StringFixed(4),
		string(result.Leader),
		result.PeriodicDiffFromBase.StringFixed(2),
		result.PeriodicPctFromBase.StringFixed(2),
		result.LumpSumDiffFromBase.StringFixed(2),
	}
}

// FormatSweep generates CSV output for a rate sweep.
func (cf *CSVFormatter) FormatSweep(points []SweepPoint) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write([]string{"Annual Rate (%)", "DCA Final", "Lump Sum Final", "Difference", "Leader"}); err != nil {
		return "", err
	}
	for _, p := range points {
		row := []string{
			formatFloat(p.AnnualRatePercent),
			money.NewMoney(p.PeriodicFinal).String(),
			money.NewMoney(p.LumpSumFinal).String(),
			money.NewMoney(p.Difference).String(),
			string(p.Leader),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
