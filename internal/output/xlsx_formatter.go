package output

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXFormatter exports a workbook with a summary sheet and the monthly series.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

const (
	xlsxSummarySheet = "summary"
	xlsxSeriesSheet  = "monthly"
	xlsxYearlySheet  = "yearly"
)

func (x XLSXFormatter) Format(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(xlsxSeriesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(xlsxYearlySheet); err != nil {
		return nil, err
	}

	label, headline := r.Headline()
	summary := [][]interface{}{
		{"FinBuddy Projection"},
		{},
		{"Currency", r.currency()},
		{"Monthly contribution", r.Request.PeriodicContribution},
		{"Annual rate (%)", r.Request.AnnualRatePercent},
		{"Horizon (years)", r.Request.HorizonYears},
		{"Mode", label},
		{},
		{label + " final", headline},
		{"DCA final", r.Result.PeriodicFinal},
		{"Lump sum final", r.Result.LumpSumFinal},
		{"Total capital", r.Result.LumpSumPrincipal},
		{"Difference (lump sum - DCA)", r.Result.Difference},
		{"Summary", DifferenceLabel(r.Result.Difference, r.currency())},
	}
	if r.NarrativeError != "" {
		summary = append(summary, []interface{}{"Narrative error", r.NarrativeError})
	}
	for i, row := range summary {
		if err := setRow(f, xlsxSummarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, xlsxSeriesSheet, 1, []interface{}{"Month", "Contributed", "DCA balance", "Lump sum final"}); err != nil {
		return nil, err
	}
	for i, balance := range r.Result.PeriodicSeries {
		month := i + 1
		row := []interface{}{month, r.Request.PeriodicContribution * float64(month), balance, r.Result.LumpSumFinal}
		if err := setRow(f, xlsxSeriesSheet, month+1, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, xlsxYearlySheet, 1, []interface{}{"Year", "Contributed", "DCA balance", "Lump sum value"}); err != nil {
		return nil, err
	}
	for i, y := range yearlyRows(r.Request, r.Result) {
		if err := setRow(f, xlsxYearlySheet, i+2, []interface{}{y.Year, y.Contributed, y.Periodic, y.LumpSum}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return f.SetSheetRow(sheet, cell, &values)
}
