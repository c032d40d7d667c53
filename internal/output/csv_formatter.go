package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// CSVFormatter exports one row per month with the lump-sum final as a
// reference column.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Year", "Contributed", "DCABalance", "LumpSumFinal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	lump := fixed2(r.Result.LumpSumFinal)
	for i, balance := range r.Result.PeriodicSeries {
		month := i + 1
		row := []string{
			strconv.Itoa(month),
			strconv.Itoa((month-1)/domain.MonthsPerYear + 1),
			fixed2(r.Request.PeriodicContribution * float64(month)),
			fixed2(balance),
			lump,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fixed2(v float64) string { return money.NewMoney(v).String() }
