package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// StaticGenerator produces a deterministic explanation without any network
// call. It is used for offline runs and demos.
type StaticGenerator struct{}

var _ Generator = StaticGenerator{}

func (StaticGenerator) Name() string { return "static" }

func (StaticGenerator) Explain(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f := p.Facts
	r := f.Request
	cur := f.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "### How the numbers work\n\n")
	fmt.Fprintf(&b, "1. Capital invested: %s x 12 x %d = **%s**\n",
		money.Format(r.PeriodicContribution, cur), r.HorizonYears, money.Format(f.Capital, cur))
	fmt.Fprintf(&b, "2. Monthly rate: %s / 12 = %.4f%%\n",
		money.Percent(r.AnnualRatePercent), r.AnnualRatePercent/12)
	fmt.Fprintf(&b, "3. Each month the balance grows by the monthly rate, then the new contribution is added. "+
		"After %d months the balance is about **%s**.\n", r.PeriodCount(), money.Format(f.Periodic, cur))
	fmt.Fprintf(&b, "4. Investing the whole capital up front and compounding yearly: FV = P x (1 + r)^t = **%s**.\n",
		money.Format(f.Lump, cur))
	fmt.Fprintf(&b, "\n_This simulation is for reference only; real returns depend on market risk._\n")
	return b.String(), nil
}
