package narrative

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

// Prompt is the text sent to a narrative provider together with the figures it
// was built from.
type Prompt struct {
	System string
	User   string
	Facts  Facts
}

// Facts are the inputs and totals a prompt describes.
type Facts struct {
	Request  domain.ProjectionRequest
	Periodic float64
	Lump     float64
	Capital  float64
	Currency string
	Language string
}

// FactsFrom extracts the prompt facts from a projection.
func FactsFrom(req domain.ProjectionRequest, res domain.ProjectionResult, currency, language string) Facts {
	return Facts{
		Request:  req,
		Periodic: res.PeriodicFinal,
		Lump:     res.LumpSumFinal,
		Capital:  res.LumpSumPrincipal,
		Currency: currency,
		Language: language,
	}
}

const systemPromptZH = "你是一位像朋友的專業理財顧問，擅長解釋股票、房地產、虛擬貨幣等投資回報模擬。" +
	"請用輕鬆、清楚、有條理的方式回應。使用繁體中文講解，語氣親切，邏輯分明，" +
	"並提供清楚的計算步驟、複利公式與驗算思維，讓高中生也能理解。"

const systemPromptEN = "You are a friendly, professional financial advisor who explains investment return simulations. " +
	"Answer in a relaxed, clear and well-structured way, show the calculation steps and the compound interest formula, " +
	"and keep it understandable for a high-school student."

// BuildPrompt renders the system and user prompt for f. It is a pure function
// of its input.
func BuildPrompt(f Facts) Prompt {
	r := f.Request
	p := Prompt{Facts: f}

	if strings.HasPrefix(strings.ToLower(f.Language), "zh") {
		p.System = systemPromptZH
		p.User = fmt.Sprintf(
			"我每月投資 %s 元，年報酬率 %s、投入 %d 年。"+
				"試算結果：總投入本金 %s，定期定額最終約 %s，單筆投入相同本金最終約 %s。"+
				"請幫我計算定期定額的最終金額，並以清楚條列的方式解釋計算過程。",
			money.Format(r.PeriodicContribution, ""), money.Percent(r.AnnualRatePercent), r.HorizonYears,
			money.Format(f.Capital, f.Currency), money.Format(f.Periodic, f.Currency), money.Format(f.Lump, f.Currency),
		)
		return p
	}

	p.System = systemPromptEN
	p.User = fmt.Sprintf(
		"I invest %s every month at an annual return of %s for %d years. "+
			"Simulation results: total capital %s, dollar-cost averaging ends at about %s, "+
			"a lump sum of the same capital ends at about %s. "+
			"Please calculate the final dollar-cost averaging amount and explain the steps as a clear list.",
		money.Format(r.PeriodicContribution, f.Currency), money.Percent(r.AnnualRatePercent), r.HorizonYears,
		money.Format(f.Capital, f.Currency), money.Format(f.Periodic, f.Currency), money.Format(f.Lump, f.Currency),
	)
	return p
}
