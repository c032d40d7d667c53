package compare

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
)

func testScenarioFile() *domain.ScenarioFile {
	return &domain.ScenarioFile{
		Currency: "NT$",
		Scenarios: []domain.Scenario{
			{Name: "base", Request: domain.ProjectionRequest{PeriodicContribution: 10000, AnnualRatePercent: 5, HorizonYears: 20}},
			{Name: "aggressive", Description: "equity heavy", Request: domain.ProjectionRequest{PeriodicContribution: 10000, AnnualRatePercent: 8, HorizonYears: 20}},
			{Name: "small", Request: domain.ProjectionRequest{PeriodicContribution: 5000, AnnualRatePercent: 5, HorizonYears: 20}},
		},
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := NewCompareEngine(nil)

	compSet, err := ce.Compare(context.Background(), testScenarioFile(), CompareOptions{BaseScenarioName: "base"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if compSet.BaseResult.ScenarioName != "base" {
		t.Errorf("Expected base result 'base', got %s", compSet.BaseResult.ScenarioName)
	}
	if compSet.Currency != "NT$" {
		t.Errorf("Expected currency from file, got %q", compSet.Currency)
	}
	if len(compSet.AlternativeResults) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(compSet.AlternativeResults))
	}

	aggressive := compSet.AlternativeResults[0]
	if aggressive.ScenarioName != "aggressive" || aggressive.Description != "equity heavy" {
		t.Errorf("Unexpected first alternative: %+v", aggressive)
	}
	if !aggressive.PeriodicDiffFromBase.IsPositive() {
		t.Errorf("Expected higher rate to beat base, diff %s", aggressive.PeriodicDiffFromBase)
	}
	if !aggressive.ContributedDiffFromBase.IsZero() {
		t.Errorf("Expected equal contributions, got %s", aggressive.ContributedDiffFromBase)
	}

	small := compSet.AlternativeResults[1]
	if got := small.PeriodicPctFromBase.StringFixed(2); got != "-50.00" {
		t.Errorf("Expected half the base balance (-50.00%%), got %s", got)
	}

	want := []string{
		"Highest Balance: aggressive",
		"Best Growth Multiple: aggressive",
		"Timing: a lump sum of the same capital ends ahead in every scenario",
	}
	if len(compSet.Recommendations) != len(want) {
		t.Fatalf("Expected %d recommendations, got %v", len(want), compSet.Recommendations)
	}
	for i, prefix := range want {
		if !strings.HasPrefix(compSet.Recommendations[i], prefix) {
			t.Errorf("Recommendation %d = %q, want prefix %q", i, compSet.Recommendations[i], prefix)
		}
	}
}

func TestCompareEngine_DefaultsAndSelection(t *testing.T) {
	ce := NewCompareEngine(nil)

	compSet, err := ce.Compare(context.Background(), testScenarioFile(), CompareOptions{Alternatives: []string{"small"}, Currency: "$"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if compSet.BaseScenarioName != "base" {
		t.Errorf("Expected first scenario as base, got %s", compSet.BaseScenarioName)
	}
	if len(compSet.AlternativeResults) != 1 || compSet.AlternativeResults[0].ScenarioName != "small" {
		t.Errorf("Expected only 'small', got %+v", compSet.AlternativeResults)
	}
	if compSet.Currency != "$" {
		t.Errorf("Expected currency override, got %q", compSet.Currency)
	}
}

func TestCompareEngine_Errors(t *testing.T) {
	ce := NewCompareEngine(nil)
	ctx := context.Background()

	if _, err := ce.Compare(ctx, testScenarioFile(), CompareOptions{BaseScenarioName: "missing"}); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Expected ErrUnknownScenario for base, got %v", err)
	}

	if _, err := ce.Compare(ctx, testScenarioFile(), CompareOptions{Alternatives: []string{"nope"}}); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Expected ErrUnknownScenario for alternative, got %v", err)
	}

	if _, err := ce.Compare(ctx, &domain.ScenarioFile{}, CompareOptions{}); err == nil {
		t.Error("Expected error for empty file")
	}

	bad := testScenarioFile()
	bad.Scenarios[2].Request.AnnualRatePercent = 150
	if _, err := ce.Compare(ctx, bad, CompareOptions{}); !errors.Is(err, config.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := ce.Compare(cancelled, testScenarioFile(), CompareOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestMetricsCalculator_ZeroContribution(t *testing.T) {
	mc := NewMetricsCalculator()
	outcome := domain.ScenarioOutcome{
		Scenario: domain.Scenario{Name: "nothing"},
		Result:   domain.ProjectionResult{},
	}

	result := mc.CalculateMetrics(outcome)
	if !result.GrowthMultiple.IsZero() {
		t.Errorf("Expected zero multiple, got %s", result.GrowthMultiple)
	}
	if result.Leader != domain.StrategyTie {
		t.Errorf("Expected tie, got %s", result.Leader)
	}

	compared := mc.CalculateComparison(result, result)
	if !compared.PeriodicPctFromBase.IsZero() {
		t.Errorf("Expected zero percent change against zero base, got %s", compared.PeriodicPctFromBase)
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	ce := NewCompareEngine(nil)
	file := testScenarioFile()
	file.Scenarios = file.Scenarios[:1]

	compSet, err := ce.Compare(context.Background(), file, CompareOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(compSet.Recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %v", compSet.Recommendations)
	}
}

func TestRateSweep(t *testing.T) {
	ce := NewCompareEngine(nil)
	base := domain.ProjectionRequest{PeriodicContribution: 10000, AnnualRatePercent: 5, HorizonYears: 20}

	points, err := ce.RateSweep(base, []float64{0, 5, 10})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}
	if points[0].Leader != domain.StrategyTie || points[0].PeriodicFinal != 2400000 {
		t.Errorf("Expected zero-rate tie at 2,400,000, got %+v", points[0])
	}
	for i := 1; i < len(points); i++ {
		if points[i].PeriodicFinal <= points[i-1].PeriodicFinal {
			t.Errorf("Expected balance to grow with rate: %+v", points)
		}
	}

	if _, err := ce.RateSweep(base, []float64{5, 150}); !errors.Is(err, config.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for out of range rate, got %v", err)
	}
	if _, err := ce.RateSweep(base, nil); !errors.Is(err, config.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty rates, got %v", err)
	}
}

func TestParseRates_MaxPoints(t *testing.T) {
	got, err := ParseRates("0:999:1")
	if err != nil {
		t.Fatalf("ParseRates at the limit: %v", err)
	}
	if len(got) != MaxSweepPoints {
		t.Fatalf("got %d rates, want %d", len(got), MaxSweepPoints)
	}
	if got[len(got)-1] != 999 {
		t.Errorf("last rate = %v, want 999", got[len(got)-1])
	}

	ce := NewCompareEngine(nil)
	base := domain.ProjectionRequest{PeriodicContribution: 100, AnnualRatePercent: 5, HorizonYears: 1}
	if _, err := ce.RateSweep(base, make([]float64, MaxSweepPoints+1)); !errors.Is(err, config.ErrInvalidInput) {
		t.Errorf("RateSweep over the limit: err = %v, want ErrInvalidInput", err)
	}
}

func TestParseRates(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"3,5,7.5", []float64{3, 5, 7.5}, false},
		{" 4 ", []float64{4}, false},
		{"2:10:2", []float64{2, 4, 6, 8, 10}, false},
		{"0:0.3:0.1", []float64{0, 0.1, 0.2, 0.30000000000000004}, false},
		{"", nil, true},
		{"1:2", nil, true},
		{"5:1:1", nil, true},
		{"1:5:0", nil, true},
		{"a,b", nil, true},
		{"2:10:1e-12", nil, true},
		{"0:inf:1", nil, true},
		{"0:1000:1", nil, true},
		{strings.Repeat("5,", MaxSweepPoints) + "5", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseRates(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRates(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRates(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseRates(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseRates(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
