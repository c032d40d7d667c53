package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/domain"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/output"
	"github.com/rgehrsitz/finbuddy/pkg/money"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [scenario-file]",
		Short: "Project dollar-cost averaging against a lump sum",
		Long: `Project a monthly contribution and the equivalent lump sum.

Without a scenario file the request comes from flags:
  finbuddy calculate --contribution 10000 --rate 5 --years 20

With a scenario file every scenario (or the one named by --scenario) is run:
  finbuddy calculate scenarios.yaml --scenario baseline --format html --output reports
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCalculate,
	}

	cmd.Flags().Float64("contribution", config.DefaultContribution, "Monthly contribution")
	cmd.Flags().Float64("rate", config.DefaultAnnualRatePercent, "Annual return rate in percent")
	cmd.Flags().Int("years", config.DefaultHorizonYears, "Investment horizon in years")
	cmd.Flags().String("scenario", "", "Run only this scenario from the scenario file")
	cmd.Flags().String("mode", "", "Headline strategy: periodic or lump_sum")
	cmd.Flags().String("currency", "", "Currency prefix (default from settings)")
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write reports to this directory instead of stdout")
	cmd.Flags().Bool("narrate", false, "Ask the configured narrative provider for an explanation")
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(output.NormalizeFormatName(format))
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	scenarios, file, err := requestedScenarios(cmd, args)
	if err != nil {
		return err
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	if modeFlag == "" && file != nil {
		modeFlag = string(file.Mode)
	}
	mode, err := domain.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	currency, _ := cmd.Flags().GetString("currency")
	if currency == "" && file != nil {
		currency = file.Currency
	}
	if currency == "" {
		currency = settings.Currency
	}

	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" && output.IsBinary(formatter) {
		outDir = "."
	}

	narrate, _ := cmd.Flags().GetBool("narrate")
	var gen narrative.Generator
	var genErr error
	if narrate {
		gen, genErr = narrative.NewGenerator(settings)
	}

	engine := newEngine(cmd)
	out := cmd.OutOrStdout()
	outcomes := engine.RunScenarios(&domain.ScenarioFile{Scenarios: scenarios})
	for i, oc := range outcomes {
		sc := oc.Scenario
		report := output.NewReport(sc.Request, oc.Result)
		report.Mode = mode
		report.Currency = currency

		if narrate {
			narrateReport(cmd.Context(), report, gen, genErr, settings)
		}

		if outDir != "" {
			path, err := output.WriteFormatted(formatter, report, outDir)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			fmt.Fprintf(out, "Report written to %s\n", path)
			continue
		}

		data, err := formatter.Format(report)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		if len(scenarios) > 1 && i > 0 {
			fmt.Fprintln(out)
		}
		if len(scenarios) > 1 && formatter.Name() != "json" && formatter.Name() != "csv" {
			fmt.Fprintf(out, "=== %s ===\n", sc.Name)
		}
		fmt.Fprint(out, string(data))
	}
	return nil
}

// requestedScenarios returns the scenarios selected by args and flags. Without
// a file a single unnamed scenario is built from the request flags.
func requestedScenarios(cmd *cobra.Command, args []string) ([]domain.Scenario, *domain.ScenarioFile, error) {
	if len(args) == 0 {
		contribution, _ := cmd.Flags().GetFloat64("contribution")
		rate, _ := cmd.Flags().GetFloat64("rate")
		years, _ := cmd.Flags().GetInt("years")
		req := domain.ProjectionRequest{
			PeriodicContribution: contribution,
			AnnualRatePercent:    rate,
			HorizonYears:         years,
		}
		if err := config.ValidateRequest(req); err != nil {
			return nil, nil, err
		}
		return []domain.Scenario{{Name: "cli", Request: req}}, nil, nil
	}

	file, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return nil, nil, err
	}
	name, _ := cmd.Flags().GetString("scenario")
	if name == "" {
		return file.Scenarios, file, nil
	}
	sc, ok := file.Find(name)
	if !ok {
		return nil, nil, fmt.Errorf("scenario %q not found in %s", name, args[0])
	}
	return []domain.Scenario{*sc}, file, nil
}

// narrateReport attaches an explanation to report. Any failure is recorded on
// the report so the numbers are still printed.
func narrateReport(ctx context.Context, report *output.Report, gen narrative.Generator, genErr error, settings config.Settings) {
	if genErr != nil {
		report.NarrativeError = fmt.Errorf("%w: %w", narrative.ErrServiceFailure, genErr).Error()
		return
	}
	facts := narrative.FactsFrom(report.Request, report.Result, report.Currency, settings.Language)
	text, err := narrative.Narrate(ctx, gen, settings.NarrativeTimeout, narrative.BuildPrompt(facts))
	if err != nil {
		report.NarrativeError = err.Error()
		return
	}
	report.Narrative = text
}

func lumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lump",
		Short: "Grow a single deposit at an annual rate",
		Long: `Compound an arbitrary principal once per year.

  finbuddy lump --principal 2400000 --rate 5 --years 20
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			principal, _ := cmd.Flags().GetFloat64("principal")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetInt("years")
			currency, _ := cmd.Flags().GetString("currency")
			if currency == "" {
				currency = settings.Currency
			}

			if principal < 0 {
				return fmt.Errorf("%w: principal cannot be negative", config.ErrInvalidInput)
			}
			// Rate and horizon share the projection bounds.
			if err := config.ValidateRequest(domain.ProjectionRequest{AnnualRatePercent: rate, HorizonYears: years}); err != nil {
				return err
			}

			final := calculation.ProjectSingleDeposit(principal, rate, years)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Principal:    %s\n", money.Format(principal, currency))
			fmt.Fprintf(out, "Annual rate:  %s\n", money.Percent(rate))
			fmt.Fprintf(out, "Years:        %d\n", years)
			fmt.Fprintf(out, "Final value:  %s\n", money.Format(final, currency))
			fmt.Fprintf(out, "Growth:       %s\n", money.Format(final-principal, currency))
			return nil
		},
	}

	cmd.Flags().Float64("principal", config.DefaultContribution*12*config.DefaultHorizonYears, "Amount deposited once at the start")
	cmd.Flags().Float64("rate", config.DefaultAnnualRatePercent, "Annual return rate in percent")
	cmd.Flags().Int("years", config.DefaultHorizonYears, "Investment horizon in years")
	cmd.Flags().String("currency", "", "Currency prefix (default from settings)")
	return cmd
}
