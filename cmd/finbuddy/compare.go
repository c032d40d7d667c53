package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finbuddy/internal/compare"
	"github.com/rgehrsitz/finbuddy/internal/config"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios)\n", args[0], len(file.Scenarios))
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [scenario-file]",
		Short: "Compare scenarios against a base scenario",
		Long: `Run every scenario in a file and compare each one with a base scenario.

Examples:
  finbuddy compare scenarios.yaml --base baseline
  finbuddy compare scenarios.yaml --base baseline --with higher_rate,longer --format csv
  finbuddy compare scenarios.yaml --base baseline --sweep 2:10:2
`,
		Args: cobra.ExactArgs(1),
		RunE: runCompare,
	}

	cmd.Flags().String("base", "", "Base scenario name (default: first scenario)")
	cmd.Flags().String("with", "", "Comma-separated scenarios to compare (default: all others)")
	cmd.Flags().String("sweep", "", "Project the base scenario across rates, e.g. 3,5,7 or 2:10:2")
	cmd.Flags().String("currency", "", "Currency prefix (default from the scenario file or settings)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	file, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return err
	}

	currency, _ := cmd.Flags().GetString("currency")
	if currency == "" {
		currency = file.Currency
	}
	if currency == "" {
		currency = settings.Currency
	}

	baseName, _ := cmd.Flags().GetString("base")
	format, _ := cmd.Flags().GetString("format")
	sweep, _ := cmd.Flags().GetString("sweep")
	engine := compare.NewCompareEngine(newEngine(cmd))
	out := cmd.OutOrStdout()

	if sweep != "" {
		rates, err := compare.ParseRates(sweep)
		if err != nil {
			return err
		}
		if baseName == "" {
			baseName = file.Scenarios[0].Name
		}
		base, ok := file.Find(baseName)
		if !ok {
			return fmt.Errorf("base scenario %q: %w", baseName, compare.ErrUnknownScenario)
		}
		points, err := engine.RateSweep(base.Request, rates)
		if err != nil {
			return err
		}

		var text string
		switch strings.ToLower(format) {
		case "csv":
			text, err = (&compare.CSVFormatter{}).FormatSweep(points)
		case "json":
			text, err = (&compare.JSONFormatter{Pretty: true}).FormatSweep(points)
		default:
			text = (&compare.TableFormatter{}).FormatSweep(points, currency)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	}

	var alternatives []string
	if with, _ := cmd.Flags().GetString("with"); with != "" {
		for _, name := range strings.Split(with, ",") {
			if name = strings.TrimSpace(name); name != "" {
				alternatives = append(alternatives, name)
			}
		}
	}

	compSet, err := engine.Compare(cmd.Context(), file, compare.CompareOptions{
		BaseScenarioName: baseName,
		Alternatives:     alternatives,
		ConfigPath:       args[0],
		Currency:         currency,
	})
	if err != nil {
		return err
	}

	var text string
	switch strings.ToLower(format) {
	case "csv":
		text, err = (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
	case "compact":
		text = (&compare.TableFormatter{}).FormatCompact(compSet)
	case "table", "":
		text = (&compare.TableFormatter{}).Format(compSet)
	default:
		return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}
