package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/history"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/tui"
)

func main() {
	settingsPath := flag.String("settings", "", "Path to a YAML settings file")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	gen, err := narrative.NewGenerator(settings)
	if err != nil {
		// The calculator works without explanations.
		fmt.Fprintf(os.Stderr, "Warning: narrative disabled: %v\n", err)
		gen = nil
	}

	model := tui.NewModel(
		calculation.NewCalculationEngine(),
		history.NewStore(settings.HistoryCapacity),
		gen,
		settings,
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
