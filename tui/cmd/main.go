package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dealersim/internal/config"
	"dealersim/internal/logging"
	"dealersim/tui"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a scenario yaml file (empty starts from the built-in baseline)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logDir := flag.String("log-dir", "logs", "directory for rotated log files")
	flag.Parse()

	// The UI owns the terminal, so logs go to the file only.
	logger := logging.New(logging.Options{Level: *logLevel, Dir: *logDir, FileOnly: true})
	slog.SetDefault(logger)

	scn := config.Default()
	if *scenarioPath != "" {
		loaded, err := config.Load(*scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		scn = *loaded
	}

	model := tui.NewModel(scn, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
