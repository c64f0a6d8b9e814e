package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sokinpui/nbanswer/cli"
	"github.com/sokinpui/nbanswer/internal/logger"
	"github.com/sokinpui/nbanswer/internal/tui"
	"github.com/sokinpui/nbanswer/internal/ui"
	"github.com/sokinpui/nbanswer/nbanswer"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stderr,
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})

	app, err := nbanswer.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Diff output goes to stdout and should not run the TUI.
	if cfg.OutputDiff != "" || cfg.NoAnimation || cfg.Output == "-" {
		os.Exit(runPlain(app))
	}

	model := tui.New(app)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	model.SetProgram(p)
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", "err", err)
		os.Exit(1)
	}
	if model.Err() != nil {
		os.Exit(1)
	}
}

func runPlain(app *nbanswer.App) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		mu  sync.Mutex
		bar *ui.ProgressBar
	)
	app.SetProgressCallback(func(current, total int) {
		mu.Lock()
		defer mu.Unlock()
		if bar == nil {
			bar = ui.NewProgressBar(total, "Submissions")
			bar.Start()
			return
		}
		bar.Set(current)
	})

	summary, err := app.Execute(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		var detailed *nbanswer.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		ui.Error("Error: %v", err)
		return 1
	}
	if summary.Questions > 0 || len(summary.Processed) > 0 || len(summary.Failed) > 0 {
		ui.PrintRunSummary(summary)
	} else if summary.Message != "" {
		ui.Info(summary.Message)
	}
	return 0
}
