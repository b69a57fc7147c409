package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"fregec/internal/diag"
	"fregec/internal/orchestrator"
	"fregec/internal/orchestrator/ui"
	"fregec/internal/resolve"
)

// shouldUseTUI resolves --ui: "auto" enables the TUI only on a real
// terminal, "on"/"off" are explicit overrides.
func shouldUseTUI(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// runMakeWithUI drives o behind a bubbletea progress display fed by a
// channel of orchestrator events.
func runMakeWithUI(o *orchestrator.Orchestrator, items []resolve.Item, errs *diag.Sink) orchestrator.Result {
	events := make(chan orchestrator.Event, 256)
	resultCh := make(chan orchestrator.Result, 1)

	o.SetEvents(events)

	go func() {
		res := o.Run(items, errs)
		close(events)
		resultCh <- res
	}()

	program := tea.NewProgram(ui.New("fregec make", events), tea.WithOutput(os.Stdout))
	_, _ = program.Run()

	return <-resultCh
}
