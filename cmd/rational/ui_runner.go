package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rational/internal/batch"
	"rational/internal/ui"
)

type batchOutcome struct {
	results []batch.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, req batch.Request) ([]batch.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Sink = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, reqCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Items, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()

	var outcome batchOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		// The UI quit before the batch finished (Ctrl+C): stop evaluating and
		// drain the remaining events so the sink never blocks.
		cancel()
		go func() {
			for range events {
			}
		}()
		outcome = <-outcomeCh
	}
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
