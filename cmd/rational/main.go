package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rational/internal/config"
	"rational/internal/observ"
	"rational/internal/trace"
	"rational/internal/version"
)

// appState is shared by every subcommand of one invocation.
type appState struct {
	cfg      config.Config
	cfgPath  string
	tracer   trace.Tracer
	timer    *observ.Timer
	cleanups []func()
}

func (a *appState) onClose(fn func()) { a.cleanups = append(a.cleanups, fn) }

// close runs the cleanups in reverse order. It is safe to call twice.
func (a *appState) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

func newRootCmd(app *appState) *cobra.Command {
	root := &cobra.Command{
		Use:           "rational",
		Short:         "Exact big-integer and rational arithmetic",
		Long:          `rational evaluates integer and fraction arithmetic with arbitrary precision`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "path to "+config.FileName+" (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(
		newIntCmd(app),
		newRatCmd(app),
		newEvalCmd(app),
		newBatchCmd(app),
		newCacheCmd(app),
		newConfigCmd(app),
		newVersionCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := &appState{}
	err := newRootCmd(app).ExecuteContext(ctx)
	if err != nil {
		dumpTrace(os.Stderr, app.tracer)
	}
	app.close()
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitError carries a specific process exit status.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

var errorLabel = color.New(color.FgRed, color.Bold)

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel.Sprint("error:"), err)
}

// dumpTrace writes the ring buffers of t, which hold the events leading up
// to a failure.
func dumpTrace(w io.Writer, t trace.Tracer) {
	for _, ring := range trace.Rings(t) {
		if len(ring.Snapshot()) == 0 {
			continue
		}
		fmt.Fprintln(w, "trace (most recent events):")
		if err := ring.Dump(w, trace.FormatText); err != nil {
			fmt.Fprintf(w, "trace: dump failed: %v\n", err)
		}
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
