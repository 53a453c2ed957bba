package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rational/internal/config"
	"rational/internal/observ"
	"rational/internal/prof"
	"rational/internal/trace"
)

// setup loads the configuration and starts profiling, tracing and timing
// for cmd. Resources are released by appState.close.
func (a *appState) setup(cmd *cobra.Command) error {
	root := cmd.Root()
	if err := a.loadConfig(root); err != nil {
		return err
	}
	if err := setupColor(root); err != nil {
		return err
	}
	if err := a.setupProfiling(root); err != nil {
		return err
	}
	if err := a.setupTracing(cmd); err != nil {
		return err
	}

	showTimings, err := root.PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		a.timer = observ.NewTimer()
		errOut := cmd.ErrOrStderr()
		a.onClose(func() { fmt.Fprint(errOut, a.timer.Summary()) })
	}
	return nil
}

func (a *appState) loadConfig(root *cobra.Command) error {
	path, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg, a.cfgPath = cfg, path
		return nil
	}
	cfg, found, err := config.Discover(".")
	if err != nil {
		return err
	}
	a.cfg, a.cfgPath = cfg, found
	return nil
}

func setupColor(root *cobra.Command) error {
	colorFlag, err := root.PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	return nil
}

func (a *appState) setupProfiling(root *cobra.Command) error {
	pf := root.PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = pf.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = pf.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	a.onClose(func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		}
	})
	return nil
}

// setupTracing builds the tracer from the trace flags, falling back to the
// [trace] table of the configuration, and attaches it to cmd's context.
func (a *appState) setupTracing(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	output, err := pf.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeat, err := pf.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	if levelStr == "" {
		levelStr = a.cfg.Trace.Level
		// --trace alone asks for the usual phase level.
		if output != "" && levelStr == trace.LevelOff.String() {
			levelStr = trace.LevelPhase.String()
		}
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	if level == trace.LevelOff {
		a.tracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	if modeStr == "" {
		modeStr = a.cfg.Trace.Mode
		if output != "" {
			modeStr = trace.ModeStream.String()
		}
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	if output == "" {
		output = a.cfg.Trace.Output
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		Output:     streamWriter(cmd, output),
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	a.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	hb := trace.StartHeartbeat(tracer, heartbeat)
	errOut := cmd.ErrOrStderr()
	a.onClose(func() {
		hb.Stop()
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	})
	return nil
}

// streamWriter routes "-" to the command's stderr so tests can capture it.
func streamWriter(cmd *cobra.Command, output string) io.Writer {
	if output == "-" || output == "" {
		return cmd.ErrOrStderr()
	}
	return nil
}
