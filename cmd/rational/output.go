package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rational/internal/config"
	"rational/internal/rational"
)

// outputOptions decide how a rational result is printed.
type outputOptions struct {
	format    string
	precision uint
}

// addOutputFlags registers --format and --decimal on cmd.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "result format (fraction|decimal|both), default from "+config.FileName)
	cmd.Flags().Uint("decimal", 0, "print the result as a decimal with this many fractional digits")
}

// readOutputOptions merges the output flags of cmd over the [output] table.
func (a *appState) readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	opts := outputOptions{format: a.cfg.Output.Format, precision: a.cfg.Output.Precision}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if cmd.Flags().Changed("decimal") {
		if opts.precision, err = cmd.Flags().GetUint("decimal"); err != nil {
			return opts, fmt.Errorf("failed to get decimal flag: %w", err)
		}
		opts.format = config.FormatDecimal
	}
	if format != "" {
		opts.format = strings.ToLower(format)
	}
	switch opts.format {
	case config.FormatFraction, config.FormatDecimal, config.FormatBoth:
	default:
		return opts, fmt.Errorf("invalid --format value %q (expected fraction|decimal|both)", format)
	}
	if opts.precision > config.MaxPrecision {
		return opts, fmt.Errorf("--decimal %d exceeds %d", opts.precision, config.MaxPrecision)
	}
	return opts, nil
}

func (o outputOptions) render(v rational.Rat) string {
	switch o.format {
	case config.FormatDecimal:
		return v.AsDecimal(o.precision)
	case config.FormatBoth:
		if v.IsInt() {
			return v.String()
		}
		return v.String() + " ≈ " + v.AsDecimal(o.precision)
	default:
		return v.String()
	}
}
