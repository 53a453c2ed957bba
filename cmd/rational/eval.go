package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rational/internal/calc"
)

func newEvalCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] <expr>...",
		Short: "Evaluate arithmetic expressions exactly",
		Long: `Evaluate expressions built from integers, decimals, + - * / % ^ !, parentheses
and the functions ` + strings.Join(calc.Builtins(), ", ") + `.

In rational mode / is exact division; in integer mode it truncates toward zero.
Put -- before the expressions when the first one starts with '-'.`,
		Example: `  rational eval '1/2 + 1/3'
  rational eval --decimal 20 '355/113'
  rational eval --mode integer -- '-7 / 2' '-7 % 2'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := app.evaluator(cmd)
			if err != nil {
				return err
			}
			out, err := app.readOutputOptions(cmd)
			if err != nil {
				return err
			}
			quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
			if err != nil {
				return fmt.Errorf("failed to get quiet flag: %w", err)
			}
			for _, src := range args {
				var line string
				err := app.track("eval", func() (int, error) {
					v, err := ev.Eval(cmd.Context(), src)
					if err != nil {
						return 0, err
					}
					line = out.render(v)
					return v.Len(), nil
				})
				if err != nil {
					return fmt.Errorf("%s: %w", src, err)
				}
				if len(args) > 1 && !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", src, line)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return nil
		},
	}
	addOutputFlags(cmd)
	addEvalFlags(cmd)
	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w (use -- before an expression that starts with '-')", err)
	})
	return cmd
}

func addEvalFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "number domain (rational|integer), default from [eval].mode")
	cmd.Flags().Int("parallel-depth", 0, "run the top Karatsuba levels of large integer products concurrently")
}

func (a *appState) evaluator(cmd *cobra.Command) (*calc.Evaluator, error) {
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get mode flag: %w", err)
	}
	if modeStr == "" {
		modeStr = a.cfg.Eval.Mode
	}
	mode, err := calc.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	depth, err := cmd.Flags().GetInt("parallel-depth")
	if err != nil {
		return nil, fmt.Errorf("failed to get parallel-depth flag: %w", err)
	}
	if depth < 0 {
		return nil, fmt.Errorf("--parallel-depth must not be negative")
	}
	return &calc.Evaluator{Mode: mode, ParallelDepth: depth}, nil
}
