package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rational/internal/batch"
	"rational/internal/cache"
	"rational/internal/config"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, quiet bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && isTerminal(os.Stdout)
	}
}

type batchJSONResult struct {
	Line    int     `json:"line"`
	Expr    string  `json:"expr"`
	Value   string  `json:"value,omitempty"`
	Decimal string  `json:"decimal,omitempty"`
	Error   string  `json:"error,omitempty"`
	Cached  bool    `json:"cached,omitempty"`
	Millis  float64 `json:"elapsed_ms"`
}

func newBatchCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] <file|->",
		Short: "Evaluate a file of expressions, one per line, in parallel",
		Long: `Evaluate every non-empty line of a file. Text after # is a comment.
Results are cached under $XDG_CACHE_HOME/rational and printed in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runBatch(cmd, args[0])
		},
	}
	cmd.Flags().Int("jobs", -1, "max parallel evaluations (0=GOMAXPROCS), default from [eval].jobs")
	cmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	cmd.Flags().Bool("fail-fast", false, "stop at the first failing expression")
	cmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	cmd.Flags().String("output", "text", "result listing (text|json)")
	addEvalFlags(cmd)
	cmd.Flags().Uint("decimal", 0, "also print each result as a decimal with this many fractional digits")
	return cmd
}

func (a *appState) runBatch(cmd *cobra.Command, path string) error {
	flags := cmd.Flags()
	ev, err := a.evaluator(cmd)
	if err != nil {
		return err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 0 {
		jobs = a.cfg.Eval.Jobs
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	failFast, err := flags.GetBool("fail-fast")
	if err != nil {
		return fmt.Errorf("failed to get fail-fast flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	output, err := flags.GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if output != "text" && output != "json" {
		return fmt.Errorf("invalid --output value %q (expected text|json)", output)
	}
	precision, err := flags.GetUint("decimal")
	if err != nil {
		return fmt.Errorf("failed to get decimal flag: %w", err)
	}
	if !flags.Changed("decimal") && a.cfg.Output.Format != config.FormatFraction {
		precision = a.cfg.Output.Precision
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	items, err := readBatchItems(cmd, path)
	if err != nil {
		return err
	}

	req := batch.Request{
		Items:         items,
		Mode:          ev.Mode,
		Precision:     precision,
		Jobs:          jobs,
		ParallelDepth: ev.ParallelDepth,
		FailFast:      failFast,
		Timer:         a.timer,
	}
	if !noCache && a.cfg.Eval.Cache {
		dc, err := cache.Open()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
		} else {
			req.Cache = dc
		}
	}

	var results []batch.Result
	if shouldUseTUI(mode, quiet) {
		results, err = runBatchWithUI(cmd.Context(), "evaluating "+path, req)
	} else {
		results, err = batch.Run(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		if err := writeBatchJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		writeBatchText(cmd.OutOrStdout(), results, quiet)
	}

	sum := batch.Summarize(results)
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d expressions, %d failed, %d cached\n", sum.Total, sum.Failed, sum.Cached)
	}
	if sum.Failed > 0 {
		return &exitError{code: 2, err: fmt.Errorf("%d of %d expressions failed", sum.Failed, sum.Total)}
	}
	return nil
}

func readBatchItems(cmd *cobra.Command, path string) ([]batch.Item, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	items, err := batch.ReadItems(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func writeBatchText(w io.Writer, results []batch.Result, quiet bool) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "%d: %s: %s %v\n", r.Line, r.Expr, errorLabel.Sprint("error:"), r.Err)
		case quiet:
			fmt.Fprintln(w, resultText(r))
		default:
			fmt.Fprintf(w, "%d: %s = %s\n", r.Line, r.Expr, resultText(r))
		}
	}
}

func resultText(r batch.Result) string {
	if r.Decimal == "" || r.Value.IsInt() {
		return r.Value.String()
	}
	return r.Value.String() + " ≈ " + r.Decimal
}

func writeBatchJSON(w io.Writer, results []batch.Result) error {
	out := make([]batchJSONResult, len(results))
	for i, r := range results {
		out[i] = batchJSONResult{
			Line:    r.Line,
			Expr:    r.Expr,
			Decimal: r.Decimal,
			Cached:  r.Cached,
			Millis:  float64(r.Elapsed.Microseconds()) / 1000,
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		} else {
			out[i].Value = r.Value.String()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
