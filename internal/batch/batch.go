// Package batch evaluates many expressions concurrently, reusing cached
// results and reporting progress per expression.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rational/internal/cache"
	"rational/internal/calc"
	"rational/internal/observ"
	"rational/internal/rational"
	"rational/internal/trace"
)

// Item is one expression read from an input file.
type Item struct {
	Line int // 1-based
	Expr string
}

// Result is the outcome for one Item.
type Result struct {
	Line    int
	Expr    string
	Value   rational.Rat
	Decimal string // empty when Precision is 0
	Err     error
	Cached  bool
	Elapsed time.Duration
}

// Request configures Run.
type Request struct {
	Items         []Item
	Mode          calc.Mode
	Precision     uint
	Jobs          int // <= 0 means GOMAXPROCS
	ParallelDepth int
	FailFast      bool // stop at the first failing expression
	Cache         *cache.DiskCache
	Sink          ProgressSink
	Timer         *observ.Timer
}

// ReadItems reads one expression per line. Blank lines and text after '#'
// are ignored.
func ReadItems(r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		items = append(items, Item{Line: line, Expr: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", line+1, err)
	}
	return items, nil
}

// Run evaluates req.Items and returns the results in input order. Failures
// of individual expressions are reported in Result.Err; the returned error
// is set only on cancellation or, with FailFast, for the first failure.
func Run(ctx context.Context, req Request) ([]Result, error) {
	sink := req.Sink
	if sink == nil {
		sink = nopSink{}
	}
	ctx, span := trace.Start(ctx, trace.ScopeCommand, "batch")
	span.WithExtra("items", strconv.Itoa(len(req.Items)))
	defer span.End("")

	results := make([]Result, len(req.Items))
	if req.Timer != nil {
		phase := req.Timer.Begin("batch")
		defer func() {
			req.Timer.End(phase, resultDigits(results), fmt.Sprintf("%d expressions", len(req.Items)))
		}()
	}

	if len(req.Items) == 0 {
		return results, nil
	}
	for _, it := range req.Items {
		sink.OnEvent(Event{Line: it.Line, Expr: it.Expr, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	ev := &calc.Evaluator{Mode: req.Mode, ParallelDepth: req.ParallelDepth}

	// Each goroutine writes only its own index of results.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Items)))
	for i, it := range req.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := evalItem(gctx, ev, req, it, sink)
			results[i] = res
			if res.Err != nil && req.FailFast {
				return fmt.Errorf("line %d: %w", it.Line, res.Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.WithExtra("error", err.Error())
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func evalItem(ctx context.Context, ev *calc.Evaluator, req Request, it Item, sink ProgressSink) Result {
	start := time.Now()
	res := Result{Line: it.Line, Expr: it.Expr}
	key := cache.KeyFor(it.Expr, req.Mode.String(), req.Precision)

	var hit cache.Payload
	if ok, err := req.Cache.Get(key, &hit); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeExpr, "cache", err.Error(), trace.ParentSpan(ctx))
	} else if ok && hit.Expr == it.Expr {
		res.Value, res.Decimal, res.Cached = hit.Result, hit.Decimal, true
		res.Elapsed = time.Since(start)
		sink.OnEvent(Event{Line: it.Line, Expr: it.Expr, Status: StatusCached, Elapsed: res.Elapsed})
		return res
	}

	sink.OnEvent(Event{Line: it.Line, Expr: it.Expr, Status: StatusWorking})
	v, err := ev.Eval(ctx, it.Expr)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = err
		sink.OnEvent(Event{Line: it.Line, Expr: it.Expr, Status: StatusError, Err: err, Elapsed: res.Elapsed})
		return res
	}
	res.Value = v
	if req.Precision > 0 {
		res.Decimal = v.AsDecimal(req.Precision)
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		err := req.Cache.Put(key, &cache.Payload{
			Expr:      it.Expr,
			Mode:      req.Mode.String(),
			Precision: req.Precision,
			Result:    v,
			Decimal:   res.Decimal,
			Stored:    time.Now().UTC(),
		})
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeExpr, "cache", err.Error(), trace.ParentSpan(ctx))
		}
	}
	sink.OnEvent(Event{Line: it.Line, Expr: it.Expr, Status: StatusDone, Elapsed: res.Elapsed})
	return res
}

// Summary counts results by outcome.
type Summary struct {
	Total  int
	Failed int
	Cached int
}

// resultDigits sums the digits of every successful value.
func resultDigits(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n += r.Value.Len()
		}
	}
	return n
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		if r.Cached {
			s.Cached++
		}
	}
	return s
}
