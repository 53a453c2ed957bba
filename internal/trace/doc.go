// Package trace records spans for commands, expressions and arithmetic
// operations so slow evaluations can be diagnosed.
//
// # Usage
//
//	rational eval --trace=- --trace-level=detail '100! / 98!'
//
// # Tracers
//
//   - Nop: disabled tracing, no allocations
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the most recent events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits command spans, LevelDetail adds one span per evaluated
// expression and LevelDebug adds a span per multiplication or division.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeExpr, "eval", 0)
//	defer span.End("")
package trace
