package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelPhase, ScopeCommand, true},
		{LevelPhase, ScopeExpr, false},
		{LevelDetail, ScopeExpr, true},
		{LevelDetail, ScopeOp, false},
		{LevelDebug, ScopeOp, true},
		{LevelError, ScopeExpr, true},
		{LevelError, ScopeOp, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || l.String() != s {
			t.Fatalf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	for _, s := range []string{"stream", "ring", "both"} {
		m, err := ParseMode(s)
		if err != nil || m.String() != s {
			t.Fatalf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	root := Begin(tr, ScopeCommand, "eval", 0)
	child := Begin(tr, ScopeExpr, "expr", root.ID())
	child.WithExtra("digits", "12").WithExtra("a", "b").End("ok")
	Begin(tr, ScopeOp, "mul", child.ID()).End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[command] → eval") {
		t.Errorf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← expr (ok) {a=b, digits=12}") {
		t.Errorf("unexpected end line %q", lines[2])
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopeOp, "quo", 7).WithExtra("digits", "40").End("")

	var got []jsonEvent
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad json %q: %v", line, err)
		}
		got = append(got, ev)
	}
	if len(got) != 2 || got[0].Kind != "begin" || got[1].Kind != "end" {
		t.Fatalf("unexpected events %+v", got)
	}
	if got[1].ParentID != 7 || got[1].Scope != "op" || got[1].Extra["digits"] != "40" {
		t.Fatalf("unexpected end event %+v", got[1])
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeOp, Seq: uint64(i)})
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, ev := range snap {
		if ev.Seq != uint64(i+2) {
			t.Fatalf("snapshot[%d].Seq = %d, want %d", i, ev.Seq, i+2)
		}
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump has wrong line count:\n%s", buf.String())
	}
}

func TestErrorLevelUsesRing(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("expected *RingTracer, got %T", tr)
	}
}

func TestMultiTracerAndRings(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeCommand, "batch", 0).End("")
	rings := Rings(tr)
	if len(rings) != 1 || len(rings[0].Snapshot()) != 2 {
		t.Fatalf("expected one ring with two events, got %d rings", len(rings))
	}
	if buf.Len() == 0 {
		t.Fatal("stream received nothing")
	}
	if Rings(Nop) != nil {
		t.Fatal("Nop has no rings")
	}
}

func TestDisabledSpans(t *testing.T) {
	s := Begin(Nop, ScopeCommand, "x", 0)
	if s.Enabled() || s.ID() != 0 || s.End("") != 0 {
		t.Fatal("span on Nop must be inert")
	}
	s.WithExtra("k", "v")
	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Fatal("nil span must be inert")
	}
}

func TestContextPropagation(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	ctx, outer := Start(ctx, ScopeCommand, "outer")
	_, inner := Start(ctx, ScopeExpr, "inner")
	inner.End("")
	outer.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %d", len(snap))
	}
	if snap[1].Name != "inner" || snap[1].ParentID != outer.ID() {
		t.Fatalf("inner span not parented: %+v", snap[1])
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must be Nop")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(ring.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if ev := ring.Snapshot()[0]; ev.Kind != KindHeartbeat {
		t.Fatalf("unexpected event kind %s", ev.Kind)
	}
	if StartHeartbeat(Nop, time.Second) != nil {
		t.Fatal("heartbeat on Nop must be nil")
	}
	var nilHB *Heartbeat
	nilHB.Stop()
}
