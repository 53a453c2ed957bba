package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("batch")
	tm.End(idx, 12, "3 expressions")
	if err := tm.Track("int div", func() (int, error) { return 0, errors.New("division by zero") }); err == nil {
		t.Fatal("Track must return fn's error")
	}
	if err := tm.Track("int mul", func() (int, error) { return 40, nil }); err != nil {
		t.Fatal(err)
	}
	tm.End(42, 1, "ignored")

	r := tm.Report()
	if len(r.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(r.Phases))
	}
	if p := r.Phases[0]; p.Name != "batch" || p.Note != "3 expressions" || p.Digits != 12 {
		t.Fatalf("unexpected first phase %+v", p)
	}
	if !r.Phases[1].Failed || r.Phases[2].Failed {
		t.Fatalf("failure flags wrong: %+v", r.Phases)
	}
	if r.TotalDigits != 52 {
		t.Fatalf("TotalDigits = %d, want 52", r.TotalDigits)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %v smaller than a phase", r.TotalMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "(3 expressions)", "(failed)", "40 digits", "52 digits"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestDigitsPerMS(t *testing.T) {
	tests := []struct {
		p    PhaseReport
		want float64
	}{
		{PhaseReport{Digits: 100, DurationMS: 4}, 25},
		{PhaseReport{Digits: 0, DurationMS: 4}, 0},
		{PhaseReport{Digits: 100, DurationMS: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.p.DigitsPerMS(); got != tt.want {
			t.Errorf("%+v.DigitsPerMS() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestTimerEmpty(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("empty timer report %+v", r)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("line"), 1, "")
		}()
	}
	wg.Wait()
	if r := tm.Report(); len(r.Phases) != 16 || r.TotalDigits != 16 {
		t.Fatalf("expected 16 phases and digits, got %d, %d", len(r.Phases), r.TotalDigits)
	}
}
