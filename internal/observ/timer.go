// Package observ collects wall-clock timings for the --timings report.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed operation, such as "int mul" or "batch", together
// with the number of decimal digits it produced.
type Phase struct {
	Name   string
	Start  time.Time
	Dur    time.Duration
	Digits int // 0 when unknown
	Failed bool
	Note   string
}

// Timer records phases in the order they began. It is safe for
// concurrent use by batch workers.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase at idx, recording the digits it produced.
// Unknown indexes are ignored.
func (t *Timer) End(idx, digits int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Digits = digits
	p.Note = note
}

// Track runs fn as a phase named name. fn reports how many digits its
// result has; a failed phase is marked as such.
func (t *Timer) Track(name string, fn func() (int, error)) error {
	idx := t.Begin(name)
	digits, err := fn()
	t.End(idx, digits, "")
	if err != nil {
		t.mu.Lock()
		t.phases[idx].Failed = true
		t.mu.Unlock()
	}
	return err
}

// PhaseReport is the serialized form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Digits     int     `json:"digits,omitempty"`
	Failed     bool    `json:"failed,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// DigitsPerMS is the output rate of the phase, 0 when either side is
// unknown.
func (p PhaseReport) DigitsPerMS() float64 {
	if p.Digits == 0 || p.DurationMS <= 0 {
		return 0
	}
	return float64(p.Digits) / p.DurationMS
}

// Report aggregates all phases.
type Report struct {
	TotalMS     float64       `json:"total_ms"`
	TotalDigits int           `json:"total_digits"`
	Phases      []PhaseReport `json:"phases"`
}

// Report returns the phases with their summed duration and digit count.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.TotalDigits += p.Digits
		r.Phases = append(r.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Digits:     p.Digits,
			Failed:     p.Failed,
			Note:       p.Note,
		})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as an aligned table:
//
//	timings:
//	  int mul                  0.412 ms       40 digits         97/ms
//	  total                    0.412 ms       40 digits
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.3f ms", p.Name, p.DurationMS)
		if p.Digits > 0 {
			fmt.Fprintf(&sb, " %8d digits", p.Digits)
			if rate := p.DigitsPerMS(); rate > 0 {
				fmt.Fprintf(&sb, " %10.0f/ms", rate)
			}
		}
		switch {
		case p.Failed:
			sb.WriteString("  (failed)")
		case p.Note != "":
			sb.WriteString("  (" + p.Note + ")")
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %9.3f ms %8d digits\n", "total", r.TotalMS, r.TotalDigits)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
