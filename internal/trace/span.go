package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID reads N from the "goroutine N [running]:" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	header := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if i := bytes.IndexByte(header, ' '); i > 0 {
		if gid, err := strconv.ParseUint(string(header[:i]), 10, 64); err == nil {
			return gid
		}
	}
	return 0
}

// newEvent stamps an event with the current time, sequence and goroutine.
func newEvent(kind Kind, scope Scope, name string) *Event {
	return &Event{
		Time:  time.Now(),
		Seq:   NextSeq(),
		Kind:  kind,
		Scope: scope,
		GID:   goroutineID(),
		Name:  name,
	}
}

func recording(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is one timed operation. Every method is safe on a disabled span.
type Span struct {
	tracer  Tracer
	begin   Event
	extra   map[string]string
	enabled bool
}

var disabledSpan = &Span{}

// Begin emits a KindSpanBegin event and returns the open span. When t does
// not record scope, the shared disabled span is returned.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !recording(t, scope) {
		return disabledSpan
	}
	ev := newEvent(KindSpanBegin, scope, name)
	ev.SpanID = NextSpanID()
	ev.ParentID = parent
	s := &Span{tracer: t, begin: *ev, enabled: true}
	t.Emit(ev)
	return s
}

// End emits the KindSpanEnd event, carrying detail and the extras, and
// returns how long the span was open.
func (s *Span) End(detail string) time.Duration {
	if !s.Enabled() {
		return 0
	}
	ev := newEvent(KindSpanEnd, s.begin.Scope, s.begin.Name)
	ev.GID = s.begin.GID
	ev.SpanID = s.begin.SpanID
	ev.ParentID = s.begin.ParentID
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.begin.Time)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// Enabled reports whether the span records anything.
func (s *Span) Enabled() bool { return s != nil && s.enabled }

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !recording(t, scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.ParentID = parent
	ev.Detail = detail
	t.Emit(ev)
}
