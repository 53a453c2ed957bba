package trace

import (
	"context"
	"strconv"
	"time"
)

// Heartbeat ticks into a tracer while a long computation runs, so that a
// stalled evaluation shows up as beats with no span end after them.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartHeartbeat emits a KindHeartbeat event every interval until Stop.
// The result is nil when there is nothing to beat into.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if interval <= 0 || tracer == nil || !tracer.Enabled() {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		beat(ctx, tracer, interval)
	}()
	return h
}

func beat(ctx context.Context, tracer Tracer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			ev := newEvent(KindHeartbeat, ScopeCommand, "heartbeat")
			ev.Time = now
			ev.Detail = "#" + strconv.Itoa(n)
			tracer.Emit(ev)
		}
	}
}

// Stop halts the ticker and waits for the last beat. Calling it again, or
// on a nil Heartbeat, does nothing.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}
