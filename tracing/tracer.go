// Package tracing records clock-frequency transitions. A FreqTracer hooks
// into the clock controller and forwards every transition to a backend; the
// SQLite backend in this package batches them into a database for offline
// inspection.
package tracing

import (
	"time"

	"github.com/rs/xid"

	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/hooking"
)

// A Transition is one recorded frequency-change notification.
type Transition struct {
	ID              string
	Phase           string
	OldFreq         uint32
	OldTicksPerUsec uint32
	NewFreq         uint32
	HostTime        float64
}

// Transition phases.
const (
	PhasePre  = "pre"
	PhasePost = "post"
)

// A Backend stores transitions.
type Backend interface {
	// Write stores one transition. Backends may buffer.
	Write(t Transition)

	// Flush forces buffered transitions to storage.
	Flush()
}

// A FreqTracer is a hook that records frequency transitions to a backend.
//
// The hook runs inside the clock controller's critical section, so the
// backend's Write must be cheap; the SQLite backend only appends to an
// in-memory batch there.
type FreqTracer struct {
	backend Backend
}

// NewFreqTracer creates a tracer that records to the given backend.
func NewFreqTracer(backend Backend) *FreqTracer {
	return &FreqTracer{
		backend: backend,
	}
}

// Func records the transition carried by a frequency-change hook context.
// Contexts at other positions are ignored.
func (t *FreqTracer) Func(ctx hooking.HookCtx) {
	var phase string

	switch ctx.Pos {
	case clock.HookPosCPUFreqPre:
		phase = PhasePre
	case clock.HookPosCPUFreqPost:
		phase = PhasePost
	default:
		return
	}

	change := ctx.Item.(clock.FreqChange)

	t.backend.Write(Transition{
		ID:              xid.New().String(),
		Phase:           phase,
		OldFreq:         uint32(change.OldFreq),
		OldTicksPerUsec: change.OldTicksPerUsec,
		NewFreq:         uint32(change.NewFreq),
		HostTime:        float64(time.Now().UnixNano()) / 1e9,
	})
}
