// Package timer provides the free-running tick counters that back elapsed
// time measurement. Each clock domain reads its own counter: the core
// domain reads the architecture system counter, the serial domain reads its
// platform timer peripheral.
package timer

import (
	"sync/atomic"
	"time"
)

// A Counter is a monotonic free-running hardware tick counter. The count
// wraps to zero after reaching the maximum uint64 value.
type Counter interface {
	Read() uint64
}

// A ModelCounter is a counter whose value the owner controls. It is the
// counter of choice for deterministic runs and for exercising wraparound.
// The zero value reads zero.
type ModelCounter struct {
	count atomic.Uint64
}

// Read returns the current count.
func (c *ModelCounter) Read() uint64 {
	return c.count.Load()
}

// Set moves the counter to an absolute count.
func (c *ModelCounter) Set(count uint64) {
	c.count.Store(count)
}

// Advance moves the counter forward by delta ticks, wrapping silently.
func (c *ModelCounter) Advance(delta uint64) {
	c.count.Add(delta)
}

// A HostCounter derives ticks from the host monotonic clock at a fixed tick
// rate. It stands in for the hardware counter when the model runs in real
// time.
type HostCounter struct {
	start        time.Time
	ticksPerUsec uint32
}

// NewHostCounter creates a counter that ticks ticksPerUsec times per
// microsecond of host time, starting from zero.
func NewHostCounter(ticksPerUsec uint32) *HostCounter {
	return &HostCounter{
		start:        time.Now(),
		ticksPerUsec: ticksPerUsec,
	}
}

// Read returns the ticks elapsed since the counter was created.
func (c *HostCounter) Read() uint64 {
	us := time.Since(c.start).Microseconds()
	return uint64(us) * uint64(c.ticksPerUsec)
}
