// Package hsw implements the clock-frequency controller of the Haswell
// audio-DSP platform. The controller owns the logical state of the two
// clock domains, applies supported core frequencies to the shim divider,
// converts between ticks and microseconds, and measures elapsed time across
// a single counter wraparound.
package hsw

import (
	"math"
	"sync/atomic"

	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/hooking"
	"github.com/openavs/dspfw/irq"
	"github.com/openavs/dspfw/mem"
	"github.com/openavs/dspfw/regs"
	"github.com/openavs/dspfw/timer"
)

// domainState is the record of one clock domain. Frequency and tick rate
// are single aligned words so that lock-free readers observe either the old
// or the new value of a transition, never a torn one.
type domainState struct {
	freq         atomic.Uint32 // clock.Hertz
	ticksPerUsec atomic.Uint32
	lock         irq.Lock
}

// state is the process-wide clock state block. It is allocated once from
// the system zone during bring-up and lives until the process exits.
type state struct {
	domains [clock.NumDomains]domainState
}

// A Controller manages the clock domains of the platform. Construct one
// with a Builder; the Build step allocates and seeds the state block, so a
// Controller is ready as soon as it exists. Frequency-change hooks register
// through AcceptHook.
type Controller struct {
	hooking.HookableBase

	regIO      regs.RegisterIO
	cpuCounter timer.Counter
	sspCounter timer.Counter

	st *state
}

// Enable turns a clock domain on. Gating is not wired on this platform, so
// every known domain is deliberately a no-op, as is any unknown identifier.
func (c *Controller) Enable(d clock.Domain) {
	switch d {
	case clock.DomainCPU:
	case clock.DomainSSP:
	default:
	}
}

// Disable turns a clock domain off. Deliberately a no-op for every domain,
// matching Enable.
func (c *Controller) Disable(d clock.Domain) {
	switch d {
	case clock.DomainCPU:
	case clock.DomainSSP:
	default:
	}
}

// SetFreq requests a new frequency for a domain and returns the domain's
// frequency afterwards.
//
// For the core domain the request is rounded up to the first table step at
// or above hz (or the table's final step when the request is higher than
// every step), the pre-change hook fires, the divider encoding is written
// to CSR, the post-change hook fires, and the stored state is updated — all
// inside the domain's interrupt-masked critical section. The serial domain
// is fixed: requests leave it untouched and return its current frequency.
// Unknown domains are ignored and return 0; passing one is a caller bug.
func (c *Controller) SetFreq(d clock.Domain, hz clock.Hertz) clock.Hertz {
	if !d.Valid() {
		return 0
	}

	ds := &c.st.domains[d]

	change := clock.FreqChange{
		OldFreq:         clock.Hertz(ds.freq.Load()),
		OldTicksPerUsec: ds.ticksPerUsec.Load(),
	}

	// Atomic context: interrupt-driven callers chaining clock changes must
	// never observe a half-applied transition on this domain.
	flags := ds.lock.Acquire()

	switch d {
	case clock.DomainCPU:
		step := cpuFreq[cpuFreq.Select(hz)]
		change.NewFreq = step.Freq

		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    clock.HookPosCPUFreqPre,
			Item:   change,
		})

		c.regIO.UpdateBits(ShimCSR, csrDCSMask, csrDCS(step.Enc))

		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    clock.HookPosCPUFreqPost,
			Item:   change,
		})

		ds.freq.Store(uint32(step.Freq))
		ds.ticksPerUsec.Store(step.TicksPerUsec)
	case clock.DomainSSP:
		// Fixed clock, nothing to select or write.
	}

	ds.lock.Release(flags)

	return clock.Hertz(ds.freq.Load())
}

// Freq returns the domain's current frequency. The read is deliberately
// lock-free: a transition in flight on another context yields either the
// old or the new frequency, which is acceptable for the advisory timing
// calculations this value feeds.
func (c *Controller) Freq(d clock.Domain) clock.Hertz {
	return clock.Hertz(c.st.domains[d].freq.Load())
}

// UsToTicks converts microseconds to ticks of the domain's counter. Large
// inputs wrap silently in uint64 arithmetic.
func (c *Controller) UsToTicks(d clock.Domain, us uint64) uint64 {
	return us * uint64(c.st.domains[d].ticksPerUsec.Load())
}

// TimeElapsed reads the domain's free-running counter and returns the
// microseconds elapsed since previous was read from the same counter,
// together with the fresh count for the next call.
//
// At most one counter wraparound is accounted for. If the counter wraps
// more than once between reads the result is short; callers must query
// often enough for their domain's tick rate. Unknown domains return 0, 0.
func (c *Controller) TimeElapsed(d clock.Domain, previous uint64) (elapsedUs, current uint64) {
	switch d {
	case clock.DomainCPU:
		current = c.cpuCounter.Read()
	case clock.DomainSSP:
		current = c.sspCounter.Read()
	default:
		return 0, 0
	}

	ticksPerUsec := uint64(c.st.domains[d].ticksPerUsec.Load())

	if current >= previous {
		return (current - previous) / ticksPerUsec, current
	}

	// The counter wrapped once since previous was taken.
	return (current + (math.MaxUint64 - previous)) / ticksPerUsec, current
}

// A Builder configures and creates Controllers.
type Builder struct {
	allocator  *mem.Allocator
	regIO      regs.RegisterIO
	cpuCounter timer.Counter
	sspCounter timer.Counter
}

// MakeBuilder creates a Builder with the default allocator.
func MakeBuilder() Builder {
	return Builder{
		allocator: mem.NewAllocator(),
	}
}

// WithAllocator sets the allocator the clock state block is carved from.
func (b Builder) WithAllocator(a *mem.Allocator) Builder {
	b.allocator = a
	return b
}

// WithRegisterIO sets the register access used for divider writes.
func (b Builder) WithRegisterIO(r regs.RegisterIO) Builder {
	b.regIO = r
	return b
}

// WithCPUCounter sets the core domain's free-running counter.
func (b Builder) WithCPUCounter(c timer.Counter) Builder {
	b.cpuCounter = c
	return b
}

// WithSSPCounter sets the serial domain's free-running counter.
func (b Builder) WithSSPCounter(c timer.Counter) Builder {
	b.sspCounter = c
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.regIO == nil {
		panic("register IO must be set")
	}

	if b.cpuCounter == nil {
		panic("cpu counter must be set")
	}

	if b.sspCounter == nil {
		panic("ssp counter must be set")
	}
}

// Build allocates the clock state block from the system zone, seeds each
// domain with its default step, and returns the controller. Build runs once
// per platform bring-up; the state block is never reallocated or freed.
func (b Builder) Build() *Controller {
	b.parametersMustBeValid()

	c := &Controller{
		regIO:      b.regIO,
		cpuCounter: b.cpuCounter,
		sspCounter: b.sspCounter,
	}

	c.st = mem.AllocObject[state](b.allocator, mem.ZoneSys, mem.CapRAM)

	cpu := &c.st.domains[clock.DomainCPU]
	cpu.freq.Store(uint32(cpuFreq[cpuDefaultIdx].Freq))
	cpu.ticksPerUsec.Store(cpuFreq[cpuDefaultIdx].TicksPerUsec)

	ssp := &c.st.domains[clock.DomainSSP]
	ssp.freq.Store(uint32(sspFreq[sspDefaultIdx].Freq))
	ssp.ticksPerUsec.Store(sspFreq[sspDefaultIdx].TicksPerUsec)

	return c
}
