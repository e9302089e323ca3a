// Package mem models the zoned memory allocator that backs persistent
// driver state in the DSP firmware. Allocations are accounted against a
// fixed per-zone budget; the system zone holds state that lives for the
// whole process and is never freed.
package mem

import (
	"fmt"
	"sync"
	"unsafe"
)

// Zone identifies a memory zone.
type Zone int

// The memory zones of the platform.
const (
	// ZoneSys holds system-lifetime state. Nothing allocated here is ever
	// freed.
	ZoneSys Zone = iota

	// ZoneRuntime holds state with module lifetime.
	ZoneRuntime

	numZones
)

func (z Zone) String() string {
	switch z {
	case ZoneSys:
		return "sys"
	case ZoneRuntime:
		return "runtime"
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// Caps are the capability flags an allocation requires of its backing
// memory.
type Caps uint32

// The capabilities the platform knows about.
const (
	CapRAM Caps = 1 << iota
	CapDMA
)

// Default per-zone budgets, in bytes.
const (
	defaultSysBudget     = 64 * 1024
	defaultRuntimeBudget = 256 * 1024
)

// An Allocator hands out zeroed blocks from its zones. Running a zone dry
// is unrecoverable for the firmware, so exhaustion panics instead of
// returning an error.
//
// The model provides budget accounting, not real backing storage: blocks
// come from the Go heap, and capability flags are recorded in the request
// but not enforced against zone properties.
type Allocator struct {
	mu     sync.Mutex
	budget [numZones]int
	used   [numZones]int
}

// NewAllocator creates an allocator with the default zone budgets.
func NewAllocator() *Allocator {
	a := &Allocator{}
	a.budget[ZoneSys] = defaultSysBudget
	a.budget[ZoneRuntime] = defaultRuntimeBudget

	return a
}

// AllocZeroed carves a zeroed block of size bytes out of the given zone.
func (a *Allocator) AllocZeroed(zone Zone, caps Caps, size int) []byte {
	if zone < 0 || zone >= numZones {
		panic(fmt.Sprintf("unknown memory zone %d", int(zone)))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.used[zone]+size > a.budget[zone] {
		panic(fmt.Sprintf(
			"out of memory in zone %s: %d bytes requested, %d available",
			zone, size, a.budget[zone]-a.used[zone]))
	}

	a.used[zone] += size

	return make([]byte, size)
}

// Used returns the number of bytes currently allocated from the zone.
func (a *Allocator) Used(zone Zone) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.used[zone]
}

// Budget returns the total capacity of the zone, in bytes.
func (a *Allocator) Budget(zone Zone) int {
	return a.budget[zone]
}

// AllocObject carves one zeroed object of type T out of the given zone,
// charging the zone for the object's size. The object itself lives on the
// Go heap; only the accounting goes through the zone.
func AllocObject[T any](a *Allocator, zone Zone, caps Caps) *T {
	var prototype T
	a.AllocZeroed(zone, caps, int(unsafe.Sizeof(prototype)))

	return new(T)
}
