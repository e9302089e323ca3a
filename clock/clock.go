// Package clock defines the shared types of the DSP clock-frequency
// subsystem: the clock domains, frequency units, frequency tables, and the
// hook positions and payload of frequency-change notifications.
package clock

import "github.com/openavs/dspfw/hooking"

// Domain identifies one of the independently clocked subsystems of the DSP.
// There are exactly two; no other value is valid.
type Domain int

const (
	// DomainCPU is the core-processing clock.
	DomainCPU Domain = iota

	// DomainSSP is the serial/peripheral clock.
	DomainSSP

	// NumDomains is the number of clock domains on the platform.
	NumDomains
)

// Valid reports whether d is one of the defined clock domains.
func (d Domain) Valid() bool {
	return d >= DomainCPU && d < NumDomains
}

func (d Domain) String() string {
	switch d {
	case DomainCPU:
		return "cpu"
	case DomainSSP:
		return "ssp"
	}
	return "unknown"
}

// Hertz is a clock frequency.
type Hertz uint32

// Frequency units.
const (
	Hz  Hertz = 1
	KHz Hertz = 1e3
	MHz Hertz = 1e6
)

// FreqChange is the payload of a frequency-change notification. The same
// payload is delivered at both hook positions of a transition.
type FreqChange struct {
	OldFreq         Hertz
	OldTicksPerUsec uint32
	NewFreq         Hertz
}

// Hook positions of a core clock transition. Both fire synchronously inside
// the domain's critical section with interrupts masked: Pre strictly before
// the divider register write, Post strictly after. Hooks at these positions
// must be bounded, must not block, and must not set the frequency of the
// same domain.
var (
	HookPosCPUFreqPre  = &hooking.HookPos{Name: "CPUFreqPre"}
	HookPosCPUFreqPost = &hooking.HookPos{Name: "CPUFreqPost"}
)
