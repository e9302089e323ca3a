package hsw

import (
	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/regs"
)

// Shim register block of the audio DSP: the glue registers that control
// clocking and power around the core.
const (
	// ShimBase is the physical base address of the shim block.
	ShimBase regs.Addr = 0xfb000

	// ShimCSR is the core control and status register.
	ShimCSR regs.Addr = ShimBase + 0x00
)

// DCS is the divider-select field of CSR. Writing a step's encoding here
// requests the corresponding core frequency from the clock control unit.
const (
	csrDCSShift = 4
	csrDCSMask  = 0x7 << csrDCSShift
)

func csrDCS(enc uint32) uint32 {
	return enc << csrDCSShift
}

// cpuFreq lists the operating points of the core clock. The order is
// load-bearing and must not be changed: selection takes the first row at or
// above the requested frequency, and the 320 MHz and 160 MHz frequencies
// each appear twice with different fabric rates and divider encodings.
var cpuFreq = clock.Table{
	{Freq: 32 * clock.MHz, TicksPerUsec: 80, Fabric: 32 * clock.MHz, Enc: 0x6},
	{Freq: 80 * clock.MHz, TicksPerUsec: 80, Fabric: 80 * clock.MHz, Enc: 0x2},
	{Freq: 160 * clock.MHz, TicksPerUsec: 160, Fabric: 80 * clock.MHz, Enc: 0x1},
	{Freq: 320 * clock.MHz, TicksPerUsec: 320, Fabric: 160 * clock.MHz, Enc: 0x4}, // default
	{Freq: 320 * clock.MHz, TicksPerUsec: 320, Fabric: 80 * clock.MHz, Enc: 0x0},
	{Freq: 160 * clock.MHz, TicksPerUsec: 160, Fabric: 160 * clock.MHz, Enc: 0x5},
}

// sspFreq lists the operating points of the serial clock. The SSP clock is
// fixed on this platform.
var sspFreq = clock.Table{
	{Freq: 24 * clock.MHz, TicksPerUsec: 24}, // default
}

const (
	cpuDefaultIdx = 3
	sspDefaultIdx = 0
)

// CPUTable returns the core clock's frequency table. Callers must treat the
// returned table as read-only.
func CPUTable() clock.Table {
	return cpuFreq
}

// SSPTable returns the serial clock's frequency table. Callers must treat
// the returned table as read-only.
func SSPTable() clock.Table {
	return sspFreq
}
