package clock

// A FreqStep is one supported operating point of a clock domain: a target
// frequency together with its tick rate, the fabric rate it pairs with, and
// the encoding the clock-control register takes for it.
type FreqStep struct {
	Freq         Hertz
	TicksPerUsec uint32
	Fabric       Hertz
	Enc          uint32
}

// A Table is the ordered list of operating points a domain supports. The
// order is part of the contract: Select takes the first matching row, and
// tables may carry rows with equal frequencies but different fabric rates
// and encodings. Tables are fixed at build time and never modified.
type Table []FreqStep

// Select returns the index of the first step whose frequency is at or above
// hz. When every step is below hz it returns the last index, whatever
// frequency that row carries.
//
// Select does not validate the table; an empty table is a construction bug.
func (t Table) Select(hz Hertz) int {
	for i, step := range t {
		if hz <= step.Freq {
			return i
		}
	}

	return len(t) - 1
}
