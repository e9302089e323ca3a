package clock

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	// Shaped like a real legacy table: not strictly ascending, with
	// duplicate frequencies carrying different encodings.
	table := Table{
		{Freq: 32 * MHz, TicksPerUsec: 80, Fabric: 32 * MHz, Enc: 0x6},
		{Freq: 80 * MHz, TicksPerUsec: 80, Fabric: 80 * MHz, Enc: 0x2},
		{Freq: 160 * MHz, TicksPerUsec: 160, Fabric: 80 * MHz, Enc: 0x1},
		{Freq: 320 * MHz, TicksPerUsec: 320, Fabric: 160 * MHz, Enc: 0x4},
		{Freq: 320 * MHz, TicksPerUsec: 320, Fabric: 80 * MHz, Enc: 0x0},
		{Freq: 160 * MHz, TicksPerUsec: 160, Fabric: 160 * MHz, Enc: 0x5},
	}

	It("should select an exact match", func() {
		Expect(table.Select(80 * MHz)).To(Equal(1))
	})

	It("should round a request up to the next step", func() {
		Expect(table.Select(100 * MHz)).To(Equal(2))
	})

	It("should select the smallest satisfying index", func() {
		Expect(table.Select(1 * Hz)).To(Equal(0))
	})

	It("should take the first of duplicated frequencies", func() {
		Expect(table.Select(320 * MHz)).To(Equal(3))
		Expect(table[table.Select(320*MHz)].Enc).To(Equal(uint32(0x4)))
	})

	It("should fall back to the last row when the request is too high", func() {
		idx := table.Select(400 * MHz)

		Expect(idx).To(Equal(len(table) - 1))
		// The fallback is the final row, not the fastest one.
		Expect(table[idx].Freq).To(Equal(160 * MHz))
	})

	It("should handle a single-row table", func() {
		single := Table{{Freq: 24 * MHz, TicksPerUsec: 24}}

		Expect(single.Select(1 * MHz)).To(Equal(0))
		Expect(single.Select(48 * MHz)).To(Equal(0))
	})
})

var _ = Describe("Domain", func() {
	It("should know its two members", func() {
		Expect(DomainCPU.Valid()).To(BeTrue())
		Expect(DomainSSP.Valid()).To(BeTrue())
	})

	It("should reject anything else", func() {
		Expect(Domain(-1).Valid()).To(BeFalse())
		Expect(Domain(2).Valid()).To(BeFalse())
	})

	It("should have names", func() {
		Expect(DomainCPU.String()).To(Equal("cpu"))
		Expect(DomainSSP.String()).To(Equal("ssp"))
		Expect(Domain(7).String()).To(Equal("unknown"))
	})
})
