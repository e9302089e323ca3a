package regs

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("File", func() {
	var file *File

	BeforeEach(func() {
		file = NewFile()
	})

	It("should read unwritten registers as zero", func() {
		Expect(file.Read32(0x1000)).To(Equal(uint32(0)))
	})

	It("should read back written values", func() {
		file.Write32(0x1000, 0xdeadbeef)

		Expect(file.Read32(0x1000)).To(Equal(uint32(0xdeadbeef)))
	})

	It("should keep registers independent", func() {
		file.Write32(0x1000, 1)
		file.Write32(0x1004, 2)

		Expect(file.Read32(0x1000)).To(Equal(uint32(1)))
		Expect(file.Read32(0x1004)).To(Equal(uint32(2)))
	})

	It("should update only the masked bits", func() {
		file.Write32(0x2000, 0xffffffff)

		file.UpdateBits(0x2000, 0x000000f0, 0x00000030)

		Expect(file.Read32(0x2000)).To(Equal(uint32(0xffffff3f)))
	})

	It("should ignore value bits outside the mask", func() {
		file.UpdateBits(0x2000, 0x000000f0, 0xffffffff)

		Expect(file.Read32(0x2000)).To(Equal(uint32(0x000000f0)))
	})
})
