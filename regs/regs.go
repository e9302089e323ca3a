// Package regs provides read-modify-write access to the memory-mapped
// control registers of the modeled platform.
package regs

import "sync"

// Addr is the physical address of a 32-bit register.
type Addr uint32

// RegisterIO accesses memory-mapped registers.
type RegisterIO interface {
	// Read32 returns the current value of the register at addr.
	Read32(addr Addr) uint32

	// Write32 replaces the full value of the register at addr.
	Write32(addr Addr, value uint32)

	// UpdateBits performs a read-modify-write on the register at addr,
	// replacing only the bits selected by mask.
	UpdateBits(addr Addr, mask, value uint32)
}

// File is a sparse in-memory register file. Registers read as zero until
// written. It is safe for concurrent use.
type File struct {
	mu   sync.Mutex
	regs map[Addr]uint32
}

// NewFile creates an empty register file.
func NewFile() *File {
	return &File{
		regs: make(map[Addr]uint32),
	}
}

// Read32 returns the current value of the register at addr.
func (f *File) Read32(addr Addr) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.regs[addr]
}

// Write32 replaces the full value of the register at addr.
func (f *File) Write32(addr Addr, value uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.regs[addr] = value
}

// UpdateBits replaces the bits of the register at addr selected by mask,
// leaving the remaining bits untouched.
func (f *File) UpdateBits(addr Addr, mask, value uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.regs[addr] = (f.regs[addr] &^ mask) | (value & mask)
}
