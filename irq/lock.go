// Package irq models the interrupt-safe locking primitive of the DSP
// firmware. On the real part, taking one of these locks spins with local
// interrupts masked; here the mutual exclusion is real and the masking is
// tracked so that code under test can assert it holds.
package irq

import (
	"sync"
	"sync/atomic"
)

// Flags is the interrupt state a caller held before acquiring a lock. It is
// returned by Acquire and must be passed back to the matching Release.
type Flags uint32

// irqEnabled is the only caller state the model distinguishes.
const irqEnabled Flags = 1

// A Lock is a spinlock that masks interrupts while held. The zero value is
// ready to use.
//
// The lock is not reentrant: acquiring it twice from the same execution
// context deadlocks, which mirrors the hardware behavior.
type Lock struct {
	mu     sync.Mutex
	masked atomic.Bool
}

// Acquire takes the lock and masks interrupts, returning the saved
// interrupt state.
func (l *Lock) Acquire() Flags {
	l.mu.Lock()
	l.masked.Store(true)

	return irqEnabled
}

// Release restores the saved interrupt state and releases the lock.
func (l *Lock) Release(flags Flags) {
	l.masked.Store(false)
	l.mu.Unlock()
}

// Masked reports whether the lock currently masks interrupts. It exists for
// observers and tests; the value is advisory and may be stale by the time
// the caller looks at it.
func (l *Lock) Masked() bool {
	return l.masked.Load()
}
