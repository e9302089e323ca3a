package irq

import (
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lock", func() {
	It("should mask interrupts while held", func() {
		lock := &Lock{}

		Expect(lock.Masked()).To(BeFalse())

		flags := lock.Acquire()
		Expect(lock.Masked()).To(BeTrue())

		lock.Release(flags)
		Expect(lock.Masked()).To(BeFalse())
	})

	It("should provide mutual exclusion", func() {
		lock := &Lock{}

		var inCritical atomic.Int32
		var overlapped atomic.Bool
		var wg sync.WaitGroup

		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				flags := lock.Acquire()
				if inCritical.Add(1) != 1 {
					overlapped.Store(true)
				}
				inCritical.Add(-1)
				lock.Release(flags)
			}()
		}

		wg.Wait()

		Expect(overlapped.Load()).To(BeFalse())
	})

	It("should not couple independent locks", func() {
		lockA := &Lock{}
		lockB := &Lock{}

		flagsA := lockA.Acquire()

		done := make(chan struct{})
		go func() {
			flagsB := lockB.Acquire()
			lockB.Release(flagsB)
			close(done)
		}()

		Eventually(done).Should(BeClosed())

		lockA.Release(flagsA)
	})
})
