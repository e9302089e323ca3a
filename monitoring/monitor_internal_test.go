package monitoring

import (
	"io"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/mem"
)

type stubClockState struct{}

func (stubClockState) Freq(d clock.Domain) clock.Hertz {
	if d == clock.DomainCPU {
		return 320 * clock.MHz
	}
	return 24 * clock.MHz
}

func (stubClockState) UsToTicks(d clock.Domain, us uint64) uint64 {
	if d == clock.DomainCPU {
		return us * 320
	}
	return us * 24
}

var _ = Describe("Monitor", func() {
	var monitor *Monitor

	BeforeEach(func() {
		monitor = NewMonitor()
		monitor.RegisterClockState(stubClockState{})
		monitor.RegisterAllocator(mem.NewAllocator())
	})

	get := func(path string) (int, string) {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		monitor.router().ServeHTTP(rec, req)

		body, _ := io.ReadAll(rec.Result().Body)
		return rec.Result().StatusCode, string(body)
	}

	It("should list both domains", func() {
		status, body := get("/api/domains")

		Expect(status).To(Equal(200))
		Expect(body).To(Equal(
			`[{"domain":"cpu","freq":320000000,"ticks_per_usec":320},` +
				`{"domain":"ssp","freq":24000000,"ticks_per_usec":24}]`))
	})

	It("should serve a single domain", func() {
		status, body := get("/api/domain/ssp")

		Expect(status).To(Equal(200))
		Expect(body).To(Equal(
			`{"domain":"ssp","freq":24000000,"ticks_per_usec":24}`))
	})

	It("should 404 unknown domains", func() {
		status, _ := get("/api/domain/nope")

		Expect(status).To(Equal(404))
	})

	It("should report zone accounting", func() {
		status, body := get("/api/mem")

		Expect(status).To(Equal(200))
		Expect(body).To(ContainSubstring(`"zone":"sys"`))
		Expect(body).To(ContainSubstring(`"zone":"runtime"`))
	})

	It("should 404 zone accounting without an allocator", func() {
		monitor = NewMonitor()
		monitor.RegisterClockState(stubClockState{})

		status, _ := get("/api/mem")

		Expect(status).To(Equal(404))
	})
})
