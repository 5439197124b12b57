package pin_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pinsim/internal/clock"
	"github.com/san-kum/pinsim/internal/pin"
)

var _ = Describe("Simulator", func() {
	var (
		clk      *clock.Manual
		emitted  []pin.Level
		sim      *pin.Simulator
		interval = pin.DefaultInterval
	)

	record := func(l pin.Level) { emitted = append(emitted, l) }

	newSim := func(initial pin.Level) *pin.Simulator {
		return pin.New(record, pin.WithClock(clk), pin.WithInitialLevel(initial))
	}

	BeforeEach(func() {
		clk = clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		emitted = nil
		sim = newSim(pin.High)
	})

	AfterEach(func() {
		sim.Close()
	})

	Describe("initial state", func() {
		It("starts stopped and high with no timer", func() {
			Expect(sim.State()).To(Equal(pin.Stopped))
			Expect(sim.Level()).To(Equal(pin.High))
			Expect(sim.Interval()).To(Equal(500 * time.Millisecond))
			Expect(clk.Pending()).To(BeZero())
			Expect(emitted).To(BeEmpty())
		})

		It("ignores non-positive intervals", func() {
			s := pin.New(nil, pin.WithInterval(0))
			Expect(s.Interval()).To(Equal(pin.DefaultInterval))
		})
	})

	Describe("Play", func() {
		It("toggles once per interval", func() {
			sim.Play()
			Expect(sim.State()).To(Equal(pin.Running))
			Expect(clk.Pending()).To(Equal(1))

			clk.Advance(interval)
			Expect(emitted).To(Equal([]pin.Level{pin.Low}))

			clk.Advance(interval)
			Expect(emitted).To(Equal([]pin.Level{pin.Low, pin.High}))
			Expect(sim.Ticks()).To(BeEquivalentTo(2))
		})

		It("keeps a single timer across repeated play", func() {
			for i := 0; i < 5; i++ {
				sim.Play()
			}
			Expect(clk.Pending()).To(Equal(1))

			clk.Advance(interval)
			Expect(emitted).To(HaveLen(1))
			clk.Advance(3 * interval)
			Expect(emitted).To(HaveLen(4))
			Expect(clk.Pending()).To(Equal(1))
		})

		It("emits nothing before the first interval elapses", func() {
			sim.Play()
			clk.Advance(interval - time.Millisecond)
			Expect(emitted).To(BeEmpty())
		})
	})

	Describe("Pause", func() {
		It("cancels the timer so no further ticks fire", func() {
			sim.Play()
			clk.Advance(interval)
			sim.Pause()

			Expect(sim.State()).To(Equal(pin.Stopped))
			Expect(clk.Pending()).To(BeZero())

			clk.Advance(2 * interval)
			Expect(emitted).To(HaveLen(1))
		})

		It("is a no-op when already stopped", func() {
			sim.Pause()
			Expect(sim.State()).To(Equal(pin.Stopped))
			Expect(sim.Level()).To(Equal(pin.High))
			Expect(emitted).To(BeEmpty())
		})

		It("drops a tick that was already dispatched", func() {
			held := &heldClock{}
			s := pin.New(record, pin.WithClock(held))
			defer s.Close()

			s.Play()
			s.Pause()
			held.fire(0)
			Expect(emitted).To(BeEmpty())

			s.Play()
			held.fire(0)
			Expect(emitted).To(BeEmpty())
			held.fire(1)
			Expect(emitted).To(Equal([]pin.Level{pin.Low}))
		})
	})

	Describe("Step", func() {
		It("flips the level exactly once per call while stopped", func() {
			sim.Step()
			Expect(sim.Level()).To(Equal(pin.Low))
			Expect(emitted).To(Equal([]pin.Level{pin.Low}))

			sim.Step()
			Expect(sim.Level()).To(Equal(pin.High))
			Expect(emitted).To(Equal([]pin.Level{pin.Low, pin.High}))
		})

		It("is ignored while running", func() {
			sim.Play()
			sim.Step()
			Expect(sim.Level()).To(Equal(pin.High))
			Expect(emitted).To(BeEmpty())
		})

		It("does not start a timer", func() {
			sim.Step()
			Expect(clk.Pending()).To(BeZero())
			Expect(sim.State()).To(Equal(pin.Stopped))
		})
	})

	Describe("Reset", func() {
		DescribeTable("always ends stopped and low",
			func(prepare func(*pin.Simulator)) {
				prepare(sim)
				emitted = nil

				sim.Reset()

				Expect(sim.State()).To(Equal(pin.Stopped))
				Expect(sim.Level()).To(Equal(pin.Low))
				Expect(emitted).To(Equal([]pin.Level{pin.Low}))
				Expect(clk.Pending()).To(BeZero())
			},
			Entry("from stopped high", func(*pin.Simulator) {}),
			Entry("from stopped low", func(s *pin.Simulator) { s.Step() }),
			Entry("while running", func(s *pin.Simulator) { s.Play() }),
			Entry("after ticks", func(s *pin.Simulator) {
				s.Play()
				clk.Advance(3 * interval)
			}),
		)

		It("stops later ticks", func() {
			sim.Play()
			sim.Reset()
			clk.Advance(4 * interval)
			Expect(emitted).To(Equal([]pin.Level{pin.Low}))
		})
	})

	Describe("Close", func() {
		It("cancels the timer and ignores later commands", func() {
			sim.Play()
			sim.Close()
			Expect(clk.Pending()).To(BeZero())

			sim.Play()
			sim.Step()
			sim.Reset()
			clk.Advance(2 * interval)

			Expect(emitted).To(BeEmpty())
			Expect(sim.State()).To(Equal(pin.Stopped))
		})
	})

	Describe("scenarios", func() {
		It("plays from low, pauses and resets", func() {
			sim = newSim(pin.Low)

			sim.Play()
			clk.Advance(interval)
			Expect(emitted).To(Equal([]pin.Level{pin.High}))
			clk.Advance(interval)
			Expect(emitted).To(Equal([]pin.Level{pin.High, pin.Low}))

			sim.Pause()
			clk.Advance(2 * interval)
			Expect(emitted).To(HaveLen(2))

			sim.Reset()
			Expect(sim.Level()).To(Equal(pin.Low))
			Expect(sim.State()).To(Equal(pin.Stopped))
		})

		It("never holds more than one timer", func() {
			cmds := []func(){sim.Play, sim.Pause, sim.Play, sim.Play, sim.Step, sim.Reset, sim.Play, sim.Step}
			for _, cmd := range cmds {
				cmd()
				Expect(clk.Pending()).To(BeNumerically("<=", 1))
				clk.Advance(interval / 2)
			}
		})
	})

	Describe("Multi", func() {
		It("fans out in order and skips nil", func() {
			var order []string
			fn := pin.Multi(
				func(pin.Level) { order = append(order, "a") },
				nil,
				func(pin.Level) { order = append(order, "b") },
			)
			fn(pin.High)
			Expect(order).To(Equal([]string{"a", "b"}))
		})
	})
})

// heldClock never fires on its own and its timers cannot be stopped, which
// models a tick that was dispatched before the cancel landed.
type heldClock struct {
	fns []func()
}

func (c *heldClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	c.fns = append(c.fns, f)
	return heldTimer{}
}

func (c *heldClock) Now() time.Time { return time.Time{} }

func (c *heldClock) fire(i int) { c.fns[i]() }

type heldTimer struct{}

func (heldTimer) Stop() bool { return false }

var _ = Describe("Level", func() {
	It("renders as a pin label", func() {
		Expect(pin.High.String()).To(Equal("1"))
		Expect(pin.Low.String()).To(Equal("0"))
		Expect(pin.High.Toggle()).To(Equal(pin.Low))
	})

	DescribeTable("ParseLevel",
		func(in string, want pin.Level) {
			got, err := pin.ParseLevel(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("high", "high", pin.High),
		Entry("HIGH", " HIGH ", pin.High),
		Entry("1", "1", pin.High),
		Entry("on", "on", pin.High),
		Entry("low", "low", pin.Low),
		Entry("0", "0", pin.Low),
		Entry("off", "Off", pin.Low),
	)

	It("rejects unknown levels", func() {
		_, err := pin.ParseLevel("maybe")
		Expect(err).To(MatchError(pin.ErrInvalidLevel))
	})
})
