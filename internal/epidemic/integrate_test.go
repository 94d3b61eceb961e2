package epidemic_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/control"
	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/sim"
)

var _ = Describe("SampleSchedule", func() {
	It("covers [0, tmax] with 4*(tmax+1) points for integral horizons", func() {
		times, err := epidemic.SampleSchedule(20)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(HaveLen(84))
		Expect(times[0]).To(Equal(0.0))
		Expect(times[83]).To(Equal(20.0))
	})

	It("spaces points evenly", func() {
		times, err := epidemic.SampleSchedule(20)
		Expect(err).NotTo(HaveOccurred())

		spacing := times[1] - times[0]
		for i := 1; i < len(times); i++ {
			Expect(times[i] - times[i-1]).To(BeNumerically("~", spacing, 1e-12))
		}
	})

	It("rounds the count for fractional horizons", func() {
		times, err := epidemic.SampleSchedule(2.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(HaveLen(14))
		Expect(times[len(times)-1]).To(Equal(2.5))
	})

	It("rejects invalid horizons", func() {
		for _, tmax := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := epidemic.SampleSchedule(tmax)
			Expect(err).To(HaveOccurred())
		}
	})
})

var _ = Describe("Integrate", func() {
	init := epidemic.Compartments{S: 0.99, I: 0.01, R: 0}

	Context("with beta=1.2, gamma=1.0 over 20 time units", func() {
		var tr *epidemic.Trajectory

		BeforeEach(func() {
			var err error
			tr, err = epidemic.Integrate(context.Background(), init, 20, 1.2, 1.0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reproduces the textbook endpoint", func() {
			last := tr.Last().State
			Expect(last.S).To(BeNumerically("~", 0.6735, 1e-3))
			Expect(last.I).To(BeNumerically("~", 0.00548, 1e-3))
			Expect(last.R).To(BeNumerically("~", 0.3211, 1e-3))
		})

		It("returns one sample per schedule point", func() {
			Expect(tr.Len()).To(Equal(84))
		})

		It("reports the initial state exactly at t=0", func() {
			first := tr.First()
			Expect(first.T).To(Equal(0.0))
			Expect(first.State.S).To(Equal(0.99))
			Expect(first.State.I).To(Equal(0.01))
			Expect(first.State.R).To(Equal(0.0))
		})

		It("conserves the population at every sample", func() {
			for i := 0; i < tr.Len(); i++ {
				Expect(tr.At(i).State.Total()).To(BeNumerically("~", 1.0, 1e-6))
			}
		})

		It("keeps S non-increasing and R non-decreasing", func() {
			s := tr.Susceptible()
			r := tr.Recovered()
			for i := 1; i < len(s); i++ {
				Expect(s[i]).To(BeNumerically("<=", s[i-1]+1e-9))
				Expect(r[i]).To(BeNumerically(">=", r[i-1]-1e-9))
			}
		})

		It("is deterministic", func() {
			again, err := epidemic.Integrate(context.Background(), init, 20, 1.2, 1.0)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < tr.Len(); i++ {
				Expect(again.At(i).State).To(Equal(tr.At(i).State))
			}
		})
	})

	Context("with beta=1.0, gamma=0.1 over 20 time units", func() {
		It("burns through nearly the whole susceptible pool", func() {
			tr, err := epidemic.Integrate(context.Background(), init, 20, 1.0, 0.1)
			Expect(err).NotTo(HaveOccurred())

			last := tr.Last().State
			Expect(last.S).To(BeNumerically("~", 0.00046, 1e-3))
			Expect(last.I).To(BeNumerically("~", 0.2318, 1e-3))
			Expect(last.R).To(BeNumerically("~", 0.7677, 1e-3))
		})
	})

	Context("below the epidemic threshold", func() {
		It("lets the infection die out", func() {
			tr, err := epidemic.Integrate(context.Background(), init, 100, 0.5, 1.0)
			Expect(err).NotTo(HaveOccurred())

			last := tr.Last().State
			Expect(last.I).To(BeNumerically("<", init.I))
			Expect(last.S).To(BeNumerically(">", 0.9))
		})
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tr, err := epidemic.Integrate(ctx, init, 20, 1.2, 1.0)
		Expect(err).To(HaveOccurred())
		Expect(tr).To(BeNil())
	})
})

var _ = Describe("IntegrateControlled", func() {
	init := epidemic.Compartments{S: 0.99, I: 0.01, R: 0}

	It("flattens the peak under a lockdown policy", func() {
		free, err := epidemic.Integrate(context.Background(), init, 40, 1.0, 0.25)
		Expect(err).NotTo(HaveOccurred())

		locked, err := epidemic.IntegrateControlled(context.Background(), init, 40, 1.0, 0.25,
			control.NewLockdown(0.05, 0.01, 0.6, 1))
		Expect(err).NotTo(HaveOccurred())

		Expect(peakOf(locked)).To(BeNumerically("<", peakOf(free)))
	})
})

var _ = Describe("Compartments", func() {
	It("round-trips through a state vector", func() {
		c := epidemic.Compartments{S: 0.7, I: 0.2, R: 0.1}
		back, err := epidemic.FromVec(c.Vec())
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(Equal(c))
	})

	It("rejects vectors of the wrong length", func() {
		_, err := epidemic.FromVec(sim.State{1, 0})
		Expect(err).To(HaveOccurred())
	})
})

func peakOf(tr *epidemic.Trajectory) float64 {
	max := 0.0
	for _, v := range tr.Infected() {
		if v > max {
			max = v
		}
	}
	return max
}
