package integrators_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbisim/internal/integrators"
	"github.com/san-kum/orbisim/internal/universe"
)

func dipole() *universe.Universe {
	u := universe.New(0)
	universe.Dipole(u)
	return u
}

var _ = Describe("Greenspan", func() {
	var g *integrators.Greenspan

	BeforeEach(func() {
		g = integrators.NewGreenspan()
	})

	It("leaves an empty universe alone", func() {
		u := universe.New(4)
		report := g.Advance(u, 0.01)
		Expect(report.Converged).To(BeTrue())
		Expect(u.Len()).To(Equal(0))
	})

	It("moves a lone particle in a straight line", func() {
		u := universe.New(1)
		u.Add(universe.Particle{Mass: 1, Charge: 1, X: 0, Y: 0, Vx: 1, Vy: 2})
		g.Advance(u, 0.5)
		Expect(u.Sx[0]).To(BeNumerically("~", 0.5, 1e-15))
		Expect(u.Sy[0]).To(BeNumerically("~", 1.0, 1e-15))
		Expect(u.Vx[0]).To(Equal(1.0))
	})

	It("makes like charges repel and opposite charges attract", func() {
		like := universe.New(2)
		like.Add(universe.Particle{Mass: 1, Charge: 1, X: 0})
		like.Add(universe.Particle{Mass: 1, Charge: 1, X: 1})
		g.Advance(like, 0.01)
		Expect(like.Vx[0]).To(BeNumerically("<", 0))
		Expect(like.Vx[1]).To(BeNumerically(">", 0))

		unlike := universe.New(2)
		unlike.Add(universe.Particle{Mass: 1, Charge: 1, X: 0})
		unlike.Add(universe.Particle{Mass: 1, Charge: -1, X: 1})
		g.Advance(unlike, 0.01)
		Expect(unlike.Vx[0]).To(BeNumerically(">", 0))
		Expect(unlike.Vx[1]).To(BeNumerically("<", 0))
	})

	It("is reversible over one step", func() {
		u := dipole()
		start := u.State()

		g.Advance(u, 0.005)
		u.ReverseVelocities()
		g.Advance(u, 0.005)
		u.ReverseVelocities()

		Expect(start.MaxAbsDiff(u.State())).To(BeNumerically("<", 1e-10))
	})

	It("conserves momentum, charge and energy over the dipole scenario", func() {
		u := dipole()
		px0, py0 := u.Momentum()
		q0 := u.TotalCharge()
		e0 := u.Energy()

		anomalies := 0
		for i := 0; i < 1000; i++ {
			if g.Advance(u, 0.005).Anomaly {
				anomalies++
			}
		}

		px, py := u.Momentum()
		Expect(u.Valid()).To(BeTrue())
		Expect(px).To(BeNumerically("~", px0, 1e-4))
		Expect(py).To(BeNumerically("~", py0, 1e-4))
		Expect(u.TotalCharge()).To(BeNumerically("~", q0, 1e-4))
		Expect(math.Abs(u.Energy()-e0) / math.Abs(e0)).To(BeNumerically("<", 1e-6))
		Expect(anomalies).To(Equal(0))
	})

	It("skips coincident pairs instead of producing NaN", func() {
		u := universe.New(3)
		u.Add(universe.Particle{Mass: 1, Charge: 1, X: 0.5, Y: 0.5})
		u.Add(universe.Particle{Mass: 1, Charge: -1, X: 0.5, Y: 0.5})
		u.Add(universe.Particle{Mass: 1, Charge: 1, X: 0.9, Y: 0.5})

		g.Advance(u, 0.01)
		Expect(u.Valid()).To(BeTrue())
	})

	It("holds zero-mass particles in place", func() {
		u := universe.New(2)
		u.Add(universe.Particle{Mass: 0, Charge: 1, X: 0})
		u.Add(universe.Particle{Mass: 1, Charge: 1, X: 1})

		g.Advance(u, 0.01)
		Expect(u.Valid()).To(BeTrue())
		Expect(u.Sx[0]).To(Equal(0.0))
		Expect(u.Vx[1]).To(BeNumerically(">", 0))
	})

	It("reports a growing residual as a recoverable anomaly", func() {
		var buf bytes.Buffer
		g.Logger = slog.New(slog.NewTextHandler(&buf, nil))

		u := universe.New(2)
		u.Add(universe.Particle{Mass: 1e-6, Charge: 1, X: 0, Vx: 0})
		u.Add(universe.Particle{Mass: 1e-6, Charge: -1, X: 1e-3, Vx: 0})

		report := g.Advance(u, 0.1)
		Expect(report.Iterations).To(Equal(integrators.DefaultMaxIterations))
		Expect(report.Converged).To(BeFalse())
		Expect(report.Anomaly).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("fixed-point residual stopped decreasing"))
		Expect(u.Len()).To(Equal(2))
	})

	It("agrees between serial and parallel force accumulation", func() {
		rng := rand.New(rand.NewSource(11))
		serial := universe.New(100)
		for i := 0; i < 100; i++ {
			universe.AddRandom(serial, rng)
		}
		parallel := serial.Clone()

		g.ParallelThreshold = 0
		g.Advance(serial, 1e-5)

		p := integrators.NewGreenspan()
		p.ParallelThreshold = 2
		p.Advance(parallel, 1e-5)

		Expect(serial.State().MaxAbsDiff(parallel.State())).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("reference steppers", func() {
	DescribeTable("conserve momentum on the dipole",
		func(name string) {
			s, err := integrators.New(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name()).To(Equal(name))

			u := dipole()
			px0, py0 := u.Momentum()
			for i := 0; i < 200; i++ {
				s.Advance(u, 0.005)
			}
			px, py := u.Momentum()
			Expect(u.Valid()).To(BeTrue())
			Expect(px).To(BeNumerically("~", px0, 1e-9))
			Expect(py).To(BeNumerically("~", py0, 1e-9))
		},
		Entry("leapfrog", "leapfrog"),
		Entry("symplectic euler", "euler"),
		Entry("greenspan", "greenspan"),
	)

	It("rejects unknown names", func() {
		_, err := integrators.New("rk4")
		Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
	})
})
