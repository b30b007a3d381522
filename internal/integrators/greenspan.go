package integrators

import (
	"log/slog"
	"math"

	"github.com/san-kum/orbisim/internal/dynamo"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

const (
	DefaultMaxIterations     = 16
	DefaultAnomalyFloor      = 1e-9
	DefaultParallelThreshold = 64
)

// Greenspan is the time-symmetric conservative integrator. Each step solves
// the implicit midpoint-style equations by fixed-point iteration: positions
// advance with the average of current and next velocity, and the pair force
// is the discrete gradient of the 1/d potential between the current and the
// tentative next configuration.
type Greenspan struct {
	MaxIterations int
	// Tolerance ends the iteration early once the residual drops to it.
	Tolerance float64
	// AnomalyFloor is the residual below which a stall is not reported.
	AnomalyFloor      float64
	ParallelThreshold int
	Logger            *slog.Logger

	sx, sy []float64
	vx, vy []float64
	fx, fy []float64
}

func NewGreenspan() *Greenspan {
	return &Greenspan{
		MaxIterations:     DefaultMaxIterations,
		AnomalyFloor:      DefaultAnomalyFloor,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

func (g *Greenspan) Name() string { return "greenspan" }

func (g *Greenspan) ensureScratch(n int) {
	if len(g.sx) < n {
		g.sx = make([]float64, n)
		g.sy = make([]float64, n)
		g.vx = make([]float64, n)
		g.vy = make([]float64, n)
		g.fx = make([]float64, n)
		g.fy = make([]float64, n)
	}
}

// Advance moves every particle of u forward by dt. The store is written only
// after the last iteration.
func (g *Greenspan) Advance(u *universe.Universe, dt float64) sim.StepReport {
	n := u.Len()
	if n == 0 {
		return sim.StepReport{Converged: true}
	}
	g.ensureScratch(n)
	copy(g.sx, u.Sx[:n])
	copy(g.sy, u.Sy[:n])
	copy(g.vx, u.Vx[:n])
	copy(g.vy, u.Vy[:n])

	maxIter := g.MaxIterations
	if maxIter <= 0 || maxIter > DefaultMaxIterations {
		maxIter = DefaultMaxIterations
	}

	var report sim.StepReport
	prev := math.Inf(1)
	for k := 0; k < maxIter; k++ {
		ep := g.updatePositions(u, n, dt)
		g.computeForces(u, n)
		ev := g.updateVelocities(u, n, dt)
		residual := ep + ev

		report.Iterations = k + 1
		report.Residual = residual
		if k > 0 && stalled(prev, residual, g.AnomalyFloor) {
			report.Anomaly = true
		}
		if residual <= g.Tolerance {
			report.Converged = true
			break
		}
		prev = residual
	}

	copy(u.Sx[:n], g.sx[:n])
	copy(u.Sy[:n], g.sy[:n])
	copy(u.Vx[:n], g.vx[:n])
	copy(u.Vy[:n], g.vy[:n])

	if report.Anomaly {
		g.logger().Warn("fixed-point residual stopped decreasing",
			"particles", n,
			"iterations", report.Iterations,
			"residual", report.Residual,
			"err", dynamo.ErrNonConvergence)
	}
	return report
}

// stalled reports a residual that failed to drop below the previous one
// while the previous one was still above floor.
func stalled(prev, residual, floor float64) bool {
	return prev > floor && residual >= prev
}

func (g *Greenspan) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Greenspan) updatePositions(u *universe.Universe, n int, dt float64) float64 {
	h := 0.5 * dt
	errSum := 0.0
	for i := 0; i < n; i++ {
		sx := u.Sx[i] + h*(u.Vx[i]+g.vx[i])
		sy := u.Sy[i] + h*(u.Vy[i]+g.vy[i])
		dx, dy := sx-g.sx[i], sy-g.sy[i]
		errSum += dx*dx + dy*dy
		g.sx[i], g.sy[i] = sx, sy
	}
	return errSum
}

func (g *Greenspan) updateVelocities(u *universe.Universe, n int, dt float64) float64 {
	errSum := 0.0
	for i := 0; i < n; i++ {
		m := u.Mass[i]
		if m == 0 {
			continue
		}
		vx := u.Vx[i] + (dt/m)*g.fx[i]
		vy := u.Vy[i] + (dt/m)*g.fy[i]
		dx, dy := vx-g.vx[i], vy-g.vy[i]
		errSum += dx*dx + dy*dy
		g.vx[i], g.vy[i] = vx, vy
	}
	return errSum
}

func (g *Greenspan) computeForces(u *universe.Universe, n int) {
	if g.ParallelThreshold > 0 && n >= g.ParallelThreshold {
		dynamo.ParallelFor(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				g.forceRow(u, n, i)
			}
		})
		return
	}

	for i := 0; i < n; i++ {
		g.fx[i], g.fy[i] = 0, 0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fx, fy, ok := g.pairForce(u, i, j)
			if !ok {
				continue
			}
			g.fx[i] += fx
			g.fy[i] += fy
			g.fx[j] -= fx
			g.fy[j] -= fy
		}
	}
}

// forceRow sums the force on particle i alone, so rows can be computed
// concurrently without sharing output slots.
func (g *Greenspan) forceRow(u *universe.Universe, n, i int) {
	var fx, fy float64
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		px, py, ok := g.pairForce(u, i, j)
		if ok {
			fx += px
			fy += py
		}
	}
	g.fx[i], g.fy[i] = fx, fy
}

// pairForce returns the force on i due to j. Pairs that coincide at either
// end of the step contribute nothing.
func (g *Greenspan) pairForce(u *universe.Universe, i, j int) (fx, fy float64, ok bool) {
	d := math.Hypot(u.Sx[i]-u.Sx[j], u.Sy[i]-u.Sy[j])
	dn := math.Hypot(g.sx[i]-g.sx[j], g.sy[i]-g.sy[j])
	if d == 0 || dn == 0 {
		return 0, 0, false
	}
	f := -u.Charge[i] * u.Charge[j] / (dn * d)
	ux := ((g.sx[i] + u.Sx[i]) - (g.sx[j] + u.Sx[j])) / (d + dn)
	uy := ((g.sy[i] + u.Sy[i]) - (g.sy[j] + u.Sy[j])) / (d + dn)
	return -f * ux, -f * uy, true
}
