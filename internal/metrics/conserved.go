package metrics

import (
	"math"

	"github.com/san-kum/orbisim/internal/universe"
)

// MomentumDrift is the largest distance of the total momentum vector from its
// first observed value.
type MomentumDrift struct {
	name     string
	px0, py0 float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(u *universe.Universe, t float64) {
	px, py := u.Momentum()
	if m.samples == 0 {
		m.px0, m.py0 = px, py
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(px-m.px0, py-m.py0))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px0, m.py0 = 0, 0
	m.maxDrift = 0
	m.samples = 0
}

// ChargeDrift is the largest absolute change of the total charge.
type ChargeDrift struct {
	name     string
	q0       float64
	maxDrift float64
	samples  int
}

func NewChargeDrift() *ChargeDrift {
	return &ChargeDrift{name: "charge_drift"}
}

func (c *ChargeDrift) Name() string { return c.name }

func (c *ChargeDrift) Observe(u *universe.Universe, t float64) {
	q := u.TotalCharge()
	if c.samples == 0 {
		c.q0 = q
	}
	c.samples++
	c.maxDrift = math.Max(c.maxDrift, math.Abs(q-c.q0))
}

func (c *ChargeDrift) Value() float64 { return c.maxDrift }

func (c *ChargeDrift) Reset() {
	c.q0 = 0
	c.maxDrift = 0
	c.samples = 0
}
