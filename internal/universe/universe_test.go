package universe

import (
	"math"
	"math/rand"
	"testing"
)

func TestAdd_SaturatesAtCapacity(t *testing.T) {
	u := New(3)
	for i := 0; i < 3; i++ {
		if !u.Add(Particle{Mass: 1, Charge: float64(i), X: float64(i)}) {
			t.Fatalf("add %d rejected below capacity", i)
		}
	}

	before := u.State()
	if u.Add(Particle{Mass: 9, Charge: 9}) {
		t.Error("expected add at capacity to be rejected")
	}
	if u.Len() != 3 {
		t.Errorf("expected len 3, got %d", u.Len())
	}
	if d := before.MaxAbsDiff(u.State()); d != 0 {
		t.Errorf("existing data changed by rejected add: diff %g", d)
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	if got := New(0).Cap(); got != DefaultCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultCapacity, got)
	}
}

func TestErase_Compacts(t *testing.T) {
	u := New(10)
	for i := 0; i < 5; i++ {
		u.Add(Particle{Mass: 1, Charge: float64(i), X: float64(i)})
	}

	if !u.Erase(1) {
		t.Fatal("erase of valid index failed")
	}
	if u.Len() != 4 {
		t.Fatalf("expected len 4, got %d", u.Len())
	}
	want := []float64{0, 2, 3, 4}
	for i, w := range want {
		if u.Charge[i] != w || u.Sx[i] != w {
			t.Errorf("slot %d: expected %v, got charge %v x %v", i, w, u.Charge[i], u.Sx[i])
		}
	}
	if u.Charge[4] != 0 {
		t.Errorf("vacated slot not cleared: %v", u.Charge[4])
	}
}

func TestInvalidIndex_NoOp(t *testing.T) {
	u := New(4)
	u.Add(Particle{Mass: 1})

	if u.Erase(-1) || u.Erase(1) {
		t.Error("erase of invalid index should report false")
	}
	if _, ok := u.Particle(5); ok {
		t.Error("particle lookup of invalid index should fail")
	}
	if u.Set(2, Particle{}) {
		t.Error("set of invalid index should report false")
	}
	if u.Len() != 1 {
		t.Errorf("expected len 1, got %d", u.Len())
	}
}

func TestRecenter(t *testing.T) {
	u := New(0)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		AddRandom(u, rng)
	}

	u.Recenter()
	cx, cy, ok := u.CenterOfMass()
	if !ok {
		t.Fatal("expected nonzero total mass")
	}
	px, py := u.Momentum()
	for name, v := range map[string]float64{"cx": cx, "cy": cy, "px": px, "py": py} {
		if math.Abs(v) > 1e-12 {
			t.Errorf("%s = %g after recenter", name, v)
		}
	}

	once := u.State()
	u.Recenter()
	if d := once.MaxAbsDiff(u.State()); d > 1e-12 {
		t.Errorf("recenter not idempotent: diff %g", d)
	}
}

func TestRecenter_ZeroMass(t *testing.T) {
	u := New(4)
	u.Add(Particle{Mass: 1, X: 1, Vx: 1})
	u.Add(Particle{Mass: -1, X: 3, Vx: 2})

	before := u.State()
	u.Recenter()
	if d := before.MaxAbsDiff(u.State()); d != 0 {
		t.Errorf("recenter with zero total mass changed state: diff %g", d)
	}
}

func TestFlip(t *testing.T) {
	tests := []struct {
		attr  Attr
		check func(p Particle) bool
	}{
		{AttrVelocity, func(p Particle) bool { return p.Vx == -2 && p.Vy == -3 }},
		{AttrCharge, func(p Particle) bool { return p.Charge == -1 }},
		{AttrMass, func(p Particle) bool { return p.Mass == -4 }},
	}

	for _, tt := range tests {
		u := New(1)
		u.Add(Particle{Mass: 4, Charge: 1, Vx: 2, Vy: 3})
		if !u.Flip(0, tt.attr) {
			t.Errorf("%s: flip failed", tt.attr)
			continue
		}
		p, _ := u.Particle(0)
		if !tt.check(p) {
			t.Errorf("%s: unexpected particle %+v", tt.attr, p)
		}
	}
}

func TestReverseVelocities(t *testing.T) {
	u := New(2)
	u.Add(Particle{Mass: 1, Vx: 1, Vy: -2})
	u.ReverseVelocities()
	if u.Vx[0] != -1 || u.Vy[0] != 2 {
		t.Errorf("expected (-1, 2), got (%v, %v)", u.Vx[0], u.Vy[0])
	}
}

func TestCopyFrom_Truncates(t *testing.T) {
	src := New(5)
	for i := 0; i < 5; i++ {
		src.Add(Particle{Mass: 1, X: float64(i)})
	}
	dst := New(3)
	dst.CopyFrom(src)
	if dst.Len() != 3 {
		t.Errorf("expected len 3, got %d", dst.Len())
	}

	c := src.Clone()
	c.Sx[0] = 42
	if src.Sx[0] == 42 {
		t.Error("clone shares storage with source")
	}
}

func TestPotentialEnergy(t *testing.T) {
	u := New(3)
	u.Add(Particle{Mass: 1, Charge: 1, X: 0})
	u.Add(Particle{Mass: 1, Charge: -1, X: 2})
	u.Add(Particle{Mass: 1, Charge: 1, X: 2})

	// The coincident pair at x=2 is skipped: 1·(-1)/2 + 1·1/2.
	if pe := u.PotentialEnergy(); pe != 0 {
		t.Errorf("expected 0, got %v", pe)
	}
}

func TestLattice(t *testing.T) {
	u := New(0)
	Lattice(u, 31)
	if u.Len() != 961 {
		t.Fatalf("expected 961 particles, got %d", u.Len())
	}
	if u.Charge[0] != -0.05 || u.Charge[1] != 0.05 {
		t.Errorf("unexpected charges %v %v", u.Charge[0], u.Charge[1])
	}
	if got, want := u.Sx[31], 2.0/33; math.Abs(got-want) > 1e-15 {
		t.Errorf("expected x %v, got %v", want, got)
	}

	small := New(10)
	Lattice(small, 31)
	if small.Len() != 10 {
		t.Errorf("expected lattice truncated at capacity, got %d", small.Len())
	}
}

func TestCloud(t *testing.T) {
	a, b := New(0), New(0)
	Cloud(a, 100, 3)
	Cloud(b, 100, 3)
	if a.Len() != 100 {
		t.Fatalf("expected 100 particles, got %d", a.Len())
	}
	if d := a.State().MaxAbsDiff(b.State()); d != 0 {
		t.Errorf("same seed produced different clouds: diff %g", d)
	}
	for i := 0; i < a.Len(); i++ {
		if math.Abs(a.Charge[i]) != 1 {
			t.Fatalf("particle %d: charge %v", i, a.Charge[i])
		}
	}
}
