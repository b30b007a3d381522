package quadtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/orbisim/internal/universe"
)

func randomUniverse(n int, seed int64) *universe.Universe {
	u := universe.New(n)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		universe.AddRandom(u, rng)
	}
	return u
}

func TestBuild_Empty(t *testing.T) {
	tree := New(universe.New(4))
	if tree.Root() != None {
		t.Errorf("expected empty root, got %d", tree.Root())
	}
	if got := tree.Gather(nil, 0, 0, 1, DefaultTheta); len(got) != 0 {
		t.Errorf("expected no sources, got %d", len(got))
	}
}

func TestBuild_ChargeConservation(t *testing.T) {
	u := randomUniverse(200, 1)
	tree := New(u)

	var check func(i int32)
	check = func(i int32) {
		n := tree.Node(i)
		if n.Leaf() {
			return
		}
		sum := 0.0
		for _, c := range n.Child {
			if c != None {
				sum += tree.Node(c).Charge
				check(c)
			}
		}
		if math.Abs(sum-n.Charge) > 1e-9 {
			t.Errorf("node %d: charge %v, children sum %v", i, n.Charge, sum)
		}
	}
	check(tree.Root())

	if got, want := tree.Node(tree.Root()).Charge, u.TotalCharge(); math.Abs(got-want) > 1e-9 {
		t.Errorf("root charge %v, total %v", got, want)
	}
	if tree.Len() > 2*u.Len() {
		t.Errorf("arena holds %d nodes for %d particles", tree.Len(), u.Len())
	}
}

func TestBuild_Coincident(t *testing.T) {
	u := universe.New(3)
	for i := 0; i < 3; i++ {
		u.Add(universe.Particle{Mass: 1, Charge: 1, X: 0.5, Y: 0.5})
	}
	tree := New(u)

	if tree.Len() != 1 {
		t.Fatalf("expected one aggregated node, got %d", tree.Len())
	}
	root := tree.Node(tree.Root())
	if !root.Leaf() || root.Charge != 3 || root.X != 0.5 || root.Y != 0.5 {
		t.Errorf("unexpected aggregate %+v", root)
	}
}

func TestBuild_ZeroChargeCentroid(t *testing.T) {
	u := universe.New(2)
	u.Add(universe.Particle{Mass: 1, Charge: 1, X: 0, Y: 0})
	u.Add(universe.Particle{Mass: 1, Charge: -1, X: 1, Y: 2})
	root := New(u).Node(0)

	if root.X != 0.5 || root.Y != 1 {
		t.Errorf("expected box center (0.5, 1), got (%v, %v)", root.X, root.Y)
	}
	if root.R != 1 {
		t.Errorf("expected half-width 1, got %v", root.R)
	}
}

func TestBuild_Rebuild(t *testing.T) {
	tree := New(randomUniverse(100, 2))
	small := randomUniverse(5, 3)
	tree.Build(small)
	if tree.Len() > 10 {
		t.Errorf("stale nodes after rebuild: %d", tree.Len())
	}
}

func TestGather_FarFieldCollapses(t *testing.T) {
	u := randomUniverse(100, 4)
	tree := New(u)

	far := tree.Gather(nil, 1000, 1000, 0.01, DefaultTheta)
	if len(far) != 1 {
		t.Errorf("expected root summary only, got %d sources", len(far))
	}
	near := tree.Gather(nil, 0.75, 0.75, 0.01, DefaultTheta)
	if len(near) <= 1 {
		t.Errorf("expected refinement near the particles, got %d sources", len(near))
	}

	sum := 0.0
	for _, s := range near {
		sum += s.Charge
	}
	if math.Abs(sum-u.TotalCharge()) > 1e-9 {
		t.Errorf("gathered charge %v, total %v", sum, u.TotalCharge())
	}
}

func TestPotential_MatchesDirectSum(t *testing.T) {
	u := randomUniverse(50, 5)
	tree := New(u)

	x, y := 3.0, -2.0
	direct := 0.0
	for i := 0; i < u.Len(); i++ {
		direct += u.Charge[i] / math.Hypot(u.Sx[i]-x, u.Sy[i]-y)
	}
	exact := tree.Potential(x, y, 0, 1e-12)
	if math.Abs(exact-direct) > 1e-9 {
		t.Errorf("theta 0: expected %v, got %v", direct, exact)
	}
}
