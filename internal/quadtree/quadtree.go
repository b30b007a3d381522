// Package quadtree builds the Barnes–Hut tree over particle charges.
//
// Nodes live in a flat arena and refer to their children by index. The arena
// is reused across builds, so a Tree allocates only when the particle count
// grows.
package quadtree

import (
	"math"

	"github.com/san-kum/orbisim/internal/universe"
)

// None marks an absent child or an empty tree.
const None int32 = -1

// DefaultTheta is the opening threshold used for field rendering.
const DefaultTheta = 0.25

// Node is one quadtree cell. For a leaf (R == 0) X, Y and Charge are exact;
// otherwise they are the charge-weighted centroid and total charge of the
// subtree, and Cx, Cy is the center of the bounding box.
type Node struct {
	X, Y   float64
	Charge float64
	R      float64
	Cx, Cy float64
	Child  [4]int32
}

// Leaf reports whether n carries exact (or aggregated coincident) charge.
func (n *Node) Leaf() bool { return n.R == 0 }

// Source is a point charge gathered from the tree.
type Source struct {
	X, Y   float64
	Charge float64
}

type point struct {
	x, y, q float64
}

// Tree is an arena quadtree. The zero value is ready to Build.
type Tree struct {
	nodes  []Node
	points []point
	root   int32
}

// Build rebuilds t from the live particles of u.
func (t *Tree) Build(u *universe.Universe) {
	n := u.Len()
	t.points = t.points[:0]
	for i := 0; i < n; i++ {
		t.points = append(t.points, point{u.Sx[i], u.Sy[i], u.Charge[i]})
	}
	if cap(t.nodes) < 2*n {
		t.nodes = make([]Node, 0, 2*n)
	}
	t.nodes = t.nodes[:0]
	t.root = t.build(t.points)
}

// New builds a tree over u.
func New(u *universe.Universe) *Tree {
	t := &Tree{}
	t.Build(u)
	return t
}

// Root returns the root index, or None for an empty tree.
func (t *Tree) Root() int32 { return t.root }

// Node returns the node at index i.
func (t *Tree) Node(i int32) *Node { return &t.nodes[i] }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) alloc() int32 {
	t.nodes = append(t.nodes, Node{Child: [4]int32{None, None, None, None}})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) build(ps []point) int32 {
	if len(ps) == 0 {
		return None
	}
	idx := t.alloc()
	if len(ps) == 1 {
		t.nodes[idx].X = ps[0].x
		t.nodes[idx].Y = ps[0].y
		t.nodes[idx].Charge = ps[0].q
		return idx
	}

	xmin, xmax := ps[0].x, ps[0].x
	ymin, ymax := ps[0].y, ps[0].y
	for _, p := range ps[1:] {
		xmin = math.Min(xmin, p.x)
		xmax = math.Max(xmax, p.x)
		ymin = math.Min(ymin, p.y)
		ymax = math.Max(ymax, p.y)
	}
	rx := 0.5 * (xmax - xmin)
	ry := 0.5 * (ymax - ymin)
	cx := xmin + rx
	cy := ymin + ry

	var sx, sy, charge float64
	if (cx == xmin || cx == xmax) && (cy == ymin || cy == ymax) {
		// Subdivision is numerically impossible; aggregate as one point.
		for _, p := range ps {
			sx += p.x * p.q
			sy += p.y * p.q
			charge += p.q
		}
	} else {
		p2 := partition(ps, func(p point) bool { return p.y < cy })
		p1 := partition(ps[:p2], func(p point) bool { return p.x < cx })
		p3 := p2 + partition(ps[p2:], func(p point) bool { return p.x < cx })

		children := [4]int32{
			t.build(ps[:p1]),
			t.build(ps[p1:p2]),
			t.build(ps[p2:p3]),
			t.build(ps[p3:]),
		}
		// build may grow the arena; index again after recursion.
		node := &t.nodes[idx]
		node.R = math.Max(rx, ry)
		node.Cx, node.Cy = cx, cy
		node.Child = children
		for _, c := range children {
			if c == None {
				continue
			}
			m := &t.nodes[c]
			sx += m.X * m.Charge
			sy += m.Y * m.Charge
			charge += m.Charge
		}
	}

	node := &t.nodes[idx]
	node.Charge = charge
	if charge != 0 {
		node.X = sx / charge
		node.Y = sy / charge
	} else {
		node.X, node.Y = cx, cy
	}
	return idx
}

// partition reorders ps so elements satisfying pred come first and returns
// their count.
func partition(ps []point, pred func(point) bool) int {
	i := 0
	for j := range ps {
		if pred(ps[j]) {
			ps[i], ps[j] = ps[j], ps[i]
			i++
		}
	}
	return i
}

// Gather appends to dst the sources that approximate the field over a square
// patch centered at (x, y) with half-width r. A node is accepted when it is a
// leaf or when (R + r) / dist < theta, where dist is measured to the nearer of
// its centroid and its box center.
func (t *Tree) Gather(dst []Source, x, y, r, theta float64) []Source {
	if t.root == None {
		return dst
	}
	return t.gather(dst, t.root, x, y, r, theta)
}

func (t *Tree) gather(dst []Source, i int32, x, y, r, theta float64) []Source {
	n := &t.nodes[i]
	if n.Leaf() || t.accept(n, x, y, r, theta) {
		return append(dst, Source{X: n.X, Y: n.Y, Charge: n.Charge})
	}
	for _, c := range n.Child {
		if c != None {
			dst = t.gather(dst, c, x, y, r, theta)
		}
	}
	return dst
}

func (t *Tree) accept(n *Node, x, y, r, theta float64) bool {
	dist := math.Min(math.Hypot(x-n.Cx, y-n.Cy), math.Hypot(x-n.X, y-n.Y))
	if dist == 0 {
		return false
	}
	return (n.R+r)/dist < theta
}

// Potential evaluates Σ q/d at (x, y) using the same acceptance rule with a
// zero-width target. Distances below minDist are clamped to minDist.
func (t *Tree) Potential(x, y, theta, minDist float64) float64 {
	if t.root == None {
		return 0
	}
	return t.potential(t.root, x, y, theta, minDist)
}

func (t *Tree) potential(i int32, x, y, theta, minDist float64) float64 {
	n := &t.nodes[i]
	if n.Leaf() || t.accept(n, x, y, 0, theta) {
		d := math.Max(math.Hypot(n.X-x, n.Y-y), minDist)
		return n.Charge / d
	}
	p := 0.0
	for _, c := range n.Child {
		if c != None {
			p += t.potential(c, x, y, theta, minDist)
		}
	}
	return p
}
