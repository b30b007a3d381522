package universe

// HandleKind identifies which part of a particle's on-screen glyph a handle
// refers to.
type HandleKind int

const (
	HandleNull HandleKind = iota
	HandleTailFull
	HandleHead
	HandleCircle
	HandleTailHollow
)

// Handle is a selection reference to a particle by index.
type Handle struct {
	Kind  HandleKind
	Index int
}

// Null is the empty selection.
var Null = Handle{Kind: HandleNull, Index: -1}

func (h Handle) IsNull() bool { return h.Kind == HandleNull }

// AfterErase updates h for the erasure of particle k: a handle to k becomes
// Null and handles above k shift down.
func (h Handle) AfterErase(k int) Handle {
	switch {
	case h.IsNull():
		return h
	case h.Index == k:
		return Null
	case h.Index > k:
		h.Index--
	}
	return h
}

// EraseSelected erases the particle referenced by *h, clears *h and adjusts
// every handle in others.
func (u *Universe) EraseSelected(h *Handle, others ...*Handle) bool {
	if h == nil || h.IsNull() {
		return false
	}
	k := h.Index
	*h = Null
	if !u.Erase(k) {
		return false
	}
	for _, o := range others {
		if o != nil {
			*o = o.AfterErase(k)
		}
	}
	return true
}

// FlipAttr returns the attribute a flip on this handle negates: the arrow head
// reverses velocity, the hollow tail flips charge and the circle flips mass.
func (h Handle) FlipAttr() (Attr, bool) {
	switch h.Kind {
	case HandleHead:
		return AttrVelocity, true
	case HandleTailHollow:
		return AttrCharge, true
	case HandleCircle:
		return AttrMass, true
	default:
		return 0, false
	}
}

// FlipSelected negates the attribute selected by h.
func (u *Universe) FlipSelected(h Handle) bool {
	attr, ok := h.FlipAttr()
	if !ok {
		return false
	}
	return u.Flip(h.Index, attr)
}
