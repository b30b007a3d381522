package universe

import "testing"

func TestHandle_AfterErase(t *testing.T) {
	tests := []struct {
		name string
		h    Handle
		k    int
		want Handle
	}{
		{"same", Handle{HandleTailFull, 2}, 2, Null},
		{"above", Handle{HandleHead, 5}, 2, Handle{HandleHead, 4}},
		{"below", Handle{HandleCircle, 1}, 2, Handle{HandleCircle, 1}},
		{"null", Null, 0, Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.AfterErase(tt.k); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestEraseSelected(t *testing.T) {
	u := New(5)
	for i := 0; i < 4; i++ {
		u.Add(Particle{Mass: 1, Charge: float64(i)})
	}

	sel := Handle{HandleTailFull, 1}
	hover := Handle{HandleHead, 3}
	if !u.EraseSelected(&sel, &hover) {
		t.Fatal("erase selected failed")
	}
	if !sel.IsNull() {
		t.Errorf("selection not cleared: %+v", sel)
	}
	if hover.Index != 2 {
		t.Errorf("expected hover index 2, got %d", hover.Index)
	}
	if u.Len() != 3 || u.Charge[1] != 2 {
		t.Errorf("unexpected store after erase: len %d charge[1] %v", u.Len(), u.Charge[1])
	}
}

func TestFlipSelected(t *testing.T) {
	u := New(1)
	u.Add(Particle{Mass: 2, Charge: 1, Vx: 1})

	if u.FlipSelected(Handle{HandleTailFull, 0}) {
		t.Error("full tail should not flip anything")
	}
	u.FlipSelected(Handle{HandleTailHollow, 0})
	if u.Charge[0] != -1 {
		t.Errorf("expected charge -1, got %v", u.Charge[0])
	}
}

func TestClipboard(t *testing.T) {
	u := New(2)
	u.Add(Particle{Mass: 3, Charge: -1, X: 0.1, Y: 0.2, Vx: 0.5, Vy: 0.6})

	var c Clipboard
	if c.Paste(u, 0, 0) {
		t.Error("empty clipboard pasted")
	}
	if !c.Copy(u, 0) {
		t.Fatal("copy failed")
	}
	if !c.Paste(u, 1, 2) {
		t.Fatal("paste failed")
	}
	p, _ := u.Particle(1)
	want := Particle{Mass: 3, Charge: -1, X: 1, Y: 2, Vx: 0.5, Vy: 0.6}
	if p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
	if c.Paste(u, 0, 0) {
		t.Error("paste into full store should be a no-op")
	}
}
