package clut

import (
	"math"
	"testing"
)

func TestIndex(t *testing.T) {
	table := MustNew()

	tests := []struct {
		name   string
		sample float64
		want   int
	}{
		{"zero", 0, Size / 2},
		{"one", 1, Size/2 + DefaultScale},
		{"minus one", -1, Size/2 - DefaultScale},
		{"saturate high", 1e9, Size - 1},
		{"saturate low", -1e9, 0},
		{"positive inf", math.Inf(1), Size - 1},
		{"negative inf", math.Inf(-1), 0},
		{"nan", math.NaN(), Size / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Index(tt.sample); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNew_Diverging(t *testing.T) {
	table := MustNew()

	mid := table.Colors[Size/2]
	if mid.R != 0 || mid.G != 0 || mid.B != 0 {
		t.Errorf("expected black at zero potential, got %+v", mid)
	}
	lo := table.Color(-3)
	if lo.B <= lo.R {
		t.Errorf("negative potential should be blue, got %+v", lo)
	}
	hi := table.Color(3)
	if hi.R <= hi.B {
		t.Errorf("positive potential should be red, got %+v", hi)
	}
	for i, c := range table.Colors {
		if c.A != 255 {
			t.Fatalf("entry %d not opaque", i)
		}
	}
}
