package optim

import (
	"context"
	"testing"

	"github.com/san-kum/orbisim/internal/config"
)

func TestGridSearch(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 40

	g := NewGridSearch([]string{"dt", "max_iterations"}, [][]float64{{0.001, 0.01}, {4, 16}})
	best, value, points, err := g.Search(context.Background(), base, "energy_drift")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 4 {
		t.Fatalf("evaluated %d points, want 4", len(points))
	}
	if best == nil {
		t.Fatal("no best point")
	}
	for _, p := range points {
		if p.Err != nil {
			t.Errorf("%v: %v", p.Params, p.Err)
		}
		if p.Value < value {
			t.Errorf("%v beats the best with %g < %g", p.Params, p.Value, value)
		}
	}
	if base.Dt != config.DefaultDt {
		t.Error("search modified the base config")
	}
}

func TestGridSearch_Errors(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 10

	if _, _, _, err := NewGridSearch([]string{"dt"}, nil).Search(context.Background(), base, "energy_drift"); err == nil {
		t.Error("expected error for mismatched ranges")
	}

	best, _, points, err := NewGridSearch([]string{"dt"}, [][]float64{{-1}}).Search(context.Background(), base, "energy_drift")
	if err != nil {
		t.Fatal(err)
	}
	if best != nil || len(points) != 1 || points[0].Err == nil {
		t.Errorf("invalid dt should fail its point, got best=%v points=%v", best, points)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, _, err := NewGridSearch([]string{"dt"}, [][]float64{{0.01}}).Search(ctx, base, "energy_drift"); err == nil {
		t.Error("expected error for canceled context")
	}
}
