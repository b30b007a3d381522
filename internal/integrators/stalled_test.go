package integrators

import "testing"

func TestStalled(t *testing.T) {
	tests := []struct {
		name           string
		prev, residual float64
		want           bool
	}{
		{"decreasing", 1e-3, 1e-4, false},
		{"equal above floor", 1e-3, 1e-3, true},
		{"growing above floor", 1e-3, 2e-3, true},
		{"equal at floor", 1e-9, 1e-9, false},
		{"growing below floor", 1e-12, 1e-11, false},
		{"first iteration", 1e300, 1e-3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stalled(tt.prev, tt.residual, DefaultAnomalyFloor); got != tt.want {
				t.Errorf("stalled(%g, %g) = %v, want %v", tt.prev, tt.residual, got, tt.want)
			}
		})
	}
}
