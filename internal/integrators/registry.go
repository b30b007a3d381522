package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbisim/internal/dynamo"
	"github.com/san-kum/orbisim/internal/sim"
)

var constructors = map[string]func() sim.Stepper{
	"greenspan": func() sim.Stepper { return NewGreenspan() },
	"leapfrog":  func() sim.Stepper { return NewLeapfrog() },
	"euler":     func() sim.Stepper { return NewSymplecticEuler() },
}

// New returns a fresh stepper by name.
func New(name string) (sim.Stepper, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// Names lists the registered steppers in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
