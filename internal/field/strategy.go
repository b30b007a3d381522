package field

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbisim/internal/dynamo"
)

// Strategy selects how the potential field is evaluated.
type Strategy int

const (
	Precise Strategy = iota
	Bilinear
	BarnesHut
)

var strategyNames = map[Strategy]string{
	Precise:   "precise",
	Bilinear:  "bilinear",
	BarnesHut: "barneshut",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy accepts a strategy name, case-insensitively. "bh" and
// "barnes-hut" are accepted for BarnesHut.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "precise", "exact":
		return Precise, nil
	case "bilinear":
		return Bilinear, nil
	case "barneshut", "barnes-hut", "bh":
		return BarnesHut, nil
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownStrategy, name)
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Precise, Bilinear, BarnesHut}
}
