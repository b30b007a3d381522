package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/experiment"
)

// GridSearch tries every combination of the given config parameter values
// and keeps the one that minimizes a run metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Logger receives one debug record per evaluated point.
	Logger *slog.Logger
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, Logger: slog.Default()}
}

// Point is one evaluated parameter combination.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Search runs base with every combination and returns the best parameters,
// their metric value and every evaluated point. Points whose run fails or
// lacks the metric are kept with Err set and never win.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var points []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &points)
	for _, p := range points {
		if p.Err == nil && p.Value < best {
			best = p.Value
			bestParams = p.Params
		}
	}
	return bestParams, best, points, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	points *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		p := Point{Params: current}
		p.Value, p.Err = g.evaluate(ctx, base, current, metricName)
		g.Logger.Debug("grid point", "params", current, "value", p.Value, "error", p.Err)
		*points = append(*points, p)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, points); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, params map[string]float64, metricName string) (float64, error) {
	cfg := *base
	for k, v := range params {
		if err := cfg.SetParam(k, v); err != nil {
			return 0, err
		}
	}

	exp, err := experiment.New(&cfg, g.Logger)
	if err != nil {
		return 0, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	if len(result.Errors) > 0 {
		return 0, result.Errors[0]
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("run has no metric %q", metricName)
	}
	return val, nil
}
