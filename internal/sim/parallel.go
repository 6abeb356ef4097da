package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs several independent systems with the same config.
type Ensemble struct {
	systems []System
	metrics func() []Metric
	workers int
}

// NewEnsemble creates an ensemble. metrics, when non-nil, builds a fresh
// metric set per run since metrics hold state.
func NewEnsemble(systems []System, metrics func() []Metric, workers int) *Ensemble {
	return &Ensemble{systems: systems, metrics: metrics, workers: workers}
}

// Run returns one result per system, in input order. The first failing run
// cancels the others.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.systems))

	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}
	for i, sys := range e.systems {
		g.Go(func() error {
			s := New(sys)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}
			res, err := s.Run(ctx, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
