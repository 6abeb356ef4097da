// Package metrics provides sim.Metric implementations over orbit registries.
package metrics

import "github.com/san-kum/orbsim/internal/sim"

var (
	_ sim.Metric = (*Entropy)(nil)
	_ sim.Metric = (*Occupancy)(nil)
	_ sim.Metric = (*Spread)(nil)
)

// Default returns a fresh set of every metric.
func Default() []sim.Metric {
	return []sim.Metric{NewEntropy(), NewOccupancy(), NewSpread()}
}
