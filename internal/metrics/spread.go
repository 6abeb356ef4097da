package metrics

import (
	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/orbit"
)

// Spread is the largest physical distance seen between two entities.
type Spread struct {
	name string
	max  float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string {
	return s.name
}

func (s *Spread) Observe(r *orbit.Registry, t float64) {
	ids := r.Entities()
	objs := make([]*orbit.Entity, 0, len(ids))
	for _, id := range ids {
		e, _ := r.Entity(id)
		if !e.Track().IsUnassigned() {
			objs = append(objs, e)
		}
	}
	for i := range objs {
		for j := i + 1; j < len(objs); j++ {
			s.max = max(s.max, analysis.PhysicalDistance(objs[i], objs[j]))
		}
	}
}

func (s *Spread) Value() float64 {
	return s.max
}

func (s *Spread) Reset() {
	s.max = 0
}
