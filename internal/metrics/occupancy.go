package metrics

import "github.com/san-kum/orbsim/internal/orbit"

// Occupancy is the largest number of entities seen on a single track.
type Occupancy struct {
	name string
	max  int
}

func NewOccupancy() *Occupancy {
	return &Occupancy{name: "occupancy"}
}

func (o *Occupancy) Name() string {
	return o.name
}

func (o *Occupancy) Observe(r *orbit.Registry, t float64) {
	for _, n := range r.TrackCounts() {
		o.max = max(o.max, n)
	}
}

func (o *Occupancy) Value() float64 {
	return float64(o.max)
}

func (o *Occupancy) Reset() {
	o.max = 0
}
