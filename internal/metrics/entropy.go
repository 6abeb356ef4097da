package metrics

import (
	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/orbit"
)

// Entropy averages the track distribution entropy over the observed steps.
type Entropy struct {
	name    string
	sum     float64
	samples int
}

func NewEntropy() *Entropy {
	return &Entropy{name: "entropy"}
}

func (e *Entropy) Name() string {
	return e.name
}

func (e *Entropy) Observe(r *orbit.Registry, t float64) {
	e.sum += analysis.Entropy(r)
	e.samples++
}

func (e *Entropy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Entropy) Reset() {
	e.sum = 0
	e.samples = 0
}
