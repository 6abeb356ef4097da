package analysis

import (
	"math"

	"github.com/san-kum/orbsim/internal/orbit"
)

// Distribution returns the share of entities on each occupied track.
func Distribution(r *orbit.Registry) map[orbit.Track]float64 {
	counts := r.TrackCounts()
	total := r.Len()
	out := make(map[orbit.Track]float64, len(counts))
	if total == 0 {
		return out
	}
	for t, n := range counts {
		out[t] = float64(n) / float64(total)
	}
	return out
}

// Entropy returns -Σ p ln p over the track distribution. Empty and
// single-track registries have zero entropy.
func Entropy(r *orbit.Registry) float64 {
	return EntropyOf(Distribution(r))
}

// EntropyOf computes the natural-log entropy of a probability distribution.
func EntropyOf(dist map[orbit.Track]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	if h < 0 {
		return 0
	}
	return h
}
