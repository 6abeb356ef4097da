package orbit

import (
	"fmt"
	"math"
	"strconv"
)

// UnassignedRadius marks an object that is not on any concrete track.
const UnassignedRadius = -1.0

// Track is an immutable orbit described by its semi-major and semi-minor
// radii. Tracks compare by value, so they can be used directly as map keys.
type Track struct {
	Major float64
	Minor float64
}

// Unassigned is the free-floating sentinel track.
var Unassigned = Track{Major: UnassignedRadius, Minor: UnassignedRadius}

// NewTrack builds a canonical track from one or two radii. A single radius
// describes a circle; two radii are ordered so that Major >= Minor.
func NewTrack(radii ...float64) (Track, error) {
	if len(radii) != 1 && len(radii) != 2 {
		return Track{}, fmt.Errorf("%w: want 1 or 2 radii, got %d", ErrInvalidTrack, len(radii))
	}
	for _, r := range radii {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return Track{}, fmt.Errorf("%w: radius %v", ErrInvalidTrack, r)
		}
		if r < 0 && r != UnassignedRadius {
			return Track{}, fmt.Errorf("%w: negative radius %v", ErrInvalidTrack, r)
		}
	}
	if len(radii) == 1 {
		return Track{Major: radii[0], Minor: radii[0]}, nil
	}
	if (radii[0] == UnassignedRadius) != (radii[1] == UnassignedRadius) {
		return Track{}, fmt.Errorf("%w: mixed radii %v", ErrInvalidTrack, radii)
	}
	return Track{Major: math.Max(radii[0], radii[1]), Minor: math.Min(radii[0], radii[1])}, nil
}

// MustTrack is NewTrack for constant radii; it panics on invalid input.
func MustTrack(radii ...float64) Track {
	t, err := NewTrack(radii...)
	if err != nil {
		panic(err)
	}
	return t
}

// CompareTracks orders tracks lexicographically on (Major, Minor).
func CompareTracks(a, b Track) int {
	switch {
	case a.Major < b.Major:
		return -1
	case a.Major > b.Major:
		return 1
	case a.Minor < b.Minor:
		return -1
	case a.Minor > b.Minor:
		return 1
	}
	return 0
}

func (t Track) Less(o Track) bool { return CompareTracks(t, o) < 0 }

func (t Track) IsUnassigned() bool { return t == Unassigned }

func (t Track) IsCircle() bool { return t.Major == t.Minor }

// Radii returns {Major, Minor}.
func (t Track) Radii() []float64 { return []float64{t.Major, t.Minor} }

func (t Track) String() string {
	if t.IsCircle() {
		return formatRadius(t.Major)
	}
	return "[" + formatRadius(t.Major) + " " + formatRadius(t.Minor) + "]"
}

func formatRadius(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64)
}
