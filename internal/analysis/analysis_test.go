package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/san-kum/orbsim/internal/orbit"
)

func add(t *testing.T, r *orbit.Registry, name string, angle float64, radii ...float64) orbit.ID {
	t.Helper()
	e, err := orbit.NewEntity(name, angle, nil, radii...)
	require.NoError(t, err)
	id, err := r.AddObject(e)
	require.NoError(t, err)
	return id
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		name   string
		tracks []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single track", []float64{1, 1, 1}, 0},
		{"two to one", []float64{1, 1, 2}, 0.6365141682948128},
		{"uniform", []float64{1, 2, 3, 4}, math.Log(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := orbit.NewRegistry()
			for i, radius := range tt.tracks {
				add(t, r, "e", float64(i), radius)
			}
			assert.InDelta(t, tt.want, Entropy(r), 1e-9)
		})
	}
}

func TestDistributionSumsToOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := orbit.NewRegistry()
		n := rapid.IntRange(1, 40).Draw(rt, "n")
		for i := 0; i < n; i++ {
			radius := float64(rapid.IntRange(0, 6).Draw(rt, "radius"))
			e := orbit.NewEntityOn("e", orbit.MustTrack(radius), float64(i), nil)
			if _, err := r.AddObject(e); err != nil {
				rt.Fatalf("add: %v", err)
			}
		}
		sum := 0.0
		for _, p := range Distribution(r) {
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			rt.Fatalf("distribution sums to %v", sum)
		}
		if h := Entropy(r); h < 0 || h > math.Log(float64(n))+1e-9 {
			rt.Fatalf("entropy %v out of range", h)
		}
	})
}

func TestLogicalDistance(t *testing.T) {
	g := orbit.NewGraph()
	require.NoError(t, g.SetEdge(1, 2, 1))
	require.NoError(t, g.SetEdge(2, 3, 1))
	require.NoError(t, g.SetEdge(3, 1, 1))
	require.NoError(t, g.SetEdge(1, 3, 1))
	g.AddVertex(9)

	assert.Equal(t, 0, LogicalDistance(g, 2, 2))
	assert.Equal(t, 1, LogicalDistance(g, 1, 3), "shortcut beats the long way")
	assert.Equal(t, 2, LogicalDistance(g, 2, 1))
	assert.Equal(t, -1, LogicalDistance(g, 1, 9))
	assert.Equal(t, -1, LogicalDistance(g, 1, 42))
	assert.Equal(t, -1, LogicalDistance(g, 42, 42))
	assert.Equal(t, map[orbit.ID]int{1: 0, 2: 1, 3: 1}, Reachable(g, 1))
}

func TestLogicalDistanceMatchesReachability(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := orbit.NewGraph()
		n := rapid.IntRange(2, 8).Draw(rt, "n")
		for v := 0; v < n; v++ {
			g.AddVertex(orbit.ID(v))
		}
		edges := rapid.IntRange(0, n*2).Draw(rt, "edges")
		for i := 0; i < edges; i++ {
			a := orbit.ID(rapid.IntRange(0, n-1).Draw(rt, "a"))
			b := orbit.ID(rapid.IntRange(0, n-1).Draw(rt, "b"))
			_ = g.SetEdge(a, b, 1)
		}
		a := orbit.ID(rapid.IntRange(0, n-1).Draw(rt, "from"))
		b := orbit.ID(rapid.IntRange(0, n-1).Draw(rt, "to"))
		depth, ok := Reachable(g, a)[b]
		got := LogicalDistance(g, a, b)
		if !ok && got != -1 {
			rt.Fatalf("unreachable %d->%d reported as %d", a, b, got)
		}
		if ok && got != depth {
			rt.Fatalf("distance %d->%d = %d, want %d", a, b, got, depth)
		}
	})
}

func TestPhysicalDistance(t *testing.T) {
	a := orbit.NewEntityOn("a", orbit.MustTrack(3), 0, nil)
	b := orbit.NewEntityOn("b", orbit.MustTrack(4), 90, nil)
	assert.InDelta(t, 5.0, PhysicalDistance(a, b), 1e-9)
	assert.InDelta(t, PhysicalDistance(b, a), PhysicalDistance(a, b), 1e-12)
	assert.Equal(t, 0.0, PhysicalDistance(a, a))

	c := orbit.NewEntityOn("c", orbit.MustTrack(4, 1), 270, nil)
	assert.InDelta(t, 5.0, PhysicalDistance(a, c), 1e-9, "major radius is used")
}

func TestDiffAgainstItself(t *testing.T) {
	r := orbit.NewRegistry()
	add(t, r, "a", 0, 1)
	add(t, r, "b", 0, 2)
	d := Diff(r, r)
	assert.True(t, d.Empty())
	assert.Equal(t, []int{0, 0}, d.TrackNumDelta)
}

func TestDiff(t *testing.T) {
	a := orbit.NewRegistry()
	add(t, a, "x", 0, 1)
	add(t, a, "y", 0, 1)
	add(t, a, "z", 0, 3)

	b := orbit.NewRegistry()
	add(t, b, "x", 0, 1)
	add(t, b, "w", 0, 2)

	d := Diff(a, b)
	assert.Equal(t, 0, d.TrackCountDelta)
	assert.Equal(t, []int{1, 0}, d.TrackNumDelta, "positions zip track 3 against track 2")
	require.Len(t, d.OnlyInA, 2)
	assert.Equal(t, []string{"y"}, d.OnlyInA[0].Names)
	assert.Equal(t, []string{"z"}, d.OnlyInA[1].Names)
	require.Len(t, d.OnlyInB, 1)
	assert.Equal(t, orbit.MustTrack(2), d.OnlyInB[0].Track)

	aligned := AlignedDiff(a, b)
	assert.Equal(t, []orbit.Track{orbit.MustTrack(1), orbit.MustTrack(2), orbit.MustTrack(3)}, aligned.Tracks)
	assert.Equal(t, []int{1, -1, 1}, aligned.TrackNumDelta)
	assert.Contains(t, aligned.String(), "track 2: -1")
}
