package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/orbsim/internal/orbit"
)

// TrackGroup lists entities of one side that the other side lacks, grouped
// by the track they currently occupy.
type TrackGroup struct {
	Track orbit.Track
	Names []string
	Keys  []orbit.Key
}

// Difference is the structural comparison of two registries.
type Difference struct {
	// TrackCountDelta is |occupied tracks of A| - |occupied tracks of B|.
	TrackCountDelta int
	// TrackNumDelta[i] is countA[i] - countB[i] over the sorted occupied
	// tracks, with a missing side counting as 0.
	TrackNumDelta []int
	// Tracks labels TrackNumDelta when the diff is aligned by track value.
	Tracks  []orbit.Track
	OnlyInA []TrackGroup
	OnlyInB []TrackGroup
}

// Empty reports whether both sides hold the same tracks, counts and entities.
func (d Difference) Empty() bool {
	if d.TrackCountDelta != 0 || len(d.OnlyInA) > 0 || len(d.OnlyInB) > 0 {
		return false
	}
	for _, n := range d.TrackNumDelta {
		if n != 0 {
			return false
		}
	}
	return true
}

type trackCount struct {
	track orbit.Track
	n     int
}

func sortedCounts(r *orbit.Registry) []trackCount {
	counts := r.TrackCounts()
	out := make([]trackCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, trackCount{t, n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].track.Less(out[j].track) })
	return out
}

// Diff compares a and b by zipping their sorted per-track counts
// positionally. Positions are not re-aligned when the two track sets
// differ; use AlignedDiff for that.
func Diff(a, b *orbit.Registry) Difference {
	ca, cb := sortedCounts(a), sortedCounts(b)
	n := max(len(ca), len(cb))
	delta := make([]int, n)
	for i := range delta {
		if i < len(ca) {
			delta[i] += ca[i].n
		}
		if i < len(cb) {
			delta[i] -= cb[i].n
		}
	}
	d := Difference{
		TrackCountDelta: len(ca) - len(cb),
		TrackNumDelta:   delta,
	}
	d.OnlyInA, d.OnlyInB = objectDiff(a, b), objectDiff(b, a)
	return d
}

// AlignedDiff is Diff with the per-track deltas outer-joined on track value.
func AlignedDiff(a, b *orbit.Registry) Difference {
	ca, cb := a.TrackCounts(), b.TrackCounts()
	seen := make(map[orbit.Track]struct{}, len(ca)+len(cb))
	for t := range ca {
		seen[t] = struct{}{}
	}
	for t := range cb {
		seen[t] = struct{}{}
	}
	tracks := make([]orbit.Track, 0, len(seen))
	for t := range seen {
		tracks = append(tracks, t)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Less(tracks[j]) })
	delta := make([]int, len(tracks))
	for i, t := range tracks {
		delta[i] = ca[t] - cb[t]
	}
	return Difference{
		TrackCountDelta: len(ca) - len(cb),
		TrackNumDelta:   delta,
		Tracks:          tracks,
		OnlyInA:         objectDiff(a, b),
		OnlyInB:         objectDiff(b, a),
	}
}

// objectDiff groups the entities of a whose identity is absent from b.
func objectDiff(a, b *orbit.Registry) []TrackGroup {
	groups := make(map[orbit.Track]*TrackGroup)
	for _, id := range a.Entities() {
		e, _ := a.Entity(id)
		if other, ok := b.IDOf(e); ok && other != b.CenterID() {
			continue
		}
		g := groups[e.Track()]
		if g == nil {
			g = &TrackGroup{Track: e.Track()}
			groups[e.Track()] = g
		}
		g.Names = append(g.Names, e.Name())
		g.Keys = append(g.Keys, e.Key())
	}
	out := make([]TrackGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Track.Less(out[j].Track) })
	return out
}

func (d Difference) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "track count delta: %d\n", d.TrackCountDelta)
	for i, n := range d.TrackNumDelta {
		if i < len(d.Tracks) {
			fmt.Fprintf(&b, "track %s: %+d\n", d.Tracks[i], n)
		} else {
			fmt.Fprintf(&b, "track #%d: %+d\n", i+1, n)
		}
	}
	writeGroups(&b, "only in A", d.OnlyInA)
	writeGroups(&b, "only in B", d.OnlyInB)
	return b.String()
}

func writeGroups(b *strings.Builder, label string, groups []TrackGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, g := range groups {
		fmt.Fprintf(b, "  %s: %s\n", g.Track, strings.Join(g.Names, ", "))
	}
}
