package orbit

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestRegistryInvariantsHold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRegistry()
		var ids []ID
		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			radius := float64(rapid.IntRange(0, 4).Draw(rt, "radius"))
			switch rapid.IntRange(0, 6).Draw(rt, "op") {
			case 0, 1:
				name := fmt.Sprintf("n%d", rapid.IntRange(0, 5).Draw(rt, "name"))
				e := NewEntityOn(name, MustTrack(radius), 0, nil)
				if id, err := r.AddObject(e); err == nil {
					ids = append(ids, id)
				}
			case 2:
				if len(ids) > 0 {
					id := rapid.SampledFrom(ids).Draw(rt, "move")
					_ = r.MoveObject(id, MustTrack(radius))
				}
			case 3:
				if len(ids) > 0 {
					r.RemoveObject(rapid.SampledFrom(ids).Draw(rt, "remove"))
				}
			case 4:
				_, _ = r.RemoveTrack(radius)
			case 5:
				if len(ids) > 1 {
					a := rapid.SampledFrom(ids).Draw(rt, "a")
					b := rapid.SampledFrom(ids).Draw(rt, "b")
					_ = r.SetRelation(a, b, 1)
				}
			case 6:
				r.CompactTracks()
			}
			r.CheckRepresentation()
		}

		total := 0
		for tr, n := range r.TrackCounts() {
			if !r.HasTrack(tr) {
				rt.Fatalf("occupied track %v is not registered", tr)
			}
			total += n
		}
		if total != r.Len() || len(r.Entities()) != r.Len() {
			rt.Fatalf("counts disagree: tracks=%d len=%d entities=%d", total, r.Len(), len(r.Entities()))
		}
	})
}

func TestCompareEntitiesIsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		gen := func(label string) *Entity {
			return NewEntityOn(
				rapid.StringMatching(`[a-c]{1,2}`).Draw(rt, label+"name"),
				MustTrack(float64(rapid.IntRange(0, 3).Draw(rt, label+"track"))),
				float64(rapid.IntRange(0, 3).Draw(rt, label+"angle")),
				nil,
			)
		}
		a, b := gen("a"), gen("b")
		ab, ba := CompareEntities(a, b), CompareEntities(b, a)
		if ab != -ba {
			rt.Fatalf("asymmetric: %d vs %d", ab, ba)
		}
		if (ab == 0) != SameIdentity(a, b) {
			rt.Fatalf("zero comparison must coincide with identity for %v and %v", a, b)
		}
	})
}
