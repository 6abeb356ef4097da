package orbit

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Entity returns a copy of the entity (or center) stored under id.
func (r *Registry) Entity(id ID) (*Entity, bool) {
	if id < 0 || int(id) >= len(r.arena) || r.arena[id] == nil {
		return nil, false
	}
	return r.arena[id].Clone(), true
}

// Center returns a copy of the center and its ID, or (nil, NoID).
func (r *Registry) Center() (*Entity, ID) {
	if r.center == NoID {
		return nil, NoID
	}
	return r.arena[r.center].Clone(), r.center
}

// CenterID returns the center's ID or NoID.
func (r *Registry) CenterID() ID { return r.center }

// Len returns the number of entities, center excluded.
func (r *Registry) Len() int { return r.live }

// Entities returns every entity ID in default order.
func (r *Registry) Entities() []ID {
	ids := make([]ID, 0, r.live)
	for i, e := range r.arena {
		if e != nil && ID(i) != r.center {
			ids = append(ids, ID(i))
		}
	}
	r.sortIDs(ids)
	return ids
}

// ObjectsOnTrack returns the IDs currently on t in default order.
func (r *Registry) ObjectsOnTrack(t Track) []ID {
	set := r.byTrack[t]
	ids := make([]ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	r.sortIDs(ids)
	return ids
}

// Tracks returns the registered tracks, sorted.
func (r *Registry) Tracks() []Track {
	out := make([]Track, 0, len(r.tracks))
	for t := range r.tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// TrackCounts returns the number of entities per occupied track.
func (r *Registry) TrackCounts() map[Track]int {
	out := make(map[Track]int, len(r.byTrack))
	for t, set := range r.byTrack {
		out[t] = len(set)
	}
	return out
}

// Graph returns a copy of the relation graph.
func (r *Registry) Graph() *Graph { return r.graph.Clone() }

// IDOf resolves an object by identity. The center is checked first.
func (r *Registry) IDOf(o Object) (ID, bool) {
	if o == nil {
		return NoID, false
	}
	if r.center != NoID && r.arena[r.center].Key() == o.Key() {
		return r.center, true
	}
	id, ok := r.byKey[o.Key()]
	return id, ok
}

// Query finds an entity by name, checking the center first. With several
// entities sharing a name the first in default order wins.
func (r *Registry) Query(name string) (ID, bool) {
	name = strings.TrimSpace(name)
	if r.center != NoID && r.arena[r.center].Name() == name {
		return r.center, true
	}
	ids := r.byName[name]
	if len(ids) == 0 {
		return NoID, false
	}
	best := ids[0]
	for _, id := range ids[1:] {
		if CompareEntities(r.arena[id], r.arena[best]) < 0 {
			best = id
		}
	}
	return best, true
}

// Suggest returns up to n known names closest to name by edit distance.
func (r *Registry) Suggest(name string, n int) []string {
	name = strings.TrimSpace(name)
	type cand struct {
		name string
		dist int
	}
	var cands []cand
	seen := make(map[string]bool)
	consider := func(s string) {
		if seen[s] {
			return
		}
		seen[s] = true
		cands = append(cands, cand{s, levenshtein.ComputeDistance(name, s)})
	}
	if r.center != NoID {
		consider(r.arena[r.center].Name())
	}
	for s := range r.byName {
		consider(s)
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})
	if n > len(cands) {
		n = len(cands)
	}
	out := make([]string, 0, n)
	for _, c := range cands[:max(n, 0)] {
		out = append(out, c.name)
	}
	return out
}
