package orbit

// TrackSnapshot is a value copy of the contents of a set of tracks,
// including the relations incident to the captured entities.
type TrackSnapshot struct {
	tracks   map[Track]bool // track -> was registered
	entities map[ID]*Entity
	edges    map[Edge]float32
}

// Tracks returns the tracks covered by the snapshot.
func (s TrackSnapshot) Tracks() []Track {
	out := make([]Track, 0, len(s.tracks))
	for t := range s.tracks {
		out = append(out, t)
	}
	return out
}

// SnapshotTracks captures the given tracks so a multi-step mutation can be
// rolled back with Restore.
func (r *Registry) SnapshotTracks(ts ...Track) TrackSnapshot {
	s := TrackSnapshot{
		tracks:   make(map[Track]bool, len(ts)),
		entities: make(map[ID]*Entity),
		edges:    make(map[Edge]float32),
	}
	for _, t := range ts {
		s.tracks[t] = r.HasTrack(t)
		for id := range r.byTrack[t] {
			s.entities[id] = r.arena[id].Clone()
		}
	}
	for e, w := range r.graph.Edges() {
		_, from := s.entities[e.From]
		_, to := s.entities[e.To]
		if from || to {
			s.edges[e] = w
		}
	}
	return s
}

// Restore puts the captured tracks back exactly as they were: entities
// captured by the snapshot regain their state and IDs, and entities that
// entered those tracks afterwards are removed.
func (r *Registry) Restore(s TrackSnapshot) {
	for t := range s.tracks {
		for _, id := range r.ObjectsOnTrack(t) {
			if _, ok := s.entities[id]; !ok {
				r.removeObject(id)
			}
		}
	}
	for id, snap := range s.entities {
		e := snap.Clone()
		if cur := r.arena[id]; cur != nil {
			r.unplace(id, cur.Track())
			r.arena[id] = e
			r.place(id, e.Track())
			continue
		}
		r.arena[id] = e
		r.byKey[e.Key()] = id
		r.byName[e.Name()] = append(r.byName[e.Name()], id)
		r.place(id, e.Track())
		r.live++
	}
	for t, registered := range s.tracks {
		if registered {
			r.tracks[t] = struct{}{}
		} else if len(r.byTrack[t]) == 0 {
			delete(r.tracks, t)
		}
	}
	for e, w := range s.edges {
		if r.isVertexCandidate(e.From) && r.isVertexCandidate(e.To) {
			_ = r.graph.SetEdge(e.From, e.To, w)
		}
	}
	r.log.Debug("orbit.restore", "tracks", len(s.tracks), "entities", len(s.entities))
}
