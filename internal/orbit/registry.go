package orbit

import (
	"fmt"
	"log/slog"
	"sort"
)

// Checker asserts domain-specific invariants on top of the base ones.
// A non-nil error is turned into a RepresentationViolation panic.
type Checker interface {
	Check(r *Registry) error
}

// CheckFunc adapts a function to the Checker interface.
type CheckFunc func(r *Registry) error

func (f CheckFunc) Check(r *Registry) error { return f(r) }

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes the mutation audit trail to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithChecker installs the domain representation check.
func WithChecker(c Checker) Option {
	return func(r *Registry) { r.checker = c }
}

// Registry owns the tracks, the entities, an optional center and the
// relation graph, and keeps them referentially consistent.
type Registry struct {
	arena   []*Entity // indexed by ID; nil once removed
	center  ID
	live    int
	byKey   map[Key]ID
	byName  map[string][]ID
	byTrack map[Track]map[ID]struct{}
	tracks  map[Track]struct{}
	graph   *Graph
	checker Checker
	log     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		center:  NoID,
		byKey:   make(map[Key]ID),
		byName:  make(map[string][]ID),
		byTrack: make(map[Track]map[ID]struct{}),
		tracks:  make(map[Track]struct{}),
		graph:   NewGraph(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddTrack registers the track built from radii and reports whether it was new.
func (r *Registry) AddTrack(radii ...float64) (bool, error) {
	t, err := NewTrack(radii...)
	if err != nil {
		return false, err
	}
	r.log.Debug("orbit.add_track", "track", t.String())
	return r.addTrack(t), nil
}

func (r *Registry) addTrack(t Track) bool {
	if _, ok := r.tracks[t]; ok {
		return false
	}
	r.tracks[t] = struct{}{}
	return true
}

// HasTrack reports whether t is registered.
func (r *Registry) HasTrack(t Track) bool {
	_, ok := r.tracks[t]
	return ok
}

// RemoveTrack unregisters a track and every entity currently on it. It
// reports whether the track existed.
func (r *Registry) RemoveTrack(radii ...float64) (bool, error) {
	t, err := NewTrack(radii...)
	if err != nil {
		return false, err
	}
	return r.removeTrack(t), nil
}

func (r *Registry) removeTrack(t Track) bool {
	_, existed := r.tracks[t]
	delete(r.tracks, t)
	for _, id := range r.ObjectsOnTrack(t) {
		r.removeObject(id)
	}
	r.log.Debug("orbit.remove_track", "track", t.String(), "existed", existed)
	return existed
}

// ChangeCenter installs e as the center and returns the previous one (nil
// if there was none). Installing an entity with the center's identity is a
// no-op that returns the current center. A nil e clears the center.
func (r *Registry) ChangeCenter(e *Entity) *Entity {
	var prev *Entity
	if r.center != NoID {
		prev = r.arena[r.center]
	}
	if e != nil && prev != nil && SameIdentity(prev, e) {
		return prev.Clone()
	}
	if prev != nil {
		r.graph.RemoveVertex(r.center)
		r.arena[r.center] = nil
		r.center = NoID
	}
	if e != nil {
		r.center = r.alloc(e)
		r.log.Debug("orbit.change_center", "name", e.Name())
	}
	return prev
}

func (r *Registry) alloc(e *Entity) ID {
	r.arena = append(r.arena, e)
	return ID(len(r.arena) - 1)
}

// AddObject registers e and its current track. The registry takes
// ownership of e; callers must not mutate it afterwards except through the
// registry.
func (r *Registry) AddObject(e *Entity) (ID, error) {
	if e == nil {
		return NoID, fmt.Errorf("%w: nil entity", ErrUnknownEntity)
	}
	cur, err := NewTrack(e.Track().Radii()...)
	if err != nil {
		return NoID, err
	}
	initial, err := NewTrack(e.InitialTrack().Radii()...)
	if err != nil {
		return NoID, err
	}
	e.track, e.initTrack = cur, initial
	key := e.Key()
	if _, dup := r.byKey[key]; dup {
		return NoID, fmt.Errorf("%w: %s", ErrDuplicateIdentity, key)
	}
	id := r.alloc(e)
	r.byKey[key] = id
	r.byName[e.Name()] = append(r.byName[e.Name()], id)
	r.place(id, e.Track())
	r.addTrack(e.Track())
	r.live++
	r.log.Debug("orbit.add_object", "id", int(id), "name", e.Name(), "track", e.Track().String())
	return id, nil
}

func (r *Registry) place(id ID, t Track) {
	set := r.byTrack[t]
	if set == nil {
		set = make(map[ID]struct{})
		r.byTrack[t] = set
	}
	set[id] = struct{}{}
}

func (r *Registry) unplace(id ID, t Track) {
	set := r.byTrack[t]
	delete(set, id)
	if len(set) == 0 {
		delete(r.byTrack, t)
	}
}

// object returns the live, non-center entity for id.
func (r *Registry) object(id ID) (*Entity, bool) {
	if id < 0 || int(id) >= len(r.arena) || id == r.center {
		return nil, false
	}
	e := r.arena[id]
	return e, e != nil
}

// Contains reports whether id is a live entity (the center is not one).
func (r *Registry) Contains(id ID) bool {
	_, ok := r.object(id)
	return ok
}

// MoveObject reassigns an entity to track to, registering to if needed.
// The source track stays registered even if it becomes empty.
func (r *Registry) MoveObject(id ID, to Track) error {
	e, ok := r.object(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	to, err := NewTrack(to.Radii()...)
	if err != nil {
		return err
	}
	from := e.Track()
	r.unplace(id, from)
	e.SetTrack(to)
	r.place(id, to)
	r.addTrack(to)
	r.log.Debug("orbit.move_object", "id", int(id), "from", from.String(), "to", to.String())
	return nil
}

// SetAngle updates an entity's current angle (degrees).
func (r *Registry) SetAngle(id ID, deg float64) error {
	e, ok := r.object(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	e.SetAngle(deg)
	return nil
}

// UpdatePayload replaces an entity's payload in place.
func (r *Registry) UpdatePayload(id ID, p Payload) error {
	e, ok := r.object(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	e.payload = p
	return nil
}

// RemoveObject removes an entity from the entity set and the graph.
func (r *Registry) RemoveObject(id ID) bool {
	if !r.Contains(id) {
		return false
	}
	r.removeObject(id)
	return true
}

func (r *Registry) removeObject(id ID) {
	e := r.arena[id]
	r.unplace(id, e.Track())
	delete(r.byKey, e.Key())
	r.byName[e.Name()] = removeID(r.byName[e.Name()], id)
	if len(r.byName[e.Name()]) == 0 {
		delete(r.byName, e.Name())
	}
	r.graph.RemoveVertex(id)
	r.arena[id] = nil
	r.live--
	r.log.Debug("orbit.remove_object", "id", int(id), "name", e.Name())
}

func removeID(ids []ID, id ID) []ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// SetRelation sets the weight of a→b in the relation graph; 0 removes it.
func (r *Registry) SetRelation(a, b ID, weight float32) error {
	if a == b {
		return fmt.Errorf("%w: %d", ErrSelfLoop, a)
	}
	if !r.isVertexCandidate(a) || !r.isVertexCandidate(b) {
		return fmt.Errorf("%w: relation %d->%d", ErrUnknownEntity, a, b)
	}
	r.log.Debug("orbit.set_relation", "from", int(a), "to", int(b), "weight", weight)
	return r.graph.SetEdge(a, b, weight)
}

func (r *Registry) isVertexCandidate(id ID) bool {
	return (id != NoID && id == r.center) || r.Contains(id)
}

// CompactTracks removes every registered track that holds no entity and
// returns how many were removed.
func (r *Registry) CompactTracks() int {
	n := 0
	for t := range r.tracks {
		if len(r.byTrack[t]) == 0 {
			delete(r.tracks, t)
			n++
		}
	}
	if n > 0 {
		r.log.Debug("orbit.compact_tracks", "removed", n)
	}
	return n
}

// CheckRepresentation verifies the base invariants and the installed
// Checker. It panics with *RepresentationViolation on failure.
func (r *Registry) CheckRepresentation() {
	if err := r.Validate(); err != nil {
		panic(err)
	}
}

// Validate is CheckRepresentation for untrusted input: the violation is
// returned as a *RepresentationViolation instead of raised.
func (r *Registry) Validate() error {
	seen := 0
	for i, e := range r.arena {
		id := ID(i)
		if e == nil || id == r.center {
			continue
		}
		seen++
		if !r.HasTrack(e.Track()) {
			return violation("track-registered", "%s is on unregistered track %s", e.Name(), e.Track())
		}
		if _, ok := r.byTrack[e.Track()][id]; !ok {
			return violation("track-index", "%s missing from index of %s", e.Name(), e.Track())
		}
		if got, ok := r.byKey[e.Key()]; !ok || got != id {
			return violation("identity-unique", "%s indexed as %d, want %d", e.Key(), got, id)
		}
	}
	if seen != r.live || len(r.byKey) != r.live {
		return violation("identity-unique", "live=%d seen=%d keys=%d", r.live, seen, len(r.byKey))
	}
	for _, v := range r.graph.Vertices() {
		if !r.isVertexCandidate(v) {
			return violation("graph-vertices", "vertex %d is neither center nor entity", v)
		}
	}
	if r.checker != nil {
		if err := r.checker.Check(r); err != nil {
			return violation("domain", "%v", err)
		}
	}
	return nil
}

// Clone returns an independent deep copy with the same IDs, checker and logger.
func (r *Registry) Clone() *Registry {
	c := NewRegistry(WithLogger(r.log), WithChecker(r.checker))
	c.center = r.center
	c.live = r.live
	c.arena = make([]*Entity, len(r.arena))
	for i, e := range r.arena {
		if e != nil {
			c.arena[i] = e.Clone()
		}
	}
	for k, id := range r.byKey {
		c.byKey[k] = id
	}
	for n, ids := range r.byName {
		c.byName[n] = append([]ID(nil), ids...)
	}
	for t, set := range r.byTrack {
		cs := make(map[ID]struct{}, len(set))
		for id := range set {
			cs[id] = struct{}{}
		}
		c.byTrack[t] = cs
	}
	for t := range r.tracks {
		c.tracks[t] = struct{}{}
	}
	c.graph = r.graph.Clone()
	return c
}

func (r *Registry) sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool {
		if c := CompareEntities(r.arena[ids[i]], r.arena[ids[j]]); c != 0 {
			return c < 0
		}
		return ids[i] < ids[j]
	})
}
