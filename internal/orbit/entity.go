package orbit

import (
	"cmp"
	"fmt"
	"strings"
)

// ID addresses an entity inside a Registry arena. IDs are stable for the
// lifetime of the entity and are never reused by the same registry.
type ID int

// NoID is returned when a lookup misses.
const NoID ID = -1

// Key is the identity of an entity: its name plus where it started.
type Key struct {
	Name  string
	Track Track
	Angle float64
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s/%g", k.Name, k.Track, k.Angle)
}

// Object is the capability set every orbiting thing provides.
type Object interface {
	Name() string
	InitialTrack() Track
	InitialAngle() float64
	Track() Track
	SetTrack(t Track)
	Angle() float64
	SetAngle(deg float64)
	Key() Key
	Clone() *Entity
}

// Entity is the single concrete Object. Domain-specific fields live in the
// tagged Payload.
type Entity struct {
	name      string
	initTrack Track
	initAngle float64
	track     Track
	angle     float64
	payload   Payload
}

var _ Object = (*Entity)(nil)

// NewEntity creates an entity on the track built from radii. Angles are in degrees.
func NewEntity(name string, angle float64, p Payload, radii ...float64) (*Entity, error) {
	t, err := NewTrack(radii...)
	if err != nil {
		return nil, err
	}
	return NewEntityOn(name, t, angle, p), nil
}

// NewEntityOn creates an entity on an already canonical track.
func NewEntityOn(name string, t Track, angle float64, p Payload) *Entity {
	name = strings.TrimSpace(name)
	return &Entity{
		name:      name,
		initTrack: t,
		initAngle: angle,
		track:     t,
		angle:     angle,
		payload:   p,
	}
}

func (e *Entity) Name() string          { return e.name }
func (e *Entity) InitialTrack() Track   { return e.initTrack }
func (e *Entity) InitialAngle() float64 { return e.initAngle }
func (e *Entity) Track() Track          { return e.track }
func (e *Entity) SetTrack(t Track)      { e.track = t }
func (e *Entity) Angle() float64        { return e.angle }
func (e *Entity) SetAngle(deg float64)  { e.angle = deg }
func (e *Entity) Payload() Payload      { return e.payload }

// Tag returns the payload tag, or "" for a bare entity.
func (e *Entity) Tag() Tag {
	if e.payload == nil {
		return ""
	}
	return e.payload.Tag()
}

func (e *Entity) Key() Key {
	return Key{Name: e.name, Track: e.initTrack, Angle: e.initAngle}
}

// Clone returns an independent copy sharing no mutable state.
func (e *Entity) Clone() *Entity {
	c := *e
	if e.payload != nil {
		c.payload = e.payload.ClonePayload()
	}
	return &c
}

func (e *Entity) String() string {
	tag := e.Tag()
	if tag == "" {
		tag = "entity"
	}
	return fmt.Sprintf("%s{%s, %s, %g}", tag, e.name, e.track, e.angle)
}

// SameIdentity reports whether a and b have the same identity, regardless
// of their current track and angle.
func SameIdentity(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// CompareEntities is the default ordering: initial track, then initial
// angle, then name.
func CompareEntities(a, b Object) int {
	if c := CompareTracks(a.InitialTrack(), b.InitialTrack()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.InitialAngle(), b.InitialAngle()); c != 0 {
		return c
	}
	return strings.Compare(a.Name(), b.Name())
}
