package stellar

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/orbit"
)

func solarSystem(t *testing.T) (*System, orbit.ID, orbit.ID) {
	t.Helper()
	s := New()
	s.SetStar("Sun", Star{Radius: 6.96392e5, Mass: 1.9885e30})
	earth, err := s.AddPlanet("Earth", Planet{Form: Solid, Color: "Blue", Radius: 6378.137, Speed: 30}, 0, 1.496e8)
	require.NoError(t, err)
	mars, err := s.AddPlanet("Mars", Planet{Form: Solid, Color: "Red", Radius: 3396, Speed: 24, Clockwise: true}, 90, 2.279e8)
	require.NoError(t, err)
	return s, earth, mars
}

func TestAddPlanetRejectsOccupiedTrack(t *testing.T) {
	s, _, _ := solarSystem(t)
	_, err := s.AddPlanet("Theia", Planet{Form: Solid, Radius: 1}, 45, 1.496e8)
	assert.True(t, errors.Is(err, ErrTrackOccupied))
	assert.Equal(t, 2, s.Registry().Len())

	_, err = s.AddObject(orbit.NewEntityOn("rock", orbit.MustTrack(5), 0, nil))
	assert.ErrorIs(t, err, ErrNotPlanet)
	s.Registry().CheckRepresentation()
}

func TestRemovePlanetRemovesTrack(t *testing.T) {
	s, earth, _ := solarSystem(t)
	require.True(t, s.RemoveObject(earth))
	assert.Equal(t, []orbit.Track{orbit.MustTrack(2.279e8)}, s.Registry().Tracks())
	assert.False(t, s.RemoveObject(earth))
	assert.False(t, s.RemoveObject(s.Registry().CenterID()))
}

func TestAngularSpeed(t *testing.T) {
	e := orbit.NewEntityOn("p", orbit.MustTrack(2), 0, nil)
	ccw := &Planet{Speed: math.Pi}
	cw := &Planet{Speed: -math.Pi, Clockwise: true}
	assert.InDelta(t, 90.0, AngularSpeed(e, ccw), 1e-9)
	assert.InDelta(t, -90.0, AngularSpeed(e, cw), 1e-9)
}

func TestSetTime(t *testing.T) {
	s := New()
	s.SetStar("Sun", Star{Radius: 1, Mass: 1})
	id, err := s.AddPlanet("P", Planet{Form: Gas, Radius: 0.1, Speed: math.Pi}, 10, 2)
	require.NoError(t, err)
	cw, err := s.AddPlanet("Q", Planet{Form: Gas, Radius: 0.1, Speed: math.Pi, Clockwise: true}, 10, 4)
	require.NoError(t, err)

	require.NoError(t, s.SetTime(1))
	p, _ := s.Registry().Entity(id)
	assert.InDelta(t, 100.0, p.Angle(), 1e-9)
	q, _ := s.Registry().Entity(cw)
	assert.InDelta(t, 360-35.0, q.Angle(), 1e-9)

	require.NoError(t, s.Step(1, 3))
	p, _ = s.Registry().Entity(id)
	assert.InDelta(t, 10.0, p.Angle(), 1e-9, "four quarter turns wrap around")
	assert.Equal(t, 4.0, s.Time())

	require.NoError(t, s.Reset())
	p, _ = s.Registry().Entity(id)
	assert.InDelta(t, 10.0, p.Angle(), 1e-9)
	assert.Equal(t, 0.0, s.Time())
}

func TestPhysicalDistanceBetweenPlanets(t *testing.T) {
	s := New()
	a, err := s.AddPlanet("A", Planet{Form: Solid, Radius: 0.5}, 0, 3)
	require.NoError(t, err)
	b, err := s.AddPlanet("B", Planet{Form: Solid, Radius: 0.5}, 90, 4)
	require.NoError(t, err)
	ea, _ := s.Registry().Entity(a)
	eb, _ := s.Registry().Entity(b)
	assert.InDelta(t, 5.0, analysis.PhysicalDistance(ea, eb), 1e-9)
}

func TestAddPlanetRejectsOverlap(t *testing.T) {
	s := New()
	_, err := s.AddPlanet("Big", Planet{Form: Gas, Radius: 5}, 0, 3)
	require.NoError(t, err)

	_, err = s.AddPlanet("Near", Planet{Form: Gas, Radius: 1}, 0, 4)
	require.ErrorIs(t, err, ErrOverlap)
	assert.Contains(t, err.Error(), "Near overlaps Big")

	_, err = s.AddPlanet("Inside", Planet{Form: Gas, Radius: 1.5}, 0, 2, 1)
	require.ErrorIs(t, err, ErrOverlap)
	assert.Contains(t, err.Error(), "Big overlaps Inside")

	_, err = s.AddPlanet("Tiny", Planet{Form: Gas, Radius: 0.5}, 0, 1, 0)
	require.ErrorIs(t, err, ErrOverlap, "a zero minor radius touches the star")

	_, err = s.AddPlanet("Far", Planet{Form: Gas, Radius: 1}, 0, 9, 8.5)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Registry().Len())
	assert.NoError(t, s.Registry().Validate())
}

func TestCheckDetectsOverlap(t *testing.T) {
	s := New()
	_, err := s.AddPlanet("Big", Planet{Form: Gas, Radius: 5}, 0, 3)
	require.NoError(t, err)
	near, err := orbit.NewEntity("Near", 0, &Planet{Form: Gas, Radius: 1}, 4)
	require.NoError(t, err)
	_, err = s.Registry().AddObject(near)
	require.NoError(t, err)
	assert.Panics(t, s.Registry().CheckRepresentation)
}
