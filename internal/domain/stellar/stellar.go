// Package stellar models a star with planets revolving on their own tracks.
package stellar

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/orbit"
)

var (
	ErrTrackOccupied = errors.New("stellar: track already holds a planet")
	ErrNotPlanet     = errors.New("stellar: entity is not a planet")
	ErrOverlap       = errors.New("stellar: planet overlaps its neighbour")
)

// System is a star and its planets.
type System struct {
	reg  *orbit.Registry
	time float64
}

var _ domain.System = (*System)(nil)

// New creates an empty system. Install the star with SetStar.
func New(opts ...orbit.Option) *System {
	opts = append(opts, orbit.WithChecker(orbit.CheckFunc(check)))
	return &System{reg: orbit.NewRegistry(opts...)}
}

func (s *System) Kind() domain.Kind         { return domain.Stellar }
func (s *System) Registry() *orbit.Registry { return s.reg }

// Time returns the current simulation time.
func (s *System) Time() float64 { return s.time }

// SetStar installs the central star and returns the previous one.
func (s *System) SetStar(name string, star Star) *orbit.Entity {
	return s.reg.ChangeCenter(orbit.NewEntityOn(name, orbit.MustTrack(0), 0, &star))
}

// AddPlanet places a planet on its own track. angle is the initial
// position in degrees.
func (s *System) AddPlanet(name string, p Planet, angle float64, radii ...float64) (orbit.ID, error) {
	e, err := orbit.NewEntity(name, angle, &p, radii...)
	if err != nil {
		return orbit.NoID, err
	}
	return s.AddObject(e)
}

// AddObject registers a planet entity, rejecting occupied tracks and
// planets that would overlap a neighbour.
func (s *System) AddObject(e *orbit.Entity) (orbit.ID, error) {
	if _, ok := e.Payload().(*Planet); !ok {
		return orbit.NoID, fmt.Errorf("%w: %s", ErrNotPlanet, e.Name())
	}
	t, err := orbit.NewTrack(e.Track().Radii()...)
	if err != nil {
		return orbit.NoID, err
	}
	if s.reg.HasTrack(t) {
		return orbit.NoID, fmt.Errorf("%w: %s", ErrTrackOccupied, t)
	}
	if err := s.fits(e.Name(), t, e.Payload().(*Planet).Radius); err != nil {
		return orbit.NoID, err
	}
	return s.reg.AddObject(e)
}

// fits checks that a planet of the given radius on t clears the planet
// inside it and the planet outside it. The star counts as reach 0.
func (s *System) fits(name string, t orbit.Track, radius float64) error {
	reach, inner := 0.0, "the star"
	for _, id := range s.reg.Entities() {
		e, _ := s.reg.Entity(id)
		p, ok := e.Payload().(*Planet)
		if !ok {
			continue
		}
		u := e.Track()
		if orbit.CompareTracks(u, t) < 0 {
			reach, inner = u.Major+p.Radius, e.Name()
			continue
		}
		if u.Minor <= t.Major+radius {
			return fmt.Errorf("%w: %s overlaps %s", ErrOverlap, e.Name(), name)
		}
		break
	}
	if t.Minor <= reach {
		return fmt.Errorf("%w: %s overlaps %s", ErrOverlap, name, inner)
	}
	return nil
}

// RemoveObject removes a planet together with its track.
func (s *System) RemoveObject(id orbit.ID) bool {
	e, ok := s.reg.Entity(id)
	if !ok || id == s.reg.CenterID() {
		return false
	}
	removed, _ := s.reg.RemoveTrack(e.Track().Radii()...)
	return removed
}

// AngularSpeed returns the planet's angular speed in degrees per time unit.
// Clockwise planets have negative speed.
func AngularSpeed(e orbit.Object, p *Planet) float64 {
	major := e.InitialTrack().Major
	if major == 0 {
		return 0
	}
	w := math.Abs(p.Speed/major) * 180 / math.Pi
	if p.Clockwise {
		return -w
	}
	return w
}

// SetTime places every planet where it is at time t.
func (s *System) SetTime(t float64) error {
	for _, id := range s.reg.Entities() {
		e, _ := s.reg.Entity(id)
		p, ok := e.Payload().(*Planet)
		if !ok {
			continue
		}
		angle := math.Mod(e.InitialAngle()+AngularSpeed(e, p)*t, 360)
		if angle < 0 {
			angle += 360
		}
		if err := s.reg.SetAngle(id, angle); err != nil {
			return err
		}
	}
	s.time = t
	return nil
}

// Step advances the system from t by dt.
func (s *System) Step(t, dt float64) error {
	return s.SetTime(t + dt)
}

// Reset returns every planet to its initial position.
func (s *System) Reset() error { return s.SetTime(0) }

// Planets returns the planet IDs ordered from the innermost track outward.
func (s *System) Planets() []orbit.ID { return s.reg.Entities() }

func check(r *orbit.Registry) error {
	for t, n := range r.TrackCounts() {
		if n > 1 {
			return fmt.Errorf("track %s holds %d planets", t, n)
		}
	}
	reach := 0.0
	prev := "the star"
	for _, id := range r.Entities() {
		e, _ := r.Entity(id)
		p, ok := e.Payload().(*Planet)
		if !ok {
			return fmt.Errorf("%s is not a planet", e)
		}
		if e.Track().Minor <= reach {
			return fmt.Errorf("%s overlaps %s", e.Name(), prev)
		}
		reach = e.Track().Major + p.Radius
		prev = e.Name()
	}
	return nil
}
