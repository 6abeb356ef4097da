// Package atom models an atomic shell structure: a nucleus and electrons on
// integer shells that can transit between shells.
package atom

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/orbit"
)

// ElectronName is the name every electron carries.
const ElectronName = "e"

var (
	ErrSameShell       = errors.New("atom: transit needs two different shells")
	ErrUnknownShell    = errors.New("atom: shell is not registered")
	ErrNotEnough       = errors.New("atom: not enough electrons to transit")
	ErrInvalidShell    = errors.New("atom: shells are positive integers")
	ErrInvalidQuantity = errors.New("atom: electron count must be positive")
)

// Structure is an atom.
type Structure struct {
	reg *orbit.Registry
	log *slog.Logger
}

var _ domain.System = (*Structure)(nil)

// New creates an atom of the given element with shells 1..shells.
func New(element string, shells int, opts ...orbit.Option) (*Structure, error) {
	s := &Structure{log: slog.New(slog.DiscardHandler)}
	opts = append(opts, orbit.WithChecker(orbit.CheckFunc(check)))
	s.reg = orbit.NewRegistry(opts...)
	s.reg.ChangeCenter(orbit.NewEntityOn(element, orbit.MustTrack(0), 0, &Nucleus{Element: element}))
	for i := 1; i <= shells; i++ {
		if _, err := s.reg.AddTrack(float64(i)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithLogger sets the logger used for transit reports.
func (s *Structure) WithLogger(l *slog.Logger) *Structure {
	if l != nil {
		s.log = l
	}
	return s
}

func (s *Structure) Kind() domain.Kind         { return domain.Atom }
func (s *Structure) Registry() *orbit.Registry { return s.reg }

// Element returns the element symbol of the nucleus.
func (s *Structure) Element() string {
	c, _ := s.reg.Center()
	if c == nil {
		return ""
	}
	return c.Name()
}

// Shell returns the track of shell n.
func Shell(n int) (orbit.Track, error) {
	if n < 1 {
		return orbit.Track{}, fmt.Errorf("%w: %d", ErrInvalidShell, n)
	}
	return orbit.MustTrack(float64(n)), nil
}

// Populate puts n ground-state electrons on shell, spread evenly around it.
// The shell is registered if needed.
func (s *Structure) Populate(shell, n int) error {
	t, err := Shell(shell)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	used := make(map[float64]bool)
	for _, id := range s.reg.Entities() {
		e, _ := s.reg.Entity(id)
		if e.InitialTrack() == t {
			used[e.InitialAngle()] = true
		}
	}
	total := len(used) + n
	for k := len(used); k < total; k++ {
		angle := 360 * float64(k) / float64(total)
		for nudge := 180 / float64(total); used[angle]; nudge /= 2 {
			angle = math.Mod(angle+nudge, 360)
		}
		used[angle] = true
		if _, err := s.reg.AddObject(orbit.NewEntityOn(ElectronName, t, angle, &Electron{})); err != nil {
			return err
		}
	}
	return nil
}

// Transit moves n electrons from one shell to another. Moving outward takes
// ground electrons and excites them; moving inward takes excited electrons
// and grounds them. Either every electron moves or none does.
func (s *Structure) Transit(from, to orbit.Track, n int) error {
	if from == to {
		return ErrSameShell
	}
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	for _, t := range []orbit.Track{from, to} {
		if !s.reg.HasTrack(t) {
			return fmt.Errorf("%w: %s", ErrUnknownShell, t)
		}
	}
	up := to.Major > from.Major
	snap := s.reg.SnapshotTracks(from, to)
	for i := 0; i < n; i++ {
		id, ok := s.candidate(from, up)
		if !ok {
			s.reg.Restore(snap)
			return fmt.Errorf("%w: wanted %d from shell %s, moved %d", ErrNotEnough, n, from, i)
		}
		if err := s.reg.MoveObject(id, to); err != nil {
			s.reg.Restore(snap)
			return err
		}
		if err := s.reg.UpdatePayload(id, &Electron{Excited: up}); err != nil {
			s.reg.Restore(snap)
			return err
		}
	}
	s.log.Info("atom.transit", "from", from.String(), "to", to.String(), "count", n)
	return nil
}

func (s *Structure) candidate(from orbit.Track, up bool) (orbit.ID, bool) {
	for _, id := range s.reg.ObjectsOnTrack(from) {
		e, _ := s.reg.Entity(id)
		el, ok := e.Payload().(*Electron)
		if ok && el.Excited != up {
			return id, true
		}
	}
	return orbit.NoID, false
}

// Electrons returns the number of electrons on each shell, innermost first.
func (s *Structure) Electrons() []int {
	tracks := s.reg.Tracks()
	out := make([]int, len(tracks))
	for i, t := range tracks {
		out[i] = len(s.reg.ObjectsOnTrack(t))
	}
	return out
}

func check(r *orbit.Registry) error {
	if c, _ := r.Center(); c != nil {
		if _, ok := c.Payload().(*Nucleus); !ok {
			return fmt.Errorf("center %s is not a nucleus", c.Name())
		}
	}
	for _, t := range r.Tracks() {
		if !t.IsCircle() || t.Major < 1 || t.Major != math.Trunc(t.Major) {
			return fmt.Errorf("track %s is not a shell", t)
		}
	}
	for _, id := range r.Entities() {
		e, _ := r.Entity(id)
		if _, ok := e.Payload().(*Electron); !ok {
			return fmt.Errorf("%s is not an electron", e)
		}
	}
	return nil
}
