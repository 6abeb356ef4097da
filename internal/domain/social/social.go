// Package social models a social network circle: a central user with
// friends placed on rings by their relation distance.
package social

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/orbit"
)

// ExpansionThreshold is the smallest accumulated intimacy that still counts
// as reachable in Expansion.
const ExpansionThreshold = 0.02

var (
	ErrWeightRange = errors.New("social: intimacy must be in (0, 1]")
	ErrNoCenter    = errors.New("social: central user is not set")
)

// TruncationWarning reports an intimacy with more than three decimals. The
// relation is stored with the truncated value.
type TruncationWarning struct {
	Given  float32
	Stored float32
}

func (w *TruncationWarning) Error() string {
	return fmt.Sprintf("social: %v has more than 3 decimals, truncated to %v", w.Given, w.Stored)
}

// Circle is a social network circle.
type Circle struct {
	reg      *orbit.Registry
	deferred bool
}

var _ domain.System = (*Circle)(nil)

// New creates an empty circle.
func New(opts ...orbit.Option) *Circle {
	opts = append(opts, orbit.WithChecker(orbit.CheckFunc(check)))
	return &Circle{reg: orbit.NewRegistry(opts...)}
}

func (c *Circle) Kind() domain.Kind         { return domain.Social }
func (c *Circle) Registry() *orbit.Registry { return c.reg }

// SetCenter installs the central user and relayouts the circle.
func (c *Circle) SetCenter(name string, p Profile) *orbit.Entity {
	prev := c.reg.ChangeCenter(orbit.NewEntityOn(name, orbit.MustTrack(0), 0, &CentralUser{Profile: p}))
	c.relayout()
	return prev
}

// AddFriend adds a user on the unassigned track.
func (c *Circle) AddFriend(name string, p Profile) (orbit.ID, error) {
	return c.AddObject(orbit.NewEntityOn(name, orbit.Unassigned, 0, &User{Profile: p}))
}

// AddObject adds a user entity. It starts unassigned until a relation
// places it on a ring.
func (c *Circle) AddObject(e *orbit.Entity) (orbit.ID, error) {
	id, err := c.reg.AddObject(e)
	if err != nil {
		return id, err
	}
	if !e.Track().IsUnassigned() {
		if err := c.reg.MoveObject(id, orbit.Unassigned); err != nil {
			return id, err
		}
	}
	c.relayout()
	return id, nil
}

// RemoveObject removes a user and relayouts the circle.
func (c *Circle) RemoveObject(id orbit.ID) bool {
	if !c.reg.RemoveObject(id) {
		return false
	}
	c.relayout()
	return true
}

// SetRelation sets the intimacy from a to b; 0 removes the relation.
// Values with more than three decimals are truncated and reported with a
// *TruncationWarning after the relation is stored.
func (c *Circle) SetRelation(a, b orbit.ID, w float32) error {
	if w == 0 {
		if err := c.reg.SetRelation(a, b, 0); err != nil {
			return err
		}
		c.relayout()
		return nil
	}
	stored, truncated := Truncate(w)
	if stored <= 0 || stored > 1 {
		return fmt.Errorf("%w: %v", ErrWeightRange, w)
	}
	if err := c.reg.SetRelation(a, b, stored); err != nil {
		return err
	}
	c.relayout()
	if truncated {
		return &TruncationWarning{Given: w, Stored: stored}
	}
	return nil
}

// Bulk runs fn with relayout suspended and relayouts once afterwards.
// Loaders use it to add many users and relations cheaply.
func (c *Circle) Bulk(fn func() error) error {
	c.deferred = true
	err := fn()
	c.deferred = false
	c.relayout()
	return err
}

// Truncate cuts w to three decimals using its shortest decimal form.
func Truncate(w float32) (float32, bool) {
	s := strconv.FormatFloat(float64(w), 'f', -1, 32)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= 3 {
		return w, false
	}
	v, err := strconv.ParseFloat(s[:dot+4], 32)
	if err != nil {
		return w, false
	}
	return float32(v), true
}

// relayout puts every user on the ring equal to its hop distance from the
// center, parks unreachable users on the unassigned track, compacts empty
// rings and drops relations pointing inward.
func (c *Circle) relayout() {
	if c.deferred {
		return
	}
	g := c.reg.Graph()
	center := c.reg.CenterID()
	var depth map[orbit.ID]int
	if center != orbit.NoID {
		depth = analysis.Reachable(g, center)
	}
	rings := make(map[orbit.Track][]orbit.ID)
	for _, id := range c.reg.Entities() {
		want := orbit.Unassigned
		if d, ok := depth[id]; ok {
			want = orbit.MustTrack(float64(d))
		}
		e, _ := c.reg.Entity(id)
		if e.Track() != want {
			_ = c.reg.MoveObject(id, want)
		}
		rings[want] = append(rings[want], id)
	}
	c.reg.CompactTracks()

	for edge := range g.Edges() {
		if c.major(edge.From) > c.major(edge.To) {
			_ = c.reg.SetRelation(edge.From, edge.To, 0)
		}
	}
	for _, ids := range rings {
		for k, id := range ids {
			_ = c.reg.SetAngle(id, 360*float64(k)/float64(len(ids)))
		}
	}
	c.reg.CheckRepresentation()
}

func (c *Circle) major(id orbit.ID) float64 {
	e, ok := c.reg.Entity(id)
	if !ok {
		return orbit.UnassignedRadius
	}
	return e.Track().Major
}

// Expansion counts the users reachable outward from user through relations
// whose accumulated intimacy stays at or above ExpansionThreshold. Relations
// toward an inner ring are not followed.
func (c *Circle) Expansion(user orbit.ID) int {
	if !c.reg.Contains(user) {
		return 0
	}
	g := c.reg.Graph()
	best := map[orbit.ID]float32{user: 1}
	frontier := []orbit.ID{user}
	for len(frontier) > 0 {
		var next []orbit.ID
		for _, u := range frontier {
			for v, w := range g.Targets(u) {
				if v == c.reg.CenterID() || c.major(v) < c.major(u) {
					continue
				}
				acc := best[u] * w
				if acc < ExpansionThreshold || acc <= best[v] {
					continue
				}
				best[v] = acc
				next = append(next, v)
			}
		}
		frontier = next
	}
	return len(best) - 1
}

// Ring returns the users on ring n (n >= 1), or the unassigned users for n = -1.
func (c *Circle) Ring(n int) []orbit.ID {
	return c.reg.ObjectsOnTrack(orbit.MustTrack(float64(n)))
}

func check(r *orbit.Registry) error {
	center := r.CenterID()
	g := r.Graph()
	for _, id := range r.Entities() {
		e, _ := r.Entity(id)
		want := -1
		if center != orbit.NoID {
			want = analysis.LogicalDistance(g, center, id)
		}
		if e.Track().Major != float64(want) {
			return fmt.Errorf("%s is on ring %s but %d hops from the center", e.Name(), e.Track(), want)
		}
	}
	return nil
}
