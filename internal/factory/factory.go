// Package factory builds entities from string field lists, one typed
// builder per payload tag.
package factory

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/domain/stellar"
	"github.com/san-kum/orbsim/internal/orbit"
)

var ErrArity = errors.New("factory: wrong number of fields")

// BuildFunc turns trimmed fields into an entity. len(fields) is checked
// against the hint before it is called.
type BuildFunc func(fields []string) (*orbit.Entity, error)

type builder struct {
	hint  []string
	build BuildFunc
}

type Registry struct {
	builders map[orbit.Tag]builder
}

// NewRegistry returns a registry with builders for every domain payload.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[orbit.Tag]builder)}

	r.Register(stellar.TagStar, []string{"Name", "Stellar radius", "Mass"}, buildStar)
	r.Register(stellar.TagPlanet, []string{"Name", "Form", "Color", "Planet radius",
		"Revolution radius", "Revolution speed", "Direction", "Position"}, buildPlanet)
	r.Register(atom.TagNucleus, []string{"Element"}, buildNucleus)
	r.Register(atom.TagElectron, []string{"Shell", "Position"}, buildElectron)
	r.Register(social.TagCentralUser, []string{"Name", "Age", "Gender"}, buildCentralUser)
	r.Register(social.TagUser, []string{"Name", "Age", "Gender"}, buildUser)

	return r
}

// Register installs or replaces the builder for tag.
func (r *Registry) Register(tag orbit.Tag, hint []string, fn BuildFunc) {
	r.builders[tag] = builder{hint: hint, build: fn}
}

// Produce builds an entity of the given tag.
func (r *Registry) Produce(tag orbit.Tag, fields []string) (*orbit.Entity, error) {
	b, ok := r.builders[tag]
	if !ok {
		return nil, fmt.Errorf("unknown kind: %s", tag)
	}
	if len(fields) != len(b.hint) {
		return nil, fmt.Errorf("%w: %s wants %d (%s), got %d",
			ErrArity, tag, len(b.hint), strings.Join(b.hint, ", "), len(fields))
	}
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	e, err := b.build(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return e, nil
}

// Kinds lists the registered tags.
func (r *Registry) Kinds() []orbit.Tag {
	out := make([]orbit.Tag, 0, len(r.builders))
	for t := range r.builders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Hint returns the field names a tag expects.
func (r *Registry) Hint(tag orbit.Tag) ([]string, bool) {
	b, ok := r.builders[tag]
	if !ok {
		return nil, false
	}
	return append([]string(nil), b.hint...), true
}

func parseFloat(label, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %s %q", label, s)
	}
	return v, nil
}

func parseInt(label, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %s %q", label, s)
	}
	return v, nil
}

func buildStar(f []string) (*orbit.Entity, error) {
	radius, err := parseFloat("radius", f[1])
	if err != nil {
		return nil, err
	}
	mass, err := parseFloat("mass", f[2])
	if err != nil {
		return nil, err
	}
	return orbit.NewEntityOn(f[0], orbit.MustTrack(0), 0, &stellar.Star{Radius: radius, Mass: mass}), nil
}

func buildPlanet(f []string) (*orbit.Entity, error) {
	form, err := stellar.ParseForm(f[1])
	if err != nil {
		return nil, err
	}
	var nums [4]float64
	for i, idx := range []int{3, 4, 5, 7} {
		if nums[i], err = parseFloat(planetLabels[idx], f[idx]); err != nil {
			return nil, err
		}
	}
	var clockwise bool
	switch f[6] {
	case "CW":
		clockwise = true
	case "CCW":
	default:
		return nil, fmt.Errorf("unknown direction %q", f[6])
	}
	p := &stellar.Planet{Form: form, Color: f[2], Radius: nums[0], Speed: nums[2], Clockwise: clockwise}
	return orbit.NewEntity(f[0], nums[3], p, nums[1])
}

var planetLabels = map[int]string{3: "planet radius", 4: "revolution radius", 5: "speed", 7: "position"}

func buildNucleus(f []string) (*orbit.Entity, error) {
	return orbit.NewEntityOn(f[0], orbit.MustTrack(0), 0, &atom.Nucleus{Element: f[0]}), nil
}

func buildElectron(f []string) (*orbit.Entity, error) {
	shell, err := parseInt("shell", f[0])
	if err != nil {
		return nil, err
	}
	t, err := atom.Shell(shell)
	if err != nil {
		return nil, err
	}
	angle, err := parseFloat("position", f[1])
	if err != nil {
		return nil, err
	}
	return orbit.NewEntityOn(atom.ElectronName, t, angle, &atom.Electron{}), nil
}

func parseProfile(f []string) (social.Profile, error) {
	age, err := parseInt("age", f[1])
	if err != nil {
		return social.Profile{}, err
	}
	if age < 0 {
		return social.Profile{}, fmt.Errorf("negative age %d", age)
	}
	g, err := social.ParseGender(f[2])
	if err != nil {
		return social.Profile{}, err
	}
	return social.Profile{Age: age, Gender: g}, nil
}

func buildCentralUser(f []string) (*orbit.Entity, error) {
	p, err := parseProfile(f)
	if err != nil {
		return nil, err
	}
	return orbit.NewEntityOn(f[0], orbit.MustTrack(0), 0, &social.CentralUser{Profile: p}), nil
}

func buildUser(f []string) (*orbit.Entity, error) {
	p, err := parseProfile(f)
	if err != nil {
		return nil, err
	}
	return orbit.NewEntityOn(f[0], orbit.Unassigned, 0, &social.User{Profile: p}), nil
}
