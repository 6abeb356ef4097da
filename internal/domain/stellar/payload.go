package stellar

import (
	"fmt"

	"github.com/san-kum/orbsim/internal/orbit"
)

const (
	TagStar   orbit.Tag = "star"
	TagPlanet orbit.Tag = "planet"
)

// Star is the fixed center of a stellar system.
type Star struct {
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
}

func (s *Star) Tag() orbit.Tag { return TagStar }

func (s *Star) ClonePayload() orbit.Payload {
	c := *s
	return &c
}

// Form is the physical state of a planet.
type Form string

const (
	Solid  Form = "Solid"
	Liquid Form = "Liquid"
	Gas    Form = "Gas"
)

// ParseForm accepts Solid, Liquid or Gas.
func ParseForm(s string) (Form, error) {
	switch f := Form(s); f {
	case Solid, Liquid, Gas:
		return f, nil
	}
	return "", fmt.Errorf("stellar: unknown form: %s", s)
}

// Planet carries the physical description of a planet. Speed is the linear
// revolution speed; the angular speed follows from the orbit radius.
type Planet struct {
	Form      Form    `json:"form"`
	Color     string  `json:"color"`
	Radius    float64 `json:"radius"`
	Speed     float64 `json:"speed"`
	Clockwise bool    `json:"clockwise"`
}

func (p *Planet) Tag() orbit.Tag { return TagPlanet }

func (p *Planet) ClonePayload() orbit.Payload {
	c := *p
	return &c
}

// Direction renders the revolution direction as CW or CCW.
func (p *Planet) Direction() string {
	if p.Clockwise {
		return "CW"
	}
	return "CCW"
}

func init() {
	orbit.RegisterPayload(TagStar, orbit.DecodeJSON[Star]())
	orbit.RegisterPayload(TagPlanet, orbit.DecodeJSON[Planet]())
}
