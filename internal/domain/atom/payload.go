package atom

import "github.com/san-kum/orbsim/internal/orbit"

const (
	TagNucleus  orbit.Tag = "nucleus"
	TagElectron orbit.Tag = "electron"
)

// Nucleus is the center of an atom.
type Nucleus struct {
	Element string `json:"element"`
}

func (n *Nucleus) Tag() orbit.Tag { return TagNucleus }

func (n *Nucleus) ClonePayload() orbit.Payload {
	c := *n
	return &c
}

// Electron is an electron on a shell. Excited electrons have transited
// outward and are the only ones allowed to fall back.
type Electron struct {
	Excited bool `json:"excited"`
}

func (e *Electron) Tag() orbit.Tag { return TagElectron }

func (e *Electron) ClonePayload() orbit.Payload {
	c := *e
	return &c
}

func init() {
	orbit.RegisterPayload(TagNucleus, orbit.DecodeJSON[Nucleus]())
	orbit.RegisterPayload(TagElectron, orbit.DecodeJSON[Electron]())
}
