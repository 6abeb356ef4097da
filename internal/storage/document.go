package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/domain/stellar"
	"github.com/san-kum/orbsim/internal/orbit"
)

// Document is the serialized form of a domain system.
type Document struct {
	Domain    domain.Kind   `json:"domain" yaml:"domain"`
	Time      float64       `json:"time,omitempty" yaml:"time,omitempty"`
	Tracks    [][2]float64  `json:"tracks" yaml:"tracks"`
	Center    *EntityDoc    `json:"center,omitempty" yaml:"center,omitempty"`
	Entities  []EntityDoc   `json:"entities" yaml:"entities"`
	Relations []RelationDoc `json:"relations,omitempty" yaml:"relations,omitempty"`
}

type EntityDoc struct {
	Name         string          `json:"name" yaml:"name"`
	InitialTrack [2]float64      `json:"initial_track" yaml:"initial_track"`
	InitialAngle float64         `json:"initial_angle" yaml:"initial_angle"`
	Track        [2]float64      `json:"track" yaml:"track"`
	Angle        float64         `json:"angle" yaml:"angle"`
	Payload      json.RawMessage `json:"payload,omitempty" yaml:"-"`
	Kind         orbit.Tag       `json:"-" yaml:"kind,omitempty"`
}

// RelationDoc references entities by their index in Document.Entities;
// CenterRef stands for the center.
type RelationDoc struct {
	From   int     `json:"from" yaml:"from"`
	To     int     `json:"to" yaml:"to"`
	Weight float32 `json:"weight" yaml:"weight"`
}

const CenterRef = -1

func pair(t orbit.Track) [2]float64 { return [2]float64{t.Major, t.Minor} }

func encodeEntity(e *orbit.Entity) (EntityDoc, error) {
	payload, err := orbit.MarshalPayload(e.Payload())
	if err != nil {
		return EntityDoc{}, fmt.Errorf("encode %s: %w", e.Name(), err)
	}
	return EntityDoc{
		Name:         e.Name(),
		InitialTrack: pair(e.InitialTrack()),
		InitialAngle: e.InitialAngle(),
		Track:        pair(e.Track()),
		Angle:        e.Angle(),
		Payload:      payload,
		Kind:         e.Tag(),
	}, nil
}

func (d EntityDoc) decode() (*orbit.Entity, error) {
	initial, err := orbit.NewTrack(d.InitialTrack[:]...)
	if err != nil {
		return nil, err
	}
	current, err := orbit.NewTrack(d.Track[:]...)
	if err != nil {
		return nil, err
	}
	p, err := orbit.UnmarshalPayload(d.Payload)
	if err != nil {
		return nil, err
	}
	e := orbit.NewEntityOn(d.Name, initial, d.InitialAngle, p)
	e.SetTrack(current)
	e.SetAngle(d.Angle)
	return e, nil
}

// Encode captures a system.
func Encode(sys domain.System) (*Document, error) {
	reg := sys.Registry()
	doc := &Document{Domain: sys.Kind()}
	if s, ok := sys.(*stellar.System); ok {
		doc.Time = s.Time()
	}
	for _, t := range reg.Tracks() {
		doc.Tracks = append(doc.Tracks, pair(t))
	}

	index := make(map[orbit.ID]int)
	if c, id := reg.Center(); c != nil {
		ed, err := encodeEntity(c)
		if err != nil {
			return nil, err
		}
		doc.Center = &ed
		index[id] = CenterRef
	}
	for _, id := range reg.Entities() {
		e, _ := reg.Entity(id)
		ed, err := encodeEntity(e)
		if err != nil {
			return nil, err
		}
		index[id] = len(doc.Entities)
		doc.Entities = append(doc.Entities, ed)
	}

	for edge, w := range reg.Graph().Edges() {
		doc.Relations = append(doc.Relations, RelationDoc{From: index[edge.From], To: index[edge.To], Weight: w})
	}
	sort.Slice(doc.Relations, func(i, j int) bool {
		a, b := doc.Relations[i], doc.Relations[j]
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})
	return doc, nil
}

func newSystem(kind domain.Kind, opts []orbit.Option) (domain.System, error) {
	switch kind {
	case domain.Atom:
		return atom.New("", 0, opts...)
	case domain.Stellar:
		return stellar.New(opts...), nil
	case domain.Social:
		return social.New(opts...), nil
	}
	return nil, fmt.Errorf("unknown domain: %s", kind)
}

// Decode rebuilds the system a document describes. The registry is
// restored verbatim and then checked against the domain rules.
func (d *Document) Decode(opts ...orbit.Option) (domain.System, error) {
	sys, err := newSystem(d.Domain, opts)
	if err != nil {
		return nil, err
	}
	reg := sys.Registry()
	reg.ChangeCenter(nil)
	for _, t := range d.Tracks {
		if _, err := reg.AddTrack(t[:]...); err != nil {
			return nil, err
		}
	}

	ids := make(map[int]orbit.ID, len(d.Entities)+1)
	if d.Center != nil {
		c, err := d.Center.decode()
		if err != nil {
			return nil, fmt.Errorf("center: %w", err)
		}
		reg.ChangeCenter(c)
		ids[CenterRef] = reg.CenterID()
	}
	for i, ed := range d.Entities {
		e, err := ed.decode()
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, ed.Name, err)
		}
		id, err := reg.AddObject(e)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	for _, rel := range d.Relations {
		from, okFrom := ids[rel.From]
		to, okTo := ids[rel.To]
		if !okFrom || !okTo {
			return nil, fmt.Errorf("relation %d->%d: %w", rel.From, rel.To, orbit.ErrUnknownEntity)
		}
		if err := reg.SetRelation(from, to, rel.Weight); err != nil {
			return nil, err
		}
	}
	if s, ok := sys.(*stellar.System); ok && d.Time != 0 {
		if err := s.SetTime(d.Time); err != nil {
			return nil, err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

// fillKinds restores the display-only kind of every entity from its payload.
func (d *Document) fillKinds() {
	if d.Center != nil {
		d.Center.Kind = payloadTag(d.Center.Payload)
	}
	for i := range d.Entities {
		d.Entities[i].Kind = payloadTag(d.Entities[i].Payload)
	}
}

func payloadTag(raw json.RawMessage) orbit.Tag {
	var env struct {
		Tag orbit.Tag `json:"tag"`
	}
	if len(raw) == 0 {
		return ""
	}
	_ = json.Unmarshal(raw, &env)
	return env.Tag
}
