package factory

import (
	"errors"
	"testing"

	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/domain/stellar"
	"github.com/san-kum/orbsim/internal/orbit"
)

func TestProduce(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name    string
		tag     orbit.Tag
		fields  []string
		wantTag orbit.Tag
		track   orbit.Track
		wantErr bool
	}{
		{"star", stellar.TagStar, []string{"Sun", "6.96392e5", "1.9885e30"}, stellar.TagStar, orbit.MustTrack(0), false},
		{"planet", stellar.TagPlanet, []string{" Earth", "Solid", "Blue", "6378.137", "1.49e8", "29.783", "CW", "0 "}, stellar.TagPlanet, orbit.MustTrack(1.49e8), false},
		{"planet bad form", stellar.TagPlanet, []string{"Earth", "Plasma", "Blue", "1", "2", "3", "CW", "0"}, "", orbit.Track{}, true},
		{"planet bad direction", stellar.TagPlanet, []string{"Earth", "Solid", "Blue", "1", "2", "3", "UP", "0"}, "", orbit.Track{}, true},
		{"planet bad number", stellar.TagPlanet, []string{"Earth", "Solid", "Blue", "x", "2", "3", "CW", "0"}, "", orbit.Track{}, true},
		{"electron", "electron", []string{"2", "90"}, "electron", orbit.MustTrack(2), false},
		{"electron shell zero", "electron", []string{"0", "90"}, "", orbit.Track{}, true},
		{"user", social.TagUser, []string{"alice", "25", "F"}, social.TagUser, orbit.Unassigned, false},
		{"user bad gender", social.TagUser, []string{"alice", "25", "X"}, "", orbit.Track{}, true},
		{"user negative age", social.TagUser, []string{"alice", "-3", "F"}, "", orbit.Track{}, true},
		{"unknown tag", "comet", []string{"x"}, "", orbit.Track{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := r.Produce(tt.tag, tt.fields)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Produce(%s, %v) succeeded, want error", tt.tag, tt.fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("Produce(%s, %v): %v", tt.tag, tt.fields, err)
			}
			if e.Tag() != tt.wantTag {
				t.Errorf("Tag() = %s, want %s", e.Tag(), tt.wantTag)
			}
			if e.Track() != tt.track {
				t.Errorf("Track() = %v, want %v", e.Track(), tt.track)
			}
		})
	}
}

func TestProduceChecksArity(t *testing.T) {
	r := NewRegistry()
	_, err := r.Produce(stellar.TagStar, []string{"Sun"})
	if !errors.Is(err, ErrArity) {
		t.Fatalf("err = %v, want ErrArity", err)
	}
}

func TestPlanetFields(t *testing.T) {
	e, err := NewRegistry().Produce(stellar.TagPlanet, []string{"Earth", "Solid", "Blue", "6378", "1.49e8", "29.783", "CCW", "45"})
	if err != nil {
		t.Fatal(err)
	}
	p := e.Payload().(*stellar.Planet)
	if p.Clockwise || p.Color != "Blue" || p.Radius != 6378 || p.Speed != 29.783 {
		t.Errorf("unexpected planet %+v", p)
	}
	if e.Name() != "Earth" || e.InitialAngle() != 45 {
		t.Errorf("unexpected entity %v", e)
	}
}

func TestKindsAndHints(t *testing.T) {
	r := NewRegistry()
	if got := len(r.Kinds()); got != 6 {
		t.Errorf("Kinds() has %d entries, want 6", got)
	}
	hint, ok := r.Hint(stellar.TagPlanet)
	if !ok || len(hint) != 8 {
		t.Errorf("planet hint = %v", hint)
	}
	hint[0] = "changed"
	again, _ := r.Hint(stellar.TagPlanet)
	if again[0] != "Name" {
		t.Errorf("Hint must return a copy")
	}
}
