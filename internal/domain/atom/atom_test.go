package atom

import (
	"errors"
	"testing"

	"github.com/san-kum/orbsim/internal/orbit"
)

func newCarbon(t *testing.T) *Structure {
	t.Helper()
	s, err := New("C", 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Populate(1, 2); err != nil {
		t.Fatalf("Populate(1): %v", err)
	}
	if err := s.Populate(2, 4); err != nil {
		t.Fatalf("Populate(2): %v", err)
	}
	return s
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPopulate(t *testing.T) {
	s := newCarbon(t)
	if got := s.Electrons(); !equalInts(got, []int{2, 4, 0}) {
		t.Errorf("Electrons() = %v, want [2 4 0]", got)
	}
	if err := s.Populate(2, 3); err != nil {
		t.Fatalf("second Populate: %v", err)
	}
	if got := s.Electrons(); !equalInts(got, []int{2, 7, 0}) {
		t.Errorf("Electrons() = %v, want [2 7 0]", got)
	}
	if s.Element() != "C" {
		t.Errorf("Element() = %q", s.Element())
	}
	s.Registry().CheckRepresentation()
}

func TestPopulateRejects(t *testing.T) {
	s := newCarbon(t)
	if err := s.Populate(0, 1); !errors.Is(err, ErrInvalidShell) {
		t.Errorf("shell 0: err = %v", err)
	}
	if err := s.Populate(1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero electrons: err = %v", err)
	}
}

func TestTransit(t *testing.T) {
	shell := func(n int) orbit.Track { return orbit.MustTrack(float64(n)) }

	tests := []struct {
		name    string
		steps   [][3]int // from, to, n
		wantErr error
		want    []int
	}{
		{"excite one", [][3]int{{2, 3, 1}}, nil, []int{2, 3, 1}},
		{"excite and relax", [][3]int{{2, 3, 2}, {3, 2, 2}}, nil, []int{2, 4, 0}},
		{"ground cannot fall", [][3]int{{2, 1, 1}}, ErrNotEnough, []int{2, 4, 0}},
		{"too many rolls back", [][3]int{{2, 3, 5}}, ErrNotEnough, []int{2, 4, 0}},
		{"unknown shell", [][3]int{{2, 9, 1}}, ErrUnknownShell, []int{2, 4, 0}},
		{"same shell", [][3]int{{2, 2, 1}}, ErrSameShell, []int{2, 4, 0}},
		{"partial relax rolls back", [][3]int{{2, 3, 1}, {3, 2, 2}}, ErrNotEnough, []int{2, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newCarbon(t)
			var err error
			for _, st := range tt.steps {
				if err = s.Transit(shell(st[0]), shell(st[1]), st[2]); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got := s.Electrons(); !equalInts(got, tt.want) {
				t.Errorf("Electrons() = %v, want %v", got, tt.want)
			}
			s.Registry().CheckRepresentation()
		})
	}
}

func TestTransitFlipsState(t *testing.T) {
	s := newCarbon(t)
	if err := s.Transit(orbit.MustTrack(1), orbit.MustTrack(3), 1); err != nil {
		t.Fatalf("Transit: %v", err)
	}
	ids := s.Registry().ObjectsOnTrack(orbit.MustTrack(3))
	if len(ids) != 1 {
		t.Fatalf("expected one electron on shell 3, got %d", len(ids))
	}
	e, _ := s.Registry().Entity(ids[0])
	if !e.Payload().(*Electron).Excited {
		t.Errorf("electron moved outward should be excited")
	}
}
