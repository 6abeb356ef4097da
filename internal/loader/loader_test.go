package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/domain/stellar"
	"github.com/san-kum/orbsim/internal/orbit"
)

const stellarText = `Stellar ::= <Sun,6.96392e5,1.9885e30>

Planet ::= <Earth,Solid,Blue,6378.137,1.49e8,29.783,CW,0>
Planet ::= <Mars,Solid,Red,3396,2.279e8,24.07,CCW,90>
`

const socialText = `CentralUser ::= <TommyWong, 30, M>
Friend ::= <LisaWong, 25, F>
Friend ::= <TomWong, 61, M>
Friend ::= <FrankLee, 42, M>
SocialTie ::= <TommyWong, LisaWong, 0.98>
SocialTie ::= <LisaWong, TomWong, 0.2>
`

const atomText = `ElementName ::= Na
NumberOfTracks ::= 3
NumberOfElectron ::= 1/2;2/8;3/1
`

func load(t *testing.T, kind domain.Kind, text string, opts Options) (domain.System, error) {
	t.Helper()
	return Load(context.Background(), kind, strings.NewReader(text), opts)
}

func TestLoadStellar(t *testing.T) {
	sys, err := load(t, domain.Stellar, stellarText, Options{})
	require.NoError(t, err)
	reg := sys.Registry()
	center, _ := reg.Center()
	require.NotNil(t, center)
	assert.Equal(t, "Sun", center.Name())
	assert.Equal(t, 2, reg.Len())
	id, ok := reg.Query("Earth")
	require.True(t, ok)
	earth, _ := reg.Entity(id)
	assert.True(t, earth.Payload().(*stellar.Planet).Clockwise)
	reg.CheckRepresentation()
}

func TestLoadStellarProblems(t *testing.T) {
	text := `Planet ::= <Earth,Solid,Blue,6378.137,1.49e8,29.783,CW,0>
Planet ::= <Earth,Solid,Blue,6378.137,1.6e8,29.783,CW,0>
Planet ::= <Venus,Solid,Yellow,6000,1.49e8,35,CW,0>
Comet ::= <Halley>
Planet ::= <Mars,Solid,Red>
garbage
`
	sys, err := load(t, domain.Stellar, text, Options{})
	require.NotNil(t, sys, "partial results are kept")
	var lerr *orbit.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 6, lerr.Len(), "%v", lerr)
	assert.Equal(t, 1, sys.Registry().Len())

	problems := lerr.Errors()
	var first *orbit.OpError
	require.True(t, errors.As(problems[0], &first))
	assert.Equal(t, 2, first.Line)
	assert.True(t, orbit.IsKind(problems[0], orbit.KindDuplicate))
	assert.ErrorIs(t, problems[1], stellar.ErrTrackOccupied)
}

func TestLoadStellarOverlap(t *testing.T) {
	tests := []struct {
		name    string
		planets string
		kept    string
		msg     string
	}{
		{
			name: "outer planet reaches into inner",
			planets: `Planet ::= <A,Solid,Blue,5,100,1,CW,0>
Planet ::= <B,Solid,Red,1,102,1,CCW,90>`,
			kept: "A",
			msg:  "B overlaps A",
		},
		{
			name: "inner planet reaches into outer",
			planets: `Planet ::= <B,Solid,Red,1,102,1,CCW,90>
Planet ::= <A,Solid,Blue,5,100,1,CW,0>`,
			kept: "B",
			msg:  "B overlaps A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Stellar ::= <Sun,1,1>\n" + tt.planets + "\n"
			sys, err := load(t, domain.Stellar, text, Options{Workers: 2, ChunkSize: 1})
			var lerr *orbit.LoadError
			require.True(t, errors.As(err, &lerr))
			require.Equal(t, 1, lerr.Len(), "%v", lerr)

			problem := lerr.Errors()[0]
			assert.ErrorIs(t, problem, stellar.ErrOverlap)
			assert.Contains(t, problem.Error(), tt.msg)
			var op *orbit.OpError
			require.True(t, errors.As(problem, &op))
			assert.Equal(t, 3, op.Line)

			reg := sys.Registry()
			assert.Equal(t, 1, reg.Len())
			_, ok := reg.Query(tt.kept)
			assert.True(t, ok)
			assert.NoError(t, reg.Validate())
		})
	}
}

func TestLoadSocial(t *testing.T) {
	sys, err := load(t, domain.Social, socialText, Options{})
	require.NoError(t, err)
	c := sys.(*social.Circle)
	reg := c.Registry()

	ring := func(name string) orbit.Track {
		id, ok := reg.Query(name)
		require.True(t, ok, name)
		e, _ := reg.Entity(id)
		return e.Track()
	}
	assert.Equal(t, orbit.MustTrack(1), ring("LisaWong"))
	assert.Equal(t, orbit.MustTrack(2), ring("TomWong"))
	assert.Equal(t, orbit.Unassigned, ring("FrankLee"))
}

func TestLoadSocialProblems(t *testing.T) {
	text := socialText + `SocialTie ::= <LisaWong, LisaWong, 0.5>
SocialTie ::= <LisaWong, Nobody, 0.5>
SocialTie ::= <TommyWong, FrankLee, 0.12345>
SocialTie ::= <TommyWong, TomWong, abc>
`
	sys, err := load(t, domain.Social, text, Options{})
	var lerr *orbit.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 4, lerr.Len(), "%v", lerr)

	var warn *social.TruncationWarning
	assert.True(t, errors.As(lerr.Errors()[2], &warn))
	id, _ := sys.Registry().Query("FrankLee")
	e, _ := sys.Registry().Entity(id)
	assert.Equal(t, orbit.MustTrack(1), e.Track(), "truncated ties still count")
}

func TestLoadSocialWithoutCenter(t *testing.T) {
	_, err := load(t, domain.Social, "Friend ::= <LisaWong, 25, F>\n", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "central user is not set")
}

func TestLoadAtom(t *testing.T) {
	sys, err := load(t, domain.Atom, atomText, Options{})
	require.NoError(t, err)
	s := sys.(*atom.Structure)
	assert.Equal(t, "Na", s.Element())
	assert.Equal(t, []int{2, 8, 1}, s.Electrons())
	s.Registry().CheckRepresentation()
}

func TestLoadAtomProblems(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		problems int
		built    bool
	}{
		{"missing element", "NumberOfTracks ::= 2\nNumberOfElectron ::= 1/2\n", 1, false},
		{"odd electron list", "ElementName ::= He\nNumberOfTracks ::= 1\nNumberOfElectron ::= 1/2;2\n", 1, true},
		{"shell beyond tracks", "ElementName ::= He\nNumberOfTracks ::= 1\nNumberOfElectron ::= 1/2;3/1\n", 1, true},
		{"repeated label", "ElementName ::= He\nElementName ::= Li\nNumberOfTracks ::= 1\nNumberOfElectron ::= 1/2\n", 1, true},
		{"bad element", "ElementName ::= helium\nNumberOfTracks ::= 1\nNumberOfElectron ::= 1/2\n", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := load(t, domain.Atom, tt.text, Options{})
			var lerr *orbit.LoadError
			require.True(t, errors.As(err, &lerr), "err = %v", err)
			assert.Equal(t, tt.problems, lerr.Len(), "%v", lerr)
			assert.Equal(t, tt.built, sys != nil)
		})
	}
}

func TestLoadLargeInputConcurrently(t *testing.T) {
	var b strings.Builder
	b.WriteString("CentralUser ::= <hub, 30, M>\n")
	const n = 2000
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Friend ::= <u%d, 20, F>\n", i)
	}
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&b, "SocialTie ::= <hub, u%d, 0.5>\n", i)
		} else {
			fmt.Fprintf(&b, "SocialTie ::= <u%d, u%d, 0.5>\n", i-1, i)
		}
	}
	sys, err := load(t, domain.Social, b.String(), Options{Workers: 8, ChunkSize: 64})
	require.NoError(t, err)
	reg := sys.Registry()
	assert.Equal(t, n, reg.Len())
	assert.Len(t, reg.ObjectsOnTrack(orbit.MustTrack(1)), n/2)
	assert.Len(t, reg.ObjectsOnTrack(orbit.MustTrack(2)), n/2)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, domain.Stellar, strings.NewReader(stellarText), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadUnknownDomain(t *testing.T) {
	_, err := load(t, "comet", "", Options{})
	assert.Error(t, err)
}
