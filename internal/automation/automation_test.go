package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/domain/stellar"
	"github.com/san-kum/orbsim/internal/loader"
)

func run(t *testing.T, text string) (*Report, error) {
	t.Helper()
	sc, err := ParseScenario([]byte(text))
	require.NoError(t, err)
	return RunScenario(context.Background(), sc, loader.Options{})
}

func TestParseScenarioRejects(t *testing.T) {
	_, err := ParseScenario([]byte("name: x\ndomain: moon\npreset: a\n"))
	assert.Error(t, err)
	_, err = ParseScenario([]byte("name: x\ndomain: atom\n"))
	assert.Error(t, err)
	_, err = ParseScenario([]byte("name: x\ndomain: atom\npreset: a\nfile: b\n"))
	assert.Error(t, err)
}

func TestAtomScenario(t *testing.T) {
	report, err := run(t, `
name: excite sodium
domain: atom
preset: sodium
steps:
  - op: transit
    from: 1
    to: 3
    n: 1
  - op: transit
    from: 3
    to: 1
    n: 1
`)
	require.NoError(t, err)
	require.Len(t, report.Entries, 3)
	assert.Equal(t, "load", report.Entries[0].Op)
	assert.Equal(t, "electrons [1 8 2]", report.Entries[1].Note)
	assert.Equal(t, []int{2, 8, 1}, report.System.(*atom.Structure).Electrons())
}

func TestStellarScenario(t *testing.T) {
	report, err := run(t, `
name: orbit
domain: stellar
preset: inner
steps:
  - op: advance
    dt: 86400
    count: 10
  - op: remove
    name: Mars
`)
	require.NoError(t, err)
	s := report.System.(*stellar.System)
	assert.InDelta(t, 864000, s.Time(), 1e-6)
	assert.Equal(t, 3, s.Registry().Len())
	assert.Contains(t, report.Entries[1].Note, "10 steps")
}

func TestSocialScenario(t *testing.T) {
	report, err := run(t, `
name: grow
domain: social
preset: lonely
steps:
  - op: relate
    a: Sam
    b: Tia
    weight: 0.55555
  - op: befriend
    name: Vic
    age: 33
    gender: M
  - op: relate
    a: Uma
    b: Vic
    weight: 0.5
`)
	require.NoError(t, err)
	assert.Contains(t, report.Entries[1].Note, "0.555")
	c := report.System.(*social.Circle)
	assert.Len(t, c.Ring(1), 1)
	assert.Len(t, c.Ring(2), 1)
	assert.Len(t, c.Ring(3), 1)
	assert.Less(t, report.Entries[0].Entropy, report.Entries[3].Entropy)
}

func TestScenarioStopsAtFailure(t *testing.T) {
	report, err := run(t, `
name: bad
domain: social
preset: small
steps:
  - op: transit
    from: 1
    to: 2
    n: 1
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongDomain))
	require.NotNil(t, report)
	assert.Len(t, report.Entries, 1)

	_, err = run(t, "name: x\ndomain: atom\npreset: carbon\nsteps:\n  - op: explode\n")
	assert.ErrorIs(t, err, ErrUnknownOp)
}
