package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/orbsim/internal/domain/stellar"
	"github.com/san-kum/orbsim/internal/orbit"
)

var stellarGrammar = grammar{
	pattern: bracketed,
	split:   splitFields,
	labels: map[string]labelSpec{
		"Stellar": {arity: 3},
		"Planet":  {arity: 8, tag: stellar.TagPlanet},
	},
}

type planetLine struct {
	line int
	e    *orbit.Entity
}

func loadStellar(ctx context.Context, lines []string, opts Options) (*stellar.System, *orbit.LoadError, error) {
	sys := stellar.New(opts.Registry...)
	probs := &problems{}
	var planets []planetLine
	records, err := parse(ctx, lines, stellarGrammar, opts, probs, func(line int, e *orbit.Entity) error {
		planets = append(planets, planetLine{line: line, e: e})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Planets go in file order: of two overlapping planets the first wins.
	sort.Slice(planets, func(i, j int) bool { return planets[i].line < planets[j].line })
	for _, pl := range planets {
		if _, taken := sys.Registry().Query(pl.e.Name()); taken {
			probs.add(pl.line, orbit.KindDuplicate, fmt.Errorf("%w: %s already exists", orbit.ErrDuplicateIdentity, pl.e.Name()))
			continue
		}
		if _, err := sys.AddObject(pl.e); err != nil {
			probs.add(pl.line, kindOf(err), err)
		}
	}

	centered := false
	for _, rec := range records {
		if centered {
			probs.add(rec.line, orbit.KindLogic, errors.New("repetitive label Stellar, ignored"))
			continue
		}
		e, err := opts.Factory.Produce(stellar.TagStar, rec.fields)
		if err != nil {
			probs.add(rec.line, orbit.KindParse, err)
			continue
		}
		sys.SetStar(e.Name(), *e.Payload().(*stellar.Star))
		centered = true
	}
	if !centered {
		probs.add(len(lines)+1, orbit.KindLogic, errors.New("no central star"))
	}
	return sys, probs.collect(), nil
}
