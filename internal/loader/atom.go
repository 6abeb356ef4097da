package loader

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/orbit"
)

var (
	elementName = regexp.MustCompile(`^[A-Z][a-z]{0,2}$`)
	electronMap = regexp.MustCompile(`^(\d+[/;]?)+$`)
)

var atomGrammar = grammar{
	pattern: bare,
	split:   whole,
	labels: map[string]labelSpec{
		"ElementName":      {arity: 1},
		"NumberOfTracks":   {arity: 1},
		"NumberOfElectron": {arity: 1},
	},
}

type shellCount struct {
	shell, n int
}

func loadAtom(ctx context.Context, lines []string, opts Options) (*atom.Structure, *orbit.LoadError, error) {
	probs := &problems{}
	records, err := parse(ctx, lines, atomGrammar, opts, probs, nil)
	if err != nil {
		return nil, nil, err
	}

	var (
		element string
		tracks  int
		shells  []shellCount
		eline   int
		seen    = make(map[string]bool)
	)
	for _, rec := range records {
		if seen[rec.label] {
			probs.add(rec.line, orbit.KindLogic, fmt.Errorf("repetitive label %s, ignored", rec.label))
			continue
		}
		value := rec.fields[0]
		switch rec.label {
		case "ElementName":
			if !elementName.MatchString(value) {
				probs.add(rec.line, orbit.KindParse, fmt.Errorf("bad element name %q", value))
				continue
			}
			element = value
		case "NumberOfTracks":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				probs.add(rec.line, orbit.KindParse, fmt.Errorf("bad track number %q", value))
				continue
			}
			tracks = n
		case "NumberOfElectron":
			if !electronMap.MatchString(value) {
				probs.add(rec.line, orbit.KindParse, fmt.Errorf("bad electron list %q", value))
				continue
			}
			shells, eline = parseShells(rec.line, value, probs), rec.line
		}
		seen[rec.label] = true
	}
	for _, label := range []string{"ElementName", "NumberOfTracks", "NumberOfElectron"} {
		if !seen[label] {
			probs.add(len(lines)+1, orbit.KindLogic, fmt.Errorf("%s is not set", label))
		}
	}
	if element == "" || tracks == 0 {
		return nil, nil, probs.collect().Err()
	}

	sys, err := atom.New(element, tracks, opts.Registry...)
	if err != nil {
		return nil, nil, err
	}
	sys.WithLogger(opts.Logger)
	for _, sc := range shells {
		if sc.shell > tracks {
			probs.add(eline, orbit.KindLogic, fmt.Errorf("shell %d exceeds track number %d", sc.shell, tracks))
			continue
		}
		if sc.n == 0 {
			continue
		}
		if err := sys.Populate(sc.shell, sc.n); err != nil {
			probs.add(eline, kindOf(err), err)
		}
	}
	return sys, probs.collect(), nil
}

// parseShells reads "1/2;2/8" into shell counts.
func parseShells(line int, value string, probs *problems) []shellCount {
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == '/' || r == ';' })
	if len(parts)%2 == 1 {
		probs.add(line, orbit.KindParse, fmt.Errorf("lack of an arg, the last arg (%s) is ignored", parts[len(parts)-1]))
		parts = parts[:len(parts)-1]
	}
	var out []shellCount
	for i := 0; i < len(parts); i += 2 {
		shell, err1 := strconv.Atoi(parts[i])
		n, err2 := strconv.Atoi(parts[i+1])
		if err := errors.Join(err1, err2); err != nil || shell < 1 {
			probs.add(line, orbit.KindParse, fmt.Errorf("cannot parse electron number %s/%s", parts[i], parts[i+1]))
			continue
		}
		out = append(out, shellCount{shell, n})
	}
	return out
}
