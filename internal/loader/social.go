package loader

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/orbit"
)

var socialGrammar = grammar{
	pattern: bracketed,
	split:   splitFields,
	labels: map[string]labelSpec{
		"CentralUser": {arity: 3},
		"Friend":      {arity: 3, tag: social.TagUser},
		"SocialTie":   {arity: 3},
	},
}

func loadSocial(ctx context.Context, lines []string, opts Options) (*social.Circle, *orbit.LoadError, error) {
	sys := social.New(opts.Registry...)
	probs := &problems{}
	var records []record
	err := sys.Bulk(func() error {
		var err error
		records, err = parse(ctx, lines, socialGrammar, opts, probs, func(line int, e *orbit.Entity) error {
			_, err := sys.AddObject(e)
			return err
		})
		if err != nil {
			return err
		}
		centered := false
		for _, rec := range records {
			if rec.label != "CentralUser" {
				continue
			}
			if centered {
				probs.add(rec.line, orbit.KindLogic, errors.New("repetitive label CentralUser, ignored"))
				continue
			}
			e, err := opts.Factory.Produce(social.TagCentralUser, rec.fields)
			if err != nil {
				probs.add(rec.line, orbit.KindParse, err)
				continue
			}
			sys.SetCenter(e.Name(), e.Payload().(*social.CentralUser).Profile)
			centered = true
		}
		if !centered {
			probs.add(len(lines)+1, orbit.KindLogic, errors.New("central user is not set"))
			return nil
		}
		for _, rec := range records {
			if rec.label == "SocialTie" {
				tie(sys, rec, probs)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sys, probs.collect(), nil
}

func tie(sys *social.Circle, rec record, probs *problems) {
	a, b := rec.fields[0], rec.fields[1]
	if a == b {
		probs.add(rec.line, orbit.KindSelfLoop, fmt.Errorf("relationship %s->%s", a, b))
		return
	}
	reg := sys.Registry()
	ida, oka := reg.Query(a)
	idb, okb := reg.Query(b)
	if !oka || !okb {
		var missing []string
		if !oka {
			missing = append(missing, a)
		}
		if !okb {
			missing = append(missing, b)
		}
		probs.add(rec.line, orbit.KindUnknown, fmt.Errorf("not defined: %v", missing))
		return
	}
	w, err := strconv.ParseFloat(rec.fields[2], 32)
	if err != nil {
		probs.add(rec.line, orbit.KindParse, fmt.Errorf("cannot parse intimacy %q", rec.fields[2]))
		return
	}
	if err := sys.SetRelation(ida, idb, float32(w)); err != nil {
		var warn *social.TruncationWarning
		if errors.As(err, &warn) {
			probs.add(rec.line, orbit.KindParse, warn)
			return
		}
		probs.add(rec.line, kindOf(err), err)
	}
}
