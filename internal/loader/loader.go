// Package loader reads the text formats of the three domains.
//
// Every domain uses lines of the form
//
//	Label ::= <field,field,...>
//
// except atoms, whose values are bare (ElementName ::= C). Lines are parsed
// in chunks by a bounded pool of workers; entities are merged into the
// system under a single mutex. Independent problems are collected into one
// *orbit.LoadError and the partially populated system is still returned.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/factory"
	"github.com/san-kum/orbsim/internal/orbit"
)

const DefaultChunkSize = 256

type Options struct {
	Workers   int
	ChunkSize int
	Factory   *factory.Registry
	Logger    *slog.Logger
	// Registry options applied to the system being built.
	Registry []orbit.Option
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Factory == nil {
		o.Factory = factory.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// LoadFile loads a system of the given kind from path.
func LoadFile(ctx context.Context, kind domain.Kind, path string, opts Options) (domain.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(ctx, kind, f, opts)
}

// Load reads a system of the given kind. A *orbit.LoadError comes back
// together with the partially built system; any other error means nothing
// usable was built.
func Load(ctx context.Context, kind domain.Kind, r io.Reader, opts Options) (domain.System, error) {
	opts = opts.withDefaults()
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	var (
		sys  domain.System
		errs *orbit.LoadError
	)
	switch kind {
	case domain.Stellar:
		sys, errs, err = loadStellar(ctx, lines, opts)
	case domain.Social:
		sys, errs, err = loadSocial(ctx, lines, opts)
	case domain.Atom:
		sys, errs, err = loadAtom(ctx, lines, opts)
	default:
		return nil, fmt.Errorf("unknown domain: %s", kind)
	}
	if err != nil {
		return nil, err
	}
	if verr := sys.Registry().Validate(); verr != nil {
		errs.Add(&orbit.OpError{Op: "load", Kind: orbit.KindLogic, Err: verr})
	}
	opts.Logger.Info("loader.done",
		"domain", string(kind),
		"lines", len(lines),
		"entities", sys.Registry().Len(),
		"problems", errs.Len(),
	)
	return sys, errs.Err()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return lines, nil
}

var (
	bracketed = regexp.MustCompile(`^\s*([a-zA-Z]+)\s*::=\s*<(.*)>\s*$`)
	bare      = regexp.MustCompile(`^\s*([a-zA-Z]+)\s*::=\s*(\S.*?)\s*$`)
)

// record is one recognized line.
type record struct {
	line   int
	label  string
	fields []string
}

// labelSpec describes one label of a grammar.
type labelSpec struct {
	arity int
	// tag, when set, makes workers build the entity and hand it to merge.
	tag orbit.Tag
}

type grammar struct {
	pattern *regexp.Regexp
	split   func(body string) []string
	labels  map[string]labelSpec
}

func splitFields(body string) []string {
	parts := strings.Split(body, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func whole(body string) []string { return []string{strings.TrimSpace(body)} }

// problems gathers line-numbered errors from concurrent workers.
type problems struct {
	mu   sync.Mutex
	list []*orbit.OpError
}

func (p *problems) add(line int, kind orbit.ErrorKind, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.list = append(p.list, &orbit.OpError{Op: "load", Kind: kind, Line: line, Err: err})
}

// collect returns the problems ordered by line.
func (p *problems) collect() *orbit.LoadError {
	p.mu.Lock()
	defer p.mu.Unlock()
	sort.SliceStable(p.list, func(i, j int) bool { return p.list[i].Line < p.list[j].Line })
	errs := &orbit.LoadError{}
	for _, e := range p.list {
		errs.Add(e)
	}
	return errs
}

// kindOf classifies a registry error for reporting.
func kindOf(err error) orbit.ErrorKind {
	switch {
	case errors.Is(err, orbit.ErrDuplicateIdentity):
		return orbit.KindDuplicate
	case errors.Is(err, orbit.ErrInvalidTrack):
		return orbit.KindInvalidTrack
	case errors.Is(err, orbit.ErrSelfLoop):
		return orbit.KindSelfLoop
	case errors.Is(err, orbit.ErrUnknownEntity):
		return orbit.KindUnknown
	}
	return orbit.KindLogic
}

// parse runs the grammar over lines with a bounded worker pool. Entity
// lines are built concurrently and handed to merge under one mutex; every
// other recognized line is returned, ordered by line number.
func parse(ctx context.Context, lines []string, g grammar, opts Options, probs *problems, merge func(line int, e *orbit.Entity) error) ([]record, error) {
	var (
		mu      sync.Mutex
		records []record
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	for start := 0; start < len(lines); start += opts.ChunkSize {
		end := min(start+opts.ChunkSize, len(lines))
		chunk := lines[start:end]
		offset := start
		eg.Go(func() error {
			for i, text := range chunk {
				if err := ctx.Err(); err != nil {
					return err
				}
				lineNo := offset + i + 1
				if strings.TrimSpace(text) == "" {
					continue
				}
				m := g.pattern.FindStringSubmatch(text)
				if m == nil {
					probs.add(lineNo, orbit.KindParse, fmt.Errorf("cannot match %q", text))
					continue
				}
				spec, ok := g.labels[m[1]]
				if !ok {
					probs.add(lineNo, orbit.KindParse, fmt.Errorf("unexpected label: %s", m[1]))
					continue
				}
				fields := g.split(m[2])
				if spec.arity > 0 && len(fields) != spec.arity {
					probs.add(lineNo, orbit.KindParse, fmt.Errorf("%s: want %d fields, got %d", m[1], spec.arity, len(fields)))
					continue
				}
				if spec.tag == "" {
					mu.Lock()
					records = append(records, record{line: lineNo, label: m[1], fields: fields})
					mu.Unlock()
					continue
				}
				e, err := opts.Factory.Produce(spec.tag, fields)
				if err != nil {
					probs.add(lineNo, orbit.KindParse, err)
					continue
				}
				mu.Lock()
				err = merge(lineNo, e)
				mu.Unlock()
				if err != nil {
					probs.add(lineNo, kindOf(err), err)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].line < records[j].line })
	return records, nil
}
