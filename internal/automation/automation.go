// Package automation replays scripted scenarios: a system loaded from a
// preset or file followed by a sequence of operations on it.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/loader"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/sim"
)

// Scenario defines a scripted sequence of operations on one system.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Domain      domain.Kind `yaml:"domain"`
	// Exactly one of Preset and File names the starting system.
	Preset string `yaml:"preset"`
	File   string `yaml:"file"`
	Steps  []Step `yaml:"steps"`
}

// Step is a single operation. Which fields matter depends on Op:
//
//	transit   From, To, N
//	advance   Dt, Count
//	befriend  Name, Age, Gender
//	relate    A, B, Weight
//	remove    Name
type Step struct {
	Op     string  `yaml:"op"`
	From   int     `yaml:"from"`
	To     int     `yaml:"to"`
	N      int     `yaml:"n"`
	Dt     float64 `yaml:"dt"`
	Count  int     `yaml:"count"`
	Name   string  `yaml:"name"`
	Age    int     `yaml:"age"`
	Gender string  `yaml:"gender"`
	A      string  `yaml:"a"`
	B      string  `yaml:"b"`
	Weight float32 `yaml:"weight"`
}

// Entry records the state after one step.
type Entry struct {
	Index   int
	Op      string
	Entropy float64
	Note    string
}

type Report struct {
	System  domain.System
	Entries []Entry
}

var (
	ErrWrongDomain = errors.New("automation: operation does not apply to this domain")
	ErrUnknownOp   = errors.New("automation: unknown operation")
)

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if _, err := domain.ParseKind(string(sc.Domain)); err != nil {
		return nil, err
	}
	if (sc.Preset == "") == (sc.File == "") {
		return nil, fmt.Errorf("scenario %q: set exactly one of preset and file", sc.Name)
	}
	return &sc, nil
}

// RunScenario builds the starting system and applies every step in order.
// It stops at the first failing step and returns the report so far.
func RunScenario(ctx context.Context, sc *Scenario, opts loader.Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	sys, err := start(ctx, sc, opts)
	if err != nil {
		return nil, err
	}
	report := &Report{System: sys}
	report.Entries = append(report.Entries, Entry{Op: "load", Entropy: analysis.Entropy(sys.Registry())})

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		note, err := apply(ctx, sys, step)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		entry := Entry{Index: i + 1, Op: step.Op, Entropy: analysis.Entropy(sys.Registry()), Note: note}
		report.Entries = append(report.Entries, entry)
		log.Debug("automation.step", "scenario", sc.Name, "index", entry.Index, "op", entry.Op, "entropy", entry.Entropy)
	}
	return report, nil
}

func start(ctx context.Context, sc *Scenario, opts loader.Options) (domain.System, error) {
	var (
		sys domain.System
		err error
	)
	if sc.Preset != "" {
		p := config.GetPreset(sc.Domain, sc.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s/%s", sc.Domain, sc.Preset)
		}
		sys, err = loader.Load(ctx, sc.Domain, strings.NewReader(p.Source), opts)
	} else {
		sys, err = loader.LoadFile(ctx, sc.Domain, sc.File, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return sys, nil
}

type remover interface {
	RemoveObject(id orbit.ID) bool
}

func apply(ctx context.Context, sys domain.System, step Step) (string, error) {
	reg := sys.Registry()
	switch step.Op {
	case "transit":
		a, ok := sys.(*atom.Structure)
		if !ok {
			return "", ErrWrongDomain
		}
		from, err := atom.Shell(step.From)
		if err != nil {
			return "", err
		}
		to, err := atom.Shell(step.To)
		if err != nil {
			return "", err
		}
		if err := a.Transit(from, to, step.N); err != nil {
			return "", err
		}
		return fmt.Sprintf("electrons %v", a.Electrons()), nil

	case "advance":
		s, ok := sys.(sim.System)
		if !ok {
			return "", ErrWrongDomain
		}
		simulator := sim.New(s)
		for _, m := range metrics.Default() {
			simulator.AddMetric(m)
		}
		result, err := simulator.Run(ctx, sim.Config{Dt: step.Dt, Duration: step.Dt * float64(step.Count), StopOnError: true})
		if err != nil {
			return "", err
		}
		if len(result.Errors) > 0 {
			return "", result.Errors[0]
		}
		return fmt.Sprintf("%d steps, spread %.4g", result.StepsTaken, result.Metrics["spread"]), nil

	case "befriend":
		c, ok := sys.(*social.Circle)
		if !ok {
			return "", ErrWrongDomain
		}
		g, err := social.ParseGender(step.Gender)
		if err != nil {
			return "", err
		}
		if _, err := c.AddFriend(step.Name, social.Profile{Age: step.Age, Gender: g}); err != nil {
			return "", err
		}
		return "added " + step.Name, nil

	case "relate":
		c, ok := sys.(*social.Circle)
		if !ok {
			return "", ErrWrongDomain
		}
		a, okA := reg.Query(step.A)
		b, okB := reg.Query(step.B)
		if !okA || !okB {
			return "", fmt.Errorf("%w: %s or %s", orbit.ErrUnknownEntity, step.A, step.B)
		}
		err := c.SetRelation(a, b, step.Weight)
		var warn *social.TruncationWarning
		if errors.As(err, &warn) {
			return warn.Error(), nil
		}
		return "", err

	case "remove":
		id, ok := reg.Query(step.Name)
		if !ok || id == reg.CenterID() {
			return "", fmt.Errorf("%w: %s", orbit.ErrUnknownEntity, step.Name)
		}
		if r, ok := sys.(remover); ok {
			r.RemoveObject(id)
		} else {
			reg.RemoveObject(id)
		}
		return "removed " + step.Name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
}
