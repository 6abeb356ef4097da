package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbsim/internal/analysis"
)

type Simulator struct {
	sys       System
	metrics   []Metric
	observers []Observer
}

func New(sys System) *Simulator {
	return &Simulator{
		sys:       sys,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// System returns the driven system.
func (s *Simulator) System() System { return s.sys }

// Run steps the system from t = 0 for cfg.Duration. On cancellation the
// partial result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Entropy: make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	reg := s.sys.Registry()
	t := 0.0
	result.Times = append(result.Times, t)
	result.Entropy = append(result.Entropy, analysis.Entropy(reg))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(reg, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(reg, t)
		}

		if err := s.sys.Step(t, cfg.Dt); err != nil {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: err.Error()})
			if cfg.StopOnError {
				break
			}
			continue
		}

		t += cfg.Dt
		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.Entropy = append(result.Entropy, analysis.Entropy(reg))
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RunWithCallback steps the system until the callback returns false, the
// duration elapses or ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(t) {
			return nil
		}

		if err := s.sys.Step(t, cfg.Dt); err != nil {
			return fmt.Errorf("step at t=%.4f: %w", t, err)
		}
		t += cfg.Dt
	}

	return nil
}
