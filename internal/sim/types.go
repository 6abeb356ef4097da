package sim

import (
	"fmt"

	"github.com/san-kum/orbsim/internal/orbit"
)

// Driver advances a system from time t by dt. It mutates the registry
// only through the entity mutation methods.
type Driver interface {
	Step(t, dt float64) error
}

// System is a steppable domain system.
type System interface {
	Driver
	Registry() *orbit.Registry
}

// Resetter is implemented by systems that can return to time zero.
type Resetter interface {
	Reset() error
}

type Metric interface {
	Name() string
	Observe(r *orbit.Registry, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r *orbit.Registry, t float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(r *orbit.Registry, t float64)

func (f ObserverFunc) OnStep(r *orbit.Registry, t float64) { f(r, t) }

type Config struct {
	Dt       float64
	Duration float64
	// StopOnError ends the run at the first failing step.
	StopOnError bool
}

// Steps returns the number of steps the config covers.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 1e-9)
}

type Result struct {
	Times      []float64
	Entropy    []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// FinalEntropy returns the last recorded entropy, or 0 for an empty run.
func (r *Result) FinalEntropy() float64 {
	if len(r.Entropy) == 0 {
		return 0
	}
	return r.Entropy[len(r.Entropy)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
