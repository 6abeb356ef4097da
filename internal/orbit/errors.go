package orbit

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for registry operations.
var (
	// ErrInvalidTrack indicates a malformed radius list or an illegal negative radius.
	ErrInvalidTrack = errors.New("orbit: invalid track")

	// ErrDuplicateIdentity indicates an entity with the same identity is already registered.
	ErrDuplicateIdentity = errors.New("orbit: duplicate identity")

	// ErrSelfLoop indicates a relation between an entity and itself.
	ErrSelfLoop = errors.New("orbit: self-loop relation")

	// ErrUnknownEntity indicates an ID that is neither the center nor a live entity.
	ErrUnknownEntity = errors.New("orbit: unknown entity")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidTrack ErrorKind = "invalid_track"
	KindDuplicate    ErrorKind = "duplicate_identity"
	KindSelfLoop     ErrorKind = "self_loop"
	KindUnknown      ErrorKind = "unknown_entity"
	KindParse        ErrorKind = "parse"
	KindLogic        ErrorKind = "logic"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Line int // optional: 1-based input line
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Line > 0 {
		base += fmt.Sprintf(" (line=%d)", e.Line)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries an OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// LoadError collects independent, recoverable problems found during a load
// phase. The registry being loaded keeps whatever succeeded.
type LoadError struct {
	errs []error
}

// Add appends err. Nested LoadErrors are flattened.
func (e *LoadError) Add(err error) {
	if err == nil {
		return
	}
	var other *LoadError
	if errors.As(err, &other) {
		e.Merge(other)
		return
	}
	e.errs = append(e.errs, err)
}

// Merge appends every problem of other. Merging a group into itself is a no-op.
func (e *LoadError) Merge(other *LoadError) {
	if other == nil || other == e {
		return
	}
	e.errs = append(e.errs, other.errs...)
}

func (e *LoadError) Len() int { return len(e.errs) }

// Errors returns a copy of the collected problems in insertion order.
func (e *LoadError) Errors() []error {
	out := make([]error, len(e.errs))
	copy(out, e.errs)
	return out
}

func (e *LoadError) Unwrap() []error { return e.Errors() }

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "orbit: %d load problem(s)", len(e.errs))
	for _, err := range e.errs {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Err returns nil when nothing was collected, so callers can write
// `return reg, errs.Err()`.
func (e *LoadError) Err() error {
	if e == nil || len(e.errs) == 0 {
		return nil
	}
	return e
}

// RepresentationViolation is the panic value raised when a registry breaks
// one of its invariants. It signals a programming error and is not meant to
// be recovered by library code.
type RepresentationViolation struct {
	Rule   string
	Detail string
}

func (v *RepresentationViolation) Error() string {
	return fmt.Sprintf("orbit: representation violated: %s: %s", v.Rule, v.Detail)
}

func violation(rule, format string, args ...any) *RepresentationViolation {
	return &RepresentationViolation{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}
