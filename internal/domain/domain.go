// Package domain holds what the atom, stellar and social specializations
// have in common.
package domain

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbsim/internal/orbit"
)

// Kind names a domain.
type Kind string

const (
	Atom    Kind = "atom"
	Stellar Kind = "stellar"
	Social  Kind = "social"
)

// Kinds lists the known domains in sorted order.
func Kinds() []Kind {
	out := []Kind{Atom, Stellar, Social}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKind validates a domain name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown domain: %s", s)
}

// System is a domain specialization wrapping an orbit registry.
type System interface {
	Kind() Kind
	// Registry exposes the underlying registry for reads. Mutations must go
	// through the System so domain rules stay in force.
	Registry() *orbit.Registry
}
