package types

import "strings"

// Implementor describes one trait implementation for one concrete type.
// All fields are display text produced by the documentation generator;
// traitdex never parses them further. An Implementor is immutable once
// constructed: every method is a value receiver and no method mutates.
type Implementor struct {
	TraitPath   string   `json:"trait"`                 // Fully-qualified trait path (e.g. "core::marker::Send").
	TypePath    string   `json:"type"`                  // Implementing type with generics (e.g. "futures::done::Done<T, E>").
	Constraints []string `json:"constraints,omitempty"` // Where-clause bounds in presentation order.
}

// Display renders the implementor as a single impl line, matching the form
// the generated documentation pages show:
//
//	impl core::marker::Send for futures::done::Done<T, E> where T: Send + 'static, E: Send + 'static
func (im Implementor) Display() string {
	var b strings.Builder
	b.WriteString("impl ")
	b.WriteString(im.TraitPath)
	b.WriteString(" for ")
	b.WriteString(im.TypePath)
	if len(im.Constraints) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(im.Constraints, ", "))
	}
	return b.String()
}

// Clone returns a copy of the implementor with its own constraints slice.
func (im Implementor) Clone() Implementor {
	cp := im
	if im.Constraints != nil {
		cp.Constraints = append([]string(nil), im.Constraints...)
	}
	return cp
}

// Equal reports whether two implementors carry identical display data.
func (im Implementor) Equal(other Implementor) bool {
	if im.TraitPath != other.TraitPath || im.TypePath != other.TypePath {
		return false
	}
	if len(im.Constraints) != len(other.Constraints) {
		return false
	}
	for i := range im.Constraints {
		if im.Constraints[i] != other.Constraints[i] {
			return false
		}
	}
	return true
}
