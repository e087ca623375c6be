package model

import (
	"fmt"
	"slices"
)

// Location is a position in a definition file, used to tie diagnostics
// back to the offending token.
type Location struct {
	File   string
	Line   int
	Column int
}

// String renders the location as "file:line:column". Zero locations
// render empty.
func (l Location) String() string {
	if l.Line == 0 {
		return l.File
	}

	if l.Column == 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}

	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Wrapper is the attribute model for one newtype: everything the parser
// front-end knows about it, already structurally validated. It is the
// sole input to guard classification, capability resolution, and code
// assembly.
type Wrapper struct {
	// Name of the generated type. Go casing rules decide visibility.
	Name string

	// Package the artifact is emitted into.
	Package string

	// Doc is doc-comment text re-emitted verbatim above the type.
	Doc string

	// Inner is the wrapped primitive type.
	Inner Kind

	// Sanitizers in declaration order.
	Sanitizers []Sanitizer

	// Validators in declaration order.
	Validators []Validator

	// Capabilities is the deduplicated requested-capability set, kept in
	// the fixed capability order for deterministic iteration.
	Capabilities []Capability

	// DefaultExpr is the optional default-value expression. Required by
	// CapDefault.
	DefaultExpr string

	// NewUnchecked requests the skip-validation constructor. Gated behind
	// the new_unchecked feature.
	NewUnchecked bool

	Loc Location
}

// HasCapability reports whether the capability was requested.
func (w *Wrapper) HasCapability(c Capability) bool {
	return slices.Contains(w.Capabilities, c)
}

// AddCapability inserts a capability into the set, keeping the fixed
// order and ignoring duplicates.
func (w *Wrapper) AddCapability(c Capability) {
	if w.HasCapability(c) {
		return
	}

	w.Capabilities = append(w.Capabilities, c)
	slices.Sort(w.Capabilities)
}

// FindValidator returns the first validator of the given kind, or nil.
func (w *Wrapper) FindValidator(kind ValidatorKind) *Validator {
	for i := range w.Validators {
		if w.Validators[i].Kind == kind {
			return &w.Validators[i]
		}
	}

	return nil
}

// Features is the explicit configuration of opt-in generation flags for a
// run. There is no hidden global state: the value is threaded into
// resolution and assembly.
type Features struct {
	// NewUnchecked enables the unsafe skip-validation constructor.
	NewUnchecked bool `env:"NEWTYPE_FEATURE_NEW_UNCHECKED"`
	// Serde enables the serialize/deserialize capabilities.
	Serde bool `env:"NEWTYPE_FEATURE_SERDE"`
	// Schema enables the json_schema capability.
	Schema bool `env:"NEWTYPE_FEATURE_SCHEMA"`
	// Arbitrary enables randomized-instance generation.
	Arbitrary bool `env:"NEWTYPE_FEATURE_ARBITRARY"`
}
