package guard

import (
	"fmt"

	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/model"
)

// Kind is the fallibility classification of a wrapper's constructor.
type Kind int

const (
	// WithoutValidation means the constructor is infallible: it sanitizes
	// and wraps, nothing can go wrong.
	WithoutValidation Kind = iota + 1
	// WithValidation means the constructor may fail and an error type is
	// generated alongside the wrapper.
	WithValidation
)

// Guard is the classification of a wrapper's construction path. A wrapper
// transitions into exactly one guard during classification; the guard
// determines the shape of every downstream artifact and never changes.
type Guard struct {
	Kind       Kind
	Sanitizers []model.Sanitizer
	// Validators is populated only for WithValidation.
	Validators []model.Validator
}

// HasValidation reports whether construction may fail.
func (g Guard) HasValidation() bool {
	return g.Kind == WithValidation
}

// Classify checks the wrapper's rule lists for internal consistency and
// fixes its construction path: an empty validator list yields an
// infallible guard, anything else a fallible one.
func Classify(w *model.Wrapper) (Guard, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	seenSanitizers := map[model.SanitizerKind]struct{}{}
	for _, s := range w.Sanitizers {
		if _, ok := seenSanitizers[s.Kind]; ok {
			diags.AddError("duplicate_sanitizer",
				fmt.Sprintf("duplicated sanitizer %q: each sanitizer kind may appear only once", s.Kind),
				w.Name, s.Kind.String(), s.Loc)

			continue
		}

		seenSanitizers[s.Kind] = struct{}{}
	}

	seenValidators := map[model.ValidatorKind]struct{}{}
	for _, v := range w.Validators {
		if _, ok := seenValidators[v.Kind]; ok {
			diags.AddError("duplicate_validator",
				fmt.Sprintf("duplicated validator %q: each validator kind may appear only once", v.Kind),
				w.Name, v.Kind.String(), v.Loc)

			continue
		}

		seenValidators[v.Kind] = struct{}{}
	}

	if diags.HasErrors() {
		return Guard{}, diags
	}

	if len(w.Validators) == 0 {
		return Guard{Kind: WithoutValidation, Sanitizers: w.Sanitizers}, diags
	}

	return Guard{
		Kind:       WithValidation,
		Sanitizers: w.Sanitizers,
		Validators: w.Validators,
	}, diags
}
