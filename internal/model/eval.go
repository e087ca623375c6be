package model

import "math"

// This file is a small interpreter for the float rule chain. Generation
// itself only emits code, but default values on fallible wrappers must be
// proven valid ahead of emission, and tests exercise the pipeline
// semantics through the same functions.

// Sanitize applies the sanitizer chain to v in declaration order and
// returns the result. exact is false when the chain contains an opaque
// with-sanitizer that cannot be evaluated at generation time; the
// returned value then reflects only the literal rules.
func Sanitize(sanitizers []Sanitizer, v float64) (out float64, exact bool) {
	exact = true

	for _, s := range sanitizers {
		switch s.Kind {
		case SanitizerClamp:
			v = math.Min(math.Max(v, s.Min), s.Max)
		case SanitizerWith:
			exact = false
		}
	}

	return v, exact
}

// Violated returns the index of the first validator v fails, in
// declaration order, or -1 when all pass. exact is false when an opaque
// with-validator had to be skipped.
func Violated(validators []Validator, v float64) (idx int, exact bool) {
	exact = true

	for i, val := range validators {
		switch val.Kind {
		case ValidatorMin:
			if v < val.Bound {
				return i, exact
			}
		case ValidatorMax:
			if v > val.Bound {
				return i, exact
			}
		case ValidatorFinite:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i, exact
			}
		case ValidatorWith:
			exact = false
		}
	}

	return -1, exact
}
