package model

import "newtype-generator/internal/common"

// SanitizerKind identifies a sanitizer flavor. Each kind is logically a
// flag: it may appear at most once per wrapper.
type SanitizerKind int

const (
	SanitizerClamp SanitizerKind = iota + 1
	SanitizerWith
)

// String returns the definition-file spelling of the kind.
func (k SanitizerKind) String() string {
	switch k {
	case SanitizerClamp:
		return "clamp"
	case SanitizerWith:
		return "with"
	default:
		return common.UnknownStr
	}
}

// Sanitizer is a total transformation applied to a raw value before
// validation. Sanitizers run in declaration order, each consuming the
// previous output, and never reject.
type Sanitizer struct {
	Kind SanitizerKind

	// Min and Max are the clamp bounds (SanitizerClamp only).
	Min float64
	Max float64

	// Expr is a Go function expression applied to the value (SanitizerWith only).
	Expr string

	Loc Location
}

// ValidatorKind identifies a validator flavor. Like sanitizers, each kind
// may appear at most once per wrapper.
type ValidatorKind int

const (
	ValidatorMin ValidatorKind = iota + 1
	ValidatorMax
	ValidatorFinite
	ValidatorWith
)

// String returns the definition-file spelling of the kind.
func (k ValidatorKind) String() string {
	switch k {
	case ValidatorMin:
		return "min"
	case ValidatorMax:
		return "max"
	case ValidatorFinite:
		return "finite"
	case ValidatorWith:
		return "with"
	default:
		return common.UnknownStr
	}
}

// Validator is a predicate applied to the sanitized value. The first
// violated validator determines the constructor's error.
type Validator struct {
	Kind ValidatorKind

	// Bound is the threshold for ValidatorMin / ValidatorMax.
	Bound float64

	// Expr is a Go predicate expression (ValidatorWith only).
	Expr string

	Loc Location
}

// ErrorVariant returns the error enum variant name the validator maps to.
// The mapping is 1:1 and fixed per kind.
func (v Validator) ErrorVariant() string {
	switch v.Kind {
	case ValidatorMin:
		return "TooSmall"
	case ValidatorMax:
		return "TooBig"
	case ValidatorFinite:
		return "NotFinite"
	case ValidatorWith:
		return "Invalid"
	default:
		return ""
	}
}

// ErrorMessage returns the fixed human-readable message for the error
// variant. Messages describe which rule failed and never depend on the
// rejected value.
func (v Validator) ErrorMessage() string {
	switch v.Kind {
	case ValidatorMin:
		return "too small"
	case ValidatorMax:
		return "too big"
	case ValidatorFinite:
		return "not finite"
	case ValidatorWith:
		return "invalid"
	default:
		return common.UnknownStr
	}
}
