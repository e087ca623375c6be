package capability

import (
	"fmt"
	"strconv"

	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/guard"
	"newtype-generator/internal/model"
)

// class says how a capability is realized in generated code.
type class int

const (
	// classTransparent capabilities are provided structurally by the Go
	// language for the emitted struct (comparability, copy semantics,
	// default formatting). No implementation body is generated.
	classTransparent class = iota + 1
	// classIrregular capabilities need a hand-assembled method or
	// function block.
	classIrregular
)

// partition is the fixed, total table mapping every capability to its
// class. A requested capability missing from this table is a detected
// configuration error, never a silent drop.
//
// Ordering is irregular because Go has no operator overloading for named
// struct types: Compare/Less must be generated as methods.
var partition = map[model.Capability]class{
	model.CapEq:          classTransparent,
	model.CapHash:        classTransparent,
	model.CapClone:       classTransparent,
	model.CapDebug:       classTransparent,
	model.CapOrd:         classIrregular,
	model.CapDisplay:     classIrregular,
	model.CapAsRef:       classIrregular,
	model.CapInto:        classIrregular,
	model.CapFrom:        classIrregular,
	model.CapTryFrom:     classIrregular,
	model.CapFromStr:     classIrregular,
	model.CapDefault:     classIrregular,
	model.CapSerialize:   classIrregular,
	model.CapDeserialize: classIrregular,
	model.CapJSONSchema:  classIrregular,
	model.CapArbitrary:   classIrregular,
}

// Resolved is the transparent/irregular partition of a wrapper's
// requested capability set. Both slices keep the fixed capability order.
type Resolved struct {
	Transparent []model.Capability
	Irregular   []model.Capability
}

// Resolve splits the requested capability set, enforcing feature gates,
// guard compatibility, and companion-value requirements. It runs after
// guard classification because several capabilities branch on whether
// construction is fallible.
func Resolve(w *model.Wrapper, g guard.Guard, feats model.Features) (Resolved, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	if w.Inner.Category() != model.CategoryFloat {
		diags.AddError("unsupported_category",
			fmt.Sprintf("newtypes over %s inner types are not supported by this generator", w.Inner.Category()),
			w.Name, w.Inner.GoType(), w.Loc)

		return Resolved{}, diags
	}

	if w.NewUnchecked && !feats.NewUnchecked {
		diags.AddError("feature_required",
			"new_unchecked requires the new_unchecked feature flag; generally this is a bad idea, use it only when you really need it",
			w.Name, "new_unchecked", w.Loc)
	}

	var res Resolved

	for _, c := range w.Capabilities {
		cls, ok := partition[c]
		if !ok {
			diags.AddError("unknown_capability",
				fmt.Sprintf("capability %q has no generation rule", c),
				w.Name, c.String(), w.Loc)

			continue
		}

		if flag, gated := requiredFeature(c, feats); gated {
			diags.AddError("feature_required",
				fmt.Sprintf("capability %q requires the %s feature flag", c, flag),
				w.Name, c.String(), w.Loc)

			continue
		}

		if !checkGuardCompat(diags, w, g, c) {
			continue
		}

		if c == model.CapDefault && !checkDefault(diags, w, g) {
			continue
		}

		if c == model.CapArbitrary && !checkArbitrary(diags, w, g) {
			continue
		}

		switch cls {
		case classTransparent:
			res.Transparent = append(res.Transparent, c)
		case classIrregular:
			res.Irregular = append(res.Irregular, c)
		}
	}

	warnFloatEquality(diags, w)

	if diags.HasErrors() {
		return Resolved{}, diags
	}

	return res, diags
}

// requiredFeature returns the name of the feature flag the capability
// needs but which is not active. gated is false when the capability is
// usable.
func requiredFeature(c model.Capability, feats model.Features) (flag string, gated bool) {
	switch c {
	case model.CapSerialize, model.CapDeserialize:
		return "serde", !feats.Serde
	case model.CapJSONSchema:
		return "schema", !feats.Schema
	case model.CapArbitrary:
		return "arbitrary", !feats.Arbitrary
	default:
		return "", false
	}
}

// checkGuardCompat rejects capabilities structurally incompatible with
// the guard: infallible conversion needs an infallible constructor and
// vice versa.
func checkGuardCompat(diags *diagnostic.Diagnostics, w *model.Wrapper, g guard.Guard, c model.Capability) bool {
	switch c {
	case model.CapFrom:
		if g.HasValidation() {
			diags.AddError("capability_guard_conflict",
				"from needs infallible construction; this newtype validates, request try_from instead",
				w.Name, c.String(), w.Loc)

			return false
		}
	case model.CapTryFrom:
		if !g.HasValidation() {
			diags.AddError("capability_guard_conflict",
				"try_from needs fallible construction; this newtype never fails, request from instead",
				w.Name, c.String(), w.Loc)

			return false
		}
	}

	return true
}

// checkDefault enforces the companion default expression and, for
// fallible wrappers, proves at generation time that the default survives
// the full sanitize/validate chain. An unprovable or failing default is
// a configuration error, not a latent runtime panic.
func checkDefault(diags *diagnostic.Diagnostics, w *model.Wrapper, g guard.Guard) bool {
	if w.DefaultExpr == "" {
		diags.AddError("missing_default",
			fmt.Sprintf("capability \"default\" is requested for %s, but the \"default\" option is missing", w.Name),
			w.Name, "default", w.Loc)

		return false
	}

	if !g.HasValidation() {
		return true
	}

	raw, err := strconv.ParseFloat(w.DefaultExpr, 64)
	if err != nil {
		diags.AddError("default_not_literal",
			fmt.Sprintf("default %q is not a numeric literal and cannot be proven valid for a validated newtype", w.DefaultExpr),
			w.Name, "default", w.Loc)

		return false
	}

	sanitized, exact := model.Sanitize(g.Sanitizers, raw)
	if !exact {
		diags.AddError("default_not_provable",
			fmt.Sprintf("default %q passes through an opaque custom sanitizer and cannot be proven valid", w.DefaultExpr),
			w.Name, "default", w.Loc)

		return false
	}

	idx, exact := model.Violated(g.Validators, sanitized)
	if !exact {
		diags.AddError("default_not_provable",
			fmt.Sprintf("default %q is checked by an opaque custom validator and cannot be proven valid", w.DefaultExpr),
			w.Name, "default", w.Loc)

		return false
	}

	if idx >= 0 {
		v := g.Validators[idx]
		diags.AddError("default_fails_validation",
			fmt.Sprintf("default %q violates the %q validator (%s)", w.DefaultExpr, v.Kind, v.ErrorVariant()),
			w.Name, "default", v.Loc)

		return false
	}

	return true
}

// checkArbitrary rejects randomized generation for wrappers validated by
// an opaque "with" predicate: the generated sampler draws candidates and
// feeds them through the constructor, and a predicate that is opaque at
// generation time cannot be proven to accept any candidate, so the
// sampler cannot be proven to terminate.
func checkArbitrary(diags *diagnostic.Diagnostics, w *model.Wrapper, g guard.Guard) bool {
	if !g.HasValidation() {
		return true
	}

	v := w.FindValidator(model.ValidatorWith)
	if v == nil {
		return true
	}

	diags.AddError("arbitrary_not_provable",
		`arbitrary draws candidates through the constructor, and an opaque "with" validator cannot be proven to accept any candidate`,
		w.Name, "arbitrary", v.Loc)

	return false
}

// warnFloatEquality flags eq/hash requests on float wrappers that admit
// NaN: NaN != NaN makes equality non-reflexive and map keys surprising.
func warnFloatEquality(diags *diagnostic.Diagnostics, w *model.Wrapper) {
	if w.FindValidator(model.ValidatorFinite) != nil {
		return
	}

	for _, c := range []model.Capability{model.CapEq, model.CapHash} {
		if w.HasCapability(c) {
			diags.AddWarning("nan_equality",
				fmt.Sprintf("capability %q on a float newtype without a \"finite\" validator admits NaN, for which equality is not reflexive", c),
				w.Name, c.String(), w.Loc)
		}
	}
}
