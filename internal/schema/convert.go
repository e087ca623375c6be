package schema

import (
	"fmt"
	"strconv"

	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/model"
)

// Model converts the loaded definitions into the attribute model, the
// structured record everything downstream consumes. Name resolution
// happens here: every rule and capability token must correspond to a
// known kind, and numeric arguments must be numeric.
func (f *DefinitionFile) Model() ([]model.Wrapper, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	var wrappers []model.Wrapper

	for i := range f.Newtypes {
		def := &f.Newtypes[i]

		w, defDiags := f.convertDef(def)
		diags.Merge(defDiags)

		if !defDiags.HasErrors() {
			wrappers = append(wrappers, w)
		}
	}

	return wrappers, diags
}

func (f *DefinitionFile) convertDef(def *NewtypeDef) (model.Wrapper, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	loc := f.loc(def.Line, 0)

	if def.Name == "" {
		diags.AddError("missing_name", "newtype definition has no name", "", "name", loc)
		return model.Wrapper{}, diags
	}

	kind, ok := model.ParseKind(def.Type)
	if !ok {
		diags.AddError("unknown_inner_type",
			fmt.Sprintf("unknown inner type %q", def.Type),
			def.Name, "type", loc)

		return model.Wrapper{}, diags
	}

	w := model.Wrapper{
		Name:         def.Name,
		Package:      f.Package,
		Doc:          def.Doc,
		Inner:        kind,
		NewUnchecked: def.NewUnchecked,
		Loc:          loc,
	}

	if def.Default != nil {
		expr, ok := asExpr(def.Default)
		if !ok {
			diags.AddError("invalid_default",
				fmt.Sprintf("default must be a number or a string expression, got %T", def.Default),
				def.Name, "default", loc)
		}

		w.DefaultExpr = expr
	}

	for _, rule := range def.Sanitize {
		s, ok := f.convertSanitizer(diags, def, rule)
		if ok {
			w.Sanitizers = append(w.Sanitizers, s)
		}
	}

	for _, rule := range def.Validate {
		v, ok := f.convertValidator(diags, def, rule)
		if ok {
			w.Validators = append(w.Validators, v)
		}
	}

	for _, name := range def.Derive {
		c, ok := model.ParseCapability(name)
		if !ok {
			diags.AddError("unknown_capability",
				fmt.Sprintf("unknown capability %q", name),
				def.Name, name, loc)

			continue
		}

		// Derive requests are a set: duplicates collapse here.
		w.AddCapability(c)
	}

	return w, diags
}

func (f *DefinitionFile) convertSanitizer(diags *diagnostic.Diagnostics, def *NewtypeDef, rule Rule) (model.Sanitizer, bool) {
	loc := f.ruleLoc(def, rule)

	switch rule.Name {
	case "clamp":
		min, okMin := asFloat(rule.Args["min"])
		max, okMax := asFloat(rule.Args["max"])

		if !okMin || !okMax {
			diags.AddError("invalid_rule_argument",
				"clamp needs numeric \"min\" and \"max\" arguments",
				def.Name, "clamp", loc)

			return model.Sanitizer{}, false
		}

		return model.Sanitizer{Kind: model.SanitizerClamp, Min: min, Max: max, Loc: loc}, true

	case "with":
		expr, ok := rule.Value.(string)
		if !ok || expr == "" {
			diags.AddError("invalid_rule_argument",
				"with needs a Go function expression as its argument",
				def.Name, "with", loc)

			return model.Sanitizer{}, false
		}

		return model.Sanitizer{Kind: model.SanitizerWith, Expr: expr, Loc: loc}, true

	default:
		diags.AddError("unknown_sanitizer",
			fmt.Sprintf("unknown sanitizer %q", rule.Name),
			def.Name, rule.Name, loc)

		return model.Sanitizer{}, false
	}
}

func (f *DefinitionFile) convertValidator(diags *diagnostic.Diagnostics, def *NewtypeDef, rule Rule) (model.Validator, bool) {
	loc := f.ruleLoc(def, rule)

	switch rule.Name {
	case "min", "max":
		bound, ok := asFloat(rule.Value)
		if !ok {
			diags.AddError("invalid_rule_argument",
				fmt.Sprintf("%s needs a numeric bound", rule.Name),
				def.Name, rule.Name, loc)

			return model.Validator{}, false
		}

		kind := model.ValidatorMin
		if rule.Name == "max" {
			kind = model.ValidatorMax
		}

		return model.Validator{Kind: kind, Bound: bound, Loc: loc}, true

	case "finite":
		return model.Validator{Kind: model.ValidatorFinite, Loc: loc}, true

	case "with":
		expr, ok := rule.Value.(string)
		if !ok || expr == "" {
			diags.AddError("invalid_rule_argument",
				"with needs a Go predicate expression as its argument",
				def.Name, "with", loc)

			return model.Validator{}, false
		}

		return model.Validator{Kind: model.ValidatorWith, Expr: expr, Loc: loc}, true

	default:
		diags.AddError("unknown_validator",
			fmt.Sprintf("unknown validator %q", rule.Name),
			def.Name, rule.Name, loc)

		return model.Validator{}, false
	}
}

func (f *DefinitionFile) loc(line, column int) model.Location {
	return model.Location{File: f.Path, Line: line, Column: column}
}

// ruleLoc prefers the rule's own position, falling back to the
// definition's line (TOML rules carry no positions).
func (f *DefinitionFile) ruleLoc(def *NewtypeDef, rule Rule) model.Location {
	if rule.Line > 0 {
		return f.loc(rule.Line, rule.Column)
	}

	return f.loc(def.Line, 0)
}

// asExpr renders a default value as a Go expression string.
func asExpr(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}

	if n, ok := asFloat(v); ok {
		return strconv.FormatFloat(n, 'g', -1, 64), true
	}

	return "", false
}

// asFloat coerces the loosely-typed numbers YAML and TOML hand back.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
