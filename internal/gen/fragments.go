package gen

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"newtype-generator/internal/capability"
	"newtype-generator/internal/guard"
	"newtype-generator/internal/model"
)

// blockCtx is the shared rendering context for every fragment of one
// wrapper's artifact.
type blockCtx struct {
	TypeName      string
	InnerType     string
	InnerTitle    string // "Float64" / "Float32", for conversion names
	Bits          int
	ErrorTypeName string
	Fallible      bool
	DefaultExpr   string

	// Lo and Hi are literal bounds for randomized generation, taken from
	// min/max validators when present.
	Lo string
	Hi string

	// MinLit and MaxLit are schema bounds; empty when the corresponding
	// validator is absent.
	MinLit string
	MaxLit string

	// Schema is the JSON schema fragment for the json_schema capability.
	Schema string
}

func newBlockCtx(w *model.Wrapper, grd guard.Guard) blockCtx {
	ctx := blockCtx{
		TypeName:    w.Name,
		InnerType:   w.Inner.GoType(),
		Bits:        w.Inner.Bits(),
		Fallible:    grd.HasValidation(),
		DefaultExpr: w.DefaultExpr,
		Lo:          floatLit(-1_000_000),
		Hi:          floatLit(1_000_000),
	}

	ctx.InnerTitle = strings.ToUpper(ctx.InnerType[:1]) + ctx.InnerType[1:]

	if ctx.Fallible {
		ctx.ErrorTypeName = ErrorTypeName(w.Name)
	}

	if v := w.FindValidator(model.ValidatorMin); v != nil {
		ctx.MinLit = floatLit(v.Bound)
		ctx.Lo = ctx.MinLit
	}

	if v := w.FindValidator(model.ValidatorMax); v != nil {
		ctx.MaxLit = floatLit(v.Bound)
		ctx.Hi = ctx.MaxLit
	}

	schema := `{"type":"number"`
	if ctx.MinLit != "" {
		schema += `,"minimum":` + ctx.MinLit
	}

	if ctx.MaxLit != "" {
		schema += `,"maximum":` + ctx.MaxLit
	}

	ctx.Schema = schema + "}"

	return ctx
}

// floatLit renders a float as a Go literal valid in float64 context.
func floatLit(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Sanitizer and validator statement fragments, one line-set per rule
// kind. Lines are individually templated and then indented into the
// constructor body.

var sanitizerLines = map[model.SanitizerKind][]string{
	model.SanitizerClamp: {
		"v = min(max(v, {{.min}}), {{.max}})",
	},
	model.SanitizerWith: {
		"v = ({{.expr}})(v)",
	},
}

var validatorLines = map[model.ValidatorKind][]string{
	model.ValidatorMin: {
		"if v < {{.bound}} {",
		"\treturn {{.zero}}, {{.variant}}",
		"}",
	},
	model.ValidatorMax: {
		"if v > {{.bound}} {",
		"\treturn {{.zero}}, {{.variant}}",
		"}",
	},
	model.ValidatorFinite: {
		"if math.IsNaN(v) || math.IsInf(v, 0) {",
		"\treturn {{.zero}}, {{.variant}}",
		"}",
	},
	model.ValidatorWith: {
		"if !({{.expr}})(v) {",
		"\treturn {{.zero}}, {{.variant}}",
		"}",
	},
}

// renderLines executes each line template against data. Templates are
// tiny, so per-line parsing is fine at generation scale.
func renderLines(lines []string, data map[string]any) ([]string, error) {
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		tmpl, err := template.New("line").Parse(line)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		out = append(out, buf.String())
	}

	return out, nil
}

// constructorData extends blockCtx with the rendered rule statements.
type constructorData struct {
	blockCtx
	Sanitize []string
	Validate []string
}

// renderConstructor emits exactly one constructor matching the guard's
// fallibility: sanitizers in declaration order, then (when fallible)
// validators in declaration order with first-violation short-circuit.
func renderConstructor(ctx blockCtx, grd guard.Guard) (string, error) {
	data := constructorData{blockCtx: ctx}

	for _, s := range grd.Sanitizers {
		lines, err := renderLines(sanitizerLines[s.Kind], map[string]any{
			"min":  floatLit(s.Min),
			"max":  floatLit(s.Max),
			"expr": s.Expr,
		})
		if err != nil {
			return "", err
		}

		data.Sanitize = append(data.Sanitize, lines...)
	}

	tmpl := ctorInfallibleTemplate

	if grd.HasValidation() {
		tmpl = ctorFallibleTemplate

		for _, v := range grd.Validators {
			lines, err := renderLines(validatorLines[v.Kind], map[string]any{
				"bound":   floatLit(v.Bound),
				"expr":    v.Expr,
				"zero":    ctx.TypeName + "{}",
				"variant": ctx.ErrorTypeName + v.ErrorVariant(),
			})
			if err != nil {
				return "", err
			}

			data.Validate = append(data.Validate, lines...)
		}
	}

	return renderFragment(tmpl, data)
}

func renderFragment(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

var ctorInfallibleTemplate = template.Must(template.New("ctor_infallible").Parse(
	`// New{{.TypeName}} constructs a {{.TypeName}}, sanitizing the raw value.
func New{{.TypeName}}(raw {{.InnerType}}) {{.TypeName}} {
	v := raw
{{range .Sanitize}}	{{.}}
{{end}}
	return {{.TypeName}}{inner: v}
}
`))

var ctorFallibleTemplate = template.Must(template.New("ctor_fallible").Parse(
	`// New{{.TypeName}} sanitizes raw and validates the result. On failure it
// returns the error of the first violated rule and no wrapper value.
func New{{.TypeName}}(raw {{.InnerType}}) ({{.TypeName}}, error) {
	v := raw
{{range .Sanitize}}	{{.}}
{{end}}
{{range .Validate}}	{{.}}
{{end}}
	return {{.TypeName}}{inner: v}, nil
}
`))

var uncheckedTemplate = template.Must(template.New("unchecked").Parse(
	`// New{{.TypeName}}Unchecked constructs a {{.TypeName}} without sanitization
// or validation. The caller is responsible for upholding the type's
// invariants.
func New{{.TypeName}}Unchecked(raw {{.InnerType}}) {{.TypeName}} {
	return {{.TypeName}}{inner: raw}
}
`))

var extractorTemplate = template.Must(template.New("extractor").Parse(
	`// IntoInner unwraps the {{.TypeName}} back to its inner {{.InnerType}}.
// Extraction never re-validates: the invariant was established at
// construction time.
func (n {{.TypeName}}) IntoInner() {{.InnerType}} {
	return n.inner
}
`))

// newtypeTemplate arranges the artifact in its fixed structural order:
// type definition, constructor(s), extractor, capability blocks, error
// type.
var newtypeTemplate = template.Must(template.New("newtype").Parse(
	`// Code generated by newtype-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}import (
{{range .Imports}}	"{{.}}"
{{end}})

{{end}}{{range .Doc}}// {{.}}
{{end}}{{if .StructNote}}// {{.StructNote}}
{{end}}type {{.TypeName}} struct {
	inner {{.InnerType}}
}

{{.Constructor}}

{{if .Unchecked}}{{.Unchecked}}

{{end}}{{.Extractor}}
{{range .Blocks}}
{{.}}
{{end}}{{if .ErrorType}}
{{.ErrorType}}
{{end}}`))

// collectImports derives the generated file's import set from the active
// rules and capabilities. Custom expressions are scanned for a math
// qualifier; anything else they reference must be package-local.
func collectImports(grd guard.Guard, resolved capability.Resolved) []string {
	need := map[string]bool{}

	for _, v := range grd.Validators {
		if v.Kind == model.ValidatorFinite {
			need["math"] = true
		}

		if strings.Contains(v.Expr, "math.") {
			need["math"] = true
		}
	}

	for _, s := range grd.Sanitizers {
		if strings.Contains(s.Expr, "math.") {
			need["math"] = true
		}
	}

	for _, c := range resolved.Irregular {
		switch c {
		case model.CapDisplay:
			need["strconv"] = true
		case model.CapFromStr:
			need["strconv"] = true
			need["fmt"] = true
		case model.CapSerialize, model.CapDeserialize:
			need["encoding/json"] = true
		case model.CapArbitrary:
			need["math/rand"] = true
		}
	}

	imports := make([]string, 0, len(need))
	for path := range need {
		imports = append(imports, path)
	}

	// Deterministic emission order.
	sort.Strings(imports)

	return imports
}
