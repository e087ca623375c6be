package gen

import (
	"fmt"
	"text/template"

	"newtype-generator/internal/model"
)

// renderCapability assembles the implementation block for one irregular
// capability. Blocks are independent: each renders (or fails) on its
// own.
func renderCapability(c model.Capability, ctx blockCtx) (string, error) {
	tmpl, ok := capabilityTemplates[c]
	if !ok {
		return "", fmt.Errorf("capability %q has no implementation template", c)
	}

	return renderFragment(tmpl, ctx)
}

// Guard-sensitive blocks branch on .Fallible: construction either
// returns the wrapper directly or threads the error type through.
var capabilityTemplates = map[model.Capability]*template.Template{
	model.CapOrd: template.Must(template.New("ord").Parse(
		`// Compare returns -1, 0, or 1 ordering {{.TypeName}} by its inner value.
func (n {{.TypeName}}) Compare(other {{.TypeName}}) int {
	switch {
	case n.inner < other.inner:
		return -1
	case n.inner > other.inner:
		return 1
	default:
		return 0
	}
}

// Less reports whether n orders before other.
func (n {{.TypeName}}) Less(other {{.TypeName}}) bool {
	return n.inner < other.inner
}
`)),

	model.CapDisplay: template.Must(template.New("display").Parse(
		`// String implements fmt.Stringer.
func (n {{.TypeName}}) String() string {
	return strconv.FormatFloat(float64(n.inner), 'g', -1, {{.Bits}})
}
`)),

	model.CapAsRef: template.Must(template.New("as_ref").Parse(
		`// Get returns the inner value without consuming the wrapper.
func (n {{.TypeName}}) Get() {{.InnerType}} {
	return n.inner
}
`)),

	model.CapInto: template.Must(template.New("into").Parse(
		`// {{.InnerTitle}} converts the {{.TypeName}} into its inner {{.InnerType}}.
func (n {{.TypeName}}) {{.InnerTitle}}() {{.InnerType}} {
	return n.inner
}
`)),

	model.CapFrom: template.Must(template.New("from").Parse(
		`// {{.TypeName}}From{{.InnerTitle}} is the conversion form of the constructor.
func {{.TypeName}}From{{.InnerTitle}}(raw {{.InnerType}}) {{.TypeName}} {
	return New{{.TypeName}}(raw)
}
`)),

	model.CapTryFrom: template.Must(template.New("try_from").Parse(
		`// {{.TypeName}}TryFrom{{.InnerTitle}} is the fallible conversion form of
// the constructor.
func {{.TypeName}}TryFrom{{.InnerTitle}}(raw {{.InnerType}}) ({{.TypeName}}, error) {
	return New{{.TypeName}}(raw)
}
`)),

	model.CapFromStr: template.Must(template.New("from_str").Parse(
		`// Parse{{.TypeName}} parses s and constructs a {{.TypeName}} from the
// result.
func Parse{{.TypeName}}(s string) ({{.TypeName}}, error) {
	raw, err := strconv.ParseFloat(s, {{.Bits}})
	if err != nil {
		return {{.TypeName}}{}, fmt.Errorf("parse {{.TypeName}}: %w", err)
	}

{{if .Fallible}}	return New{{.TypeName}}({{.InnerType}}(raw))
{{else}}	return New{{.TypeName}}({{.InnerType}}(raw)), nil
{{end}}}
`)),

	model.CapDefault: template.Must(template.New("default").Parse(
		`{{if .Fallible}}// Default{{.TypeName}} returns the default {{.TypeName}}. The default was
// proven valid when this code was generated, so construction cannot fail
// here.
func Default{{.TypeName}}() {{.TypeName}} {
	n, err := New{{.TypeName}}({{.DefaultExpr}})
	if err != nil {
		panic("default value for {{.TypeName}} failed validation: " + err.Error())
	}

	return n
}
{{else}}// Default{{.TypeName}} returns the default {{.TypeName}}.
func Default{{.TypeName}}() {{.TypeName}} {
	return New{{.TypeName}}({{.DefaultExpr}})
}
{{end}}`)),

	model.CapSerialize: template.Must(template.New("serialize").Parse(
		`// MarshalJSON implements json.Marshaler.
func (n {{.TypeName}}) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.inner)
}
`)),

	model.CapDeserialize: template.Must(template.New("deserialize").Parse(
		`// UnmarshalJSON implements json.Unmarshaler. Decoded values pass through
// the full sanitization{{if .Fallible}} and validation{{end}} chain.
func (n *{{.TypeName}}) UnmarshalJSON(data []byte) error {
	var raw {{.InnerType}}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

{{if .Fallible}}	parsed, err := New{{.TypeName}}(raw)
	if err != nil {
		return err
	}

	*n = parsed
{{else}}	*n = New{{.TypeName}}(raw)
{{end}}
	return nil
}
`)),

	model.CapJSONSchema: template.Must(template.New("json_schema").Parse(
		"// JSONSchema returns the JSON schema fragment describing {{.TypeName}}.\n" +
			"func ({{.TypeName}}) JSONSchema() string {\n" +
			"\treturn `{{.Schema}}`\n" +
			"}\n")),

	model.CapArbitrary: template.Must(template.New("arbitrary").Parse(
		`{{if .Fallible}}// Arbitrary{{.TypeName}} returns a randomly generated {{.TypeName}} for
// property testing. Candidates are drawn from the validated range and
// rejected through the real constructor.
func Arbitrary{{.TypeName}}(r *rand.Rand) {{.TypeName}} {
	for {
		raw := {{.InnerType}}({{.Lo}} + r.Float64()*({{.Hi}}-({{.Lo}})))

		n, err := New{{.TypeName}}(raw)
		if err == nil {
			return n
		}
	}
}
{{else}}// Arbitrary{{.TypeName}} returns a randomly generated {{.TypeName}} for
// property testing.
func Arbitrary{{.TypeName}}(r *rand.Rand) {{.TypeName}} {
	return New{{.TypeName}}({{.InnerType}}({{.Lo}} + r.Float64()*({{.Hi}}-({{.Lo}}))))
}
{{end}}`)),
}
