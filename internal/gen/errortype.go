package gen

import (
	"text/template"

	"newtype-generator/internal/model"
)

// ErrorTypeName derives the error type name from the wrapper name using
// a fixed suffix convention. A collision with a caller-chosen name is a
// documented limitation, not detected.
func ErrorTypeName(typeName string) string {
	return typeName + "Error"
}

type errorTypeData struct {
	ErrorTypeName string
	TypeName      string
	Variants      []errorVariant
}

type errorVariant struct {
	Name    string
	Message string
}

// renderErrorType emits the closed error enum for a fallible wrapper:
// one variant per validator, in declaration order, each with a fixed
// message naming the violated rule.
func renderErrorType(typeName string, validators []model.Validator) (string, error) {
	data := errorTypeData{
		ErrorTypeName: ErrorTypeName(typeName),
		TypeName:      typeName,
	}

	for _, v := range validators {
		data.Variants = append(data.Variants, errorVariant{
			Name:    v.ErrorVariant(),
			Message: v.ErrorMessage(),
		})
	}

	return renderFragment(errorTypeTemplate, data)
}

var errorTypeTemplate = template.Must(template.New("error_type").Parse(
	`// {{.ErrorTypeName}} identifies the validation rule a rejected value
// violated during {{.TypeName}} construction.
type {{.ErrorTypeName}} int

const (
{{range $i, $v := .Variants}}	{{$.ErrorTypeName}}{{$v.Name}}{{if eq $i 0}} {{$.ErrorTypeName}} = iota + 1{{end}}
{{end}})

// Error describes the violated rule. The message depends only on which
// rule failed, never on the rejected value.
func (e {{.ErrorTypeName}}) Error() string {
	switch e {
{{range .Variants}}	case {{$.ErrorTypeName}}{{.Name}}:
		return "{{.Message}}"
{{end}}	default:
		return "unknown"
	}
}
`))
