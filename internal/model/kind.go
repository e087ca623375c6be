package model

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies the inner primitive type a newtype wraps.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindFloat32
	KindFloat64
	KindInt
	KindInt64
	KindString
	KindAny

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// Category groups kinds by the generation pipeline that handles them.
type Category int

const (
	CategoryFloat Category = iota + 1
	CategoryInt
	CategoryString
	CategoryAny
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryFloat:
		return "float"
	case CategoryInt:
		return "integer"
	case CategoryString:
		return "string"
	case CategoryAny:
		return "any"
	default:
		return "unknown"
	}
}

// Category returns the generation category of the kind.
func (k Kind) Category() Category {
	switch k {
	case KindFloat32, KindFloat64:
		return CategoryFloat
	case KindInt, KindInt64:
		return CategoryInt
	case KindString:
		return CategoryString
	case KindAny:
		return CategoryAny
	default:
		return 0
	}
}

// Bits returns the bit width of a float kind. It is only meaningful for
// the float category, where it selects strconv parse/format sizes.
func (k Kind) Bits() int {
	switch k {
	case KindFloat32:
		return 32
	case KindFloat64:
		return 64
	default:
		panic("only float kinds have a meaningful bit width, but requested for: " + k.String())
	}
}

// GoType returns the Go type name the kind maps to in generated code.
func (k Kind) GoType() string {
	switch k {
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindString:
		return "string"
	case KindAny:
		return "any"
	default:
		return ""
	}
}

// ParseKind resolves a type name from a definition file into a Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "float32":
		return KindFloat32, true
	case "float64":
		return KindFloat64, true
	case "int":
		return KindInt, true
	case "int64":
		return KindInt64, true
	case "string":
		return KindString, true
	case "any":
		return KindAny, true
	default:
		return 0, false
	}
}
