package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefinitionFile is the root of a newtype definition file. This is the
// authoritative, human-reviewed description of the wrappers to generate.
type DefinitionFile struct {
	// Version of the definition schema (for future compatibility).
	Version string `yaml:"version,omitempty" mapstructure:"version"`

	// Package is the Go package the artifacts are emitted into.
	Package string `yaml:"package" mapstructure:"package"`

	// Newtypes is the list of wrapper definitions.
	Newtypes []NewtypeDef `yaml:"newtypes" mapstructure:"newtypes"`

	// Path of the file the definitions were loaded from. Populated by the
	// loader, not part of the schema.
	Path string `yaml:"-" mapstructure:"-"`
}

// NewtypeDef defines a single restricted scalar.
type NewtypeDef struct {
	// Name of the generated type. Go casing decides visibility.
	Name string `yaml:"name" mapstructure:"name"`

	// Type is the inner type name (e.g. "float64").
	Type string `yaml:"type" mapstructure:"type"`

	// Doc is doc-comment text re-emitted verbatim.
	Doc string `yaml:"doc,omitempty" mapstructure:"doc"`

	// Sanitize is the ordered sanitizer list.
	Sanitize RuleList `yaml:"sanitize,omitempty" mapstructure:"sanitize"`

	// Validate is the ordered validator list.
	Validate RuleList `yaml:"validate,omitempty" mapstructure:"validate"`

	// Derive lists requested capabilities by name. Duplicates collapse:
	// the request is a set.
	Derive []string `yaml:"derive,omitempty" mapstructure:"derive"`

	// Default is the optional default-value expression. Accepts a bare
	// number or a string.
	Default any `yaml:"default,omitempty" mapstructure:"default"`

	// NewUnchecked requests the skip-validation constructor.
	NewUnchecked bool `yaml:"new_unchecked,omitempty" mapstructure:"new_unchecked"`

	// Line of the definition in the source file (YAML only).
	Line int `yaml:"-" mapstructure:"-"`
}

// UnmarshalYAML decodes the definition and records its line for
// diagnostics.
func (d *NewtypeDef) UnmarshalYAML(node *yaml.Node) error {
	type raw NewtypeDef

	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}

	*d = NewtypeDef(r)
	d.Line = node.Line

	return nil
}

// Rule is one sanitizer or validator entry. Supported YAML forms:
//   - Bare name:        - finite
//   - Scalar argument:  - min: 0.0
//   - Named arguments:  - clamp: {min: -1000, max: 1000}
type Rule struct {
	// Name of the rule ("clamp", "with", "min", "max", "finite").
	Name string

	// Value is the scalar argument, when the rule takes one.
	Value any

	// Args are the named arguments, when the rule takes several.
	Args map[string]any

	// Line and Column of the rule in the source file (YAML only).
	Line   int
	Column int
}

// RuleList is an ordered collection of rules. Order is semantic for
// sanitizers: they apply in declaration order.
type RuleList []Rule

// UnmarshalYAML decodes a rule from its compact YAML forms, keeping the
// node position for diagnostics.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	r.Line = node.Line
	r.Column = node.Column

	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&r.Name)

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: a rule must be a single \"name: argument\" pair", node.Line)
		}

		key, val := node.Content[0], node.Content[1]
		if err := key.Decode(&r.Name); err != nil {
			return err
		}

		if val.Kind == yaml.MappingNode {
			return val.Decode(&r.Args)
		}

		return val.Decode(&r.Value)

	default:
		return fmt.Errorf("line %d: unexpected YAML node for a rule", node.Line)
	}
}
