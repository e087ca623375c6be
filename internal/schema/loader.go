package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile loads a definition file, dispatching on its extension.
// YAML is the primary format; TOML is supported for projects that keep
// the rest of their configuration in TOML.
func LoadFile(path string) (*DefinitionFile, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".toml":
		return loadTOML(path)
	default:
		return nil, fmt.Errorf("unsupported definition file extension %q (want .yaml, .yml or .toml)", ext)
	}
}

// Parse parses YAML definition content.
func Parse(data []byte) (*DefinitionFile, error) {
	var df DefinitionFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}

	return &df, nil
}

func loadYAML(path string) (*DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition file: %w", err)
	}

	df, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	df.Path = path

	return df, nil
}

// loadTOML decodes the file into a generic map and lets mapstructure
// shape it into the schema. WeaklyTypedInput smooths over TOML's
// int/float literal split; the rule hook rebuilds Rule values from their
// single-key table form.
func loadTOML(path string) (*DefinitionFile, error) {
	var rawMap map[string]any
	if _, err := toml.DecodeFile(path, &rawMap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var df DefinitionFile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &df,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       ruleDecodeHook,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(rawMap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	df.Path = path

	return &df, nil
}

// ruleDecodeHook converts the TOML rule forms into Rule values:
//
//	{min = 0.0}                     -> scalar argument
//	{clamp = {min = -1.0, max = 1.0}} -> named arguments
//	"finite"                        -> bare name
//
// TOML carries no usable position info, so rule locations stay zero and
// diagnostics fall back to the definition line.
func ruleDecodeHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Rule{}) {
		return data, nil
	}

	if from.Kind() == reflect.String {
		return Rule{Name: data.(string)}, nil
	}

	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("a rule must be a string or a single-key table, got %T", data)
	}

	if len(m) != 1 {
		return nil, fmt.Errorf("a rule must be a single \"name = argument\" pair, got %d keys", len(m))
	}

	var rule Rule
	for name, arg := range m {
		rule.Name = name

		if args, isMap := arg.(map[string]any); isMap {
			rule.Args = args
		} else {
			rule.Value = arg
		}
	}

	return rule, nil
}
