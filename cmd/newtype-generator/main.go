// Package main provides the CLI entrypoint for newtype-generator.
//
// newtype-generator is a codegen tool that:
//   - Loads declarative newtype definitions (YAML or TOML)
//   - Classifies each newtype's construction path (fallible or not)
//   - Resolves requested capabilities against the active feature set
//   - Generates wrapper types, constructors, and error types as Go source
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"newtype-generator/internal/model"
)

var (
	defsPath string

	flagNewUnchecked bool
	flagSerde        bool
	flagSchema       bool
	flagArbitrary    bool
)

var rootCmd = &cobra.Command{
	Use:           "newtype-generator",
	Short:         "Generate restricted scalar types from declarative definitions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&defsPath, "file", "f", "newtypes.yaml", "definition file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVar(&flagNewUnchecked, "new-unchecked", false, "enable the unsafe skip-validation constructor")
	rootCmd.PersistentFlags().BoolVar(&flagSerde, "serde", false, "enable the serialize/deserialize capabilities")
	rootCmd.PersistentFlags().BoolVar(&flagSchema, "schema", false, "enable the json_schema capability")
	rootCmd.PersistentFlags().BoolVar(&flagArbitrary, "arbitrary", false, "enable randomized-instance generation")

	rootCmd.AddCommand(generateCmd, checkCmd, describeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadFeatures merges the environment feature set with command-line
// flags. Flags only switch features on; the environment is the baseline.
func loadFeatures() (model.Features, error) {
	var feats model.Features
	if err := env.Parse(&feats); err != nil {
		return model.Features{}, fmt.Errorf("parsing feature environment: %w", err)
	}

	feats.NewUnchecked = feats.NewUnchecked || flagNewUnchecked
	feats.Serde = feats.Serde || flagSerde
	feats.Schema = feats.Schema || flagSchema
	feats.Arbitrary = feats.Arbitrary || flagArbitrary

	return feats, nil
}
