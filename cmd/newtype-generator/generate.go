package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/gen"
	"newtype-generator/internal/schema"
)

var (
	outputDir   string
	packageName string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate newtype source files from a definition file",
	RunE: func(cmd *cobra.Command, args []string) error {
		feats, err := loadFeatures()
		if err != nil {
			return err
		}

		df, err := schema.LoadFile(defsPath)
		if err != nil {
			return err
		}

		wrappers, diags := df.Model()
		if stop := report(diags); stop {
			return errors.New("definition errors, nothing generated")
		}

		config := gen.Config{OutputDir: outputDir, PackageName: packageName}

		generator := gen.NewGenerator(config, feats)

		files, genDiags := generator.Generate(wrappers)
		if stop := report(genDiags); stop {
			return errors.New("generation errors")
		}

		if err := gen.WriteFiles(files, outputDir); err != nil {
			return err
		}

		for _, f := range files {
			fmt.Println("wrote", f.Filename)
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outputDir, "out", "o", "./generated", "output directory")
	generateCmd.Flags().StringVarP(&packageName, "package", "p", "", "override the package name of generated files")
}

// report prints all diagnostics to stderr and reports whether errors
// were present.
func report(diags *diagnostic.Diagnostics) bool {
	for _, w := range diags.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}

	for _, e := range diags.Errors {
		fmt.Fprintln(os.Stderr, "error:", e.String())
	}

	return diags.HasErrors()
}
