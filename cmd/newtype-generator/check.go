package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"newtype-generator/internal/capability"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/guard"
	"newtype-generator/internal/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a definition file without generating code",
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

		// Run classification and resolution per wrapper so every
		// misconfiguration is reported in one pass.
		all := &diagnostic.Diagnostics{}
		all.Merge(diags)

		for i := range wrappers {
			w := &wrappers[i]

			g, guardDiags := guard.Classify(w)

			all.Merge(guardDiags)
			if guardDiags.HasErrors() {
				continue
			}

			_, resolveDiags := capability.Resolve(w, g, feats)
			all.Merge(resolveDiags)
		}

		if stop := report(all); stop {
			return errors.New("definition errors")
		}

		fmt.Printf("%s: %d newtype(s) ok\n", defsPath, len(wrappers))

		return nil
	},
}
