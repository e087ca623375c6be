package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"newtype-generator/internal/schema"
)

// describeCmd dumps the parsed attribute model. Debug aid for working
// out why a definition resolves the way it does.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Dump the parsed attribute model of a definition file",
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := schema.LoadFile(defsPath)
		if err != nil {
			return err
		}

		wrappers, diags := df.Model()
		report(diags)

		spew.Dump(wrappers)

		return nil
	},
}
