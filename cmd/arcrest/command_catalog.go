package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sudo-Ivan/arcgis-rest/pkg/arcrest"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog <url>",
	Short: "List the folders and services of a catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := arcrest.NewClient(timeout)
		cat, err := arcrest.NewCatalog(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		folders := cat.Folders()
		fmt.Printf("Folders (%d):\n", len(folders))
		for _, f := range folders {
			fmt.Printf("  %s\n", f)
		}

		entries := cat.ServiceEntries()
		fmt.Printf("Services (%d):\n", len(entries))
		for _, si := range entries {
			fmt.Printf("  %s (%s)\n", si.Str("name"), si.Str("type"))
		}
		return nil
	},
}
