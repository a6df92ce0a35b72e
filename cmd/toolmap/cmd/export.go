package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/importer"
)

// NewExportCommand writes the catalog as the structured import format.
func NewExportCommand(app Application) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:     "export",
		GroupID: "catalog",
		Short:   "Export the catalog as JSON",
		Long: `Export serializes the full catalog to the structured JSON format the
import command accepts, so an exported catalog re-imports cleanly.`,
		RunE: func(c *cobra.Command, args []string) error {
			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			payload, err := importer.Export(tm.Catalog().List())
			if err != nil {
				return err
			}

			if output == "" {
				c.Println(string(payload))
				return nil
			}
			if err := os.WriteFile(output, payload, constants.FilePermissions); err != nil {
				return err
			}
			c.Printf("Exported %d tools to %s\n", tm.Catalog().Len(), output)
			return nil
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return c
}
