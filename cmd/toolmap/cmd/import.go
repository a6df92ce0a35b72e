package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewImportCommand imports tools from a file or stdin.
func NewImportCommand(app Application) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:     "import [file]",
		GroupID: "catalog",
		Short:   "Import tools from JSON or pipe-delimited text",
		Long: `Import reads tool records from a file, or from stdin when no file is
given, and merges the new ones into the catalog.

Two formats are accepted. A JSON array of tool objects (or an object
with a "data" array), or one tool per line:

    Name | URL | Description | Category | Tag1,Tag2

Lines need at least a name and a URL. Records whose URL matches an
existing tool are reported as duplicates and skipped; nothing is merged
without confirmation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			input, err := readInput(c, args)
			if err != nil {
				return err
			}

			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			result := tm.Classify(input)
			c.Printf("Parsed %d new, %d duplicate records.\n", len(result.Accepted), len(result.Rejected))
			for _, tool := range result.Rejected {
				c.Printf("  duplicate: %s (%s)\n", tool.Name, tool.URL)
			}
			if len(result.Accepted) == 0 {
				return nil
			}
			for _, tool := range result.Accepted {
				c.Printf("  new: %s (%s)\n", tool.Name, tool.URL)
			}

			if !yes && !confirm(c, "Merge new records into the catalog?") {
				c.Println("Aborted.")
				return nil
			}

			added, err := tm.Merge(result)
			if err != nil {
				return err
			}
			c.Printf("Added %d tools.\n", added)
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "merge without confirmation")

	return c
}

func readInput(c *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(c.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
