package cmd

import (
	"github.com/spf13/cobra"
)

// NewDuplicatesCommand scans for tools sharing a normalized name.
func NewDuplicatesCommand(app Application) *cobra.Command {
	var prune bool

	c := &cobra.Command{
		Use:     "duplicates",
		GroupID: "management",
		Short:   "Find tools with duplicate names",
		Long: `Duplicates groups tools whose names match after trimming and case
folding. Import already blocks repeated URLs, so this scan catches the
other kind of duplicate: the same tool added twice under different
links.

With --prune, every group is reduced to its first (newest) member after
confirmation.`,
		RunE: func(c *cobra.Command, args []string) error {
			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			scan := tm.Duplicates()
			groups := scan.Groups()
			if len(groups) == 0 {
				c.Println("No duplicate names found.")
				return nil
			}

			c.Printf("Found %d duplicate groups:\n\n", len(groups))
			for _, group := range groups {
				c.Printf("%q (%d tools)\n", group.Name, len(group.Members))
				for _, member := range group.Members {
					c.Printf("    %s  %s\n", member.ID, member.URL)
				}
			}

			if !prune {
				return nil
			}
			if !confirm(c, "Delete all but the first tool of each group?") {
				c.Println("Aborted.")
				return nil
			}

			removed := 0
			for _, group := range groups {
				for _, member := range group.Members[1:] {
					if err := tm.DeleteTool(member.ID); err != nil {
						return err
					}
					scan.Remove(member.ID)
					removed++
				}
			}
			c.Printf("Removed %d tools; %d groups remain.\n", removed, scan.Len())
			return nil
		},
	}

	c.Flags().BoolVar(&prune, "prune", false, "keep only the first tool of each group")

	return c
}
