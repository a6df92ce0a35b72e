package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTagsCommand manages the tag vocabulary.
func NewTagsCommand(app Application) *cobra.Command {
	c := &cobra.Command{
		Use:     "tags",
		GroupID: "management",
		Short:   "Manage the tag vocabulary",
		Long: `Tags lists the registered tags with their reference counts, and
supports renaming and deleting tags. Renames and deletes cascade to
every tool carrying the tag, so both report their blast radius and ask
for confirmation first.`,
		RunE: func(c *cobra.Command, args []string) error {
			return runTagsList(c, app, false)
		},
	}

	c.AddCommand(newTagsListCommand(app))
	c.AddCommand(newTagsRenameCommand(app))
	c.AddCommand(newTagsDeleteCommand(app))

	return c
}

func newTagsListCommand(app Application) *cobra.Command {
	var idleOnly bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List tags with reference counts",
		RunE: func(c *cobra.Command, args []string) error {
			return runTagsList(c, app, idleOnly)
		},
	}

	c.Flags().BoolVar(&idleOnly, "idle", false, "show only tags with zero references")

	return c
}

func runTagsList(c *cobra.Command, app Application, idleOnly bool) error {
	tm, err := app.Toolmap()
	if err != nil {
		return err
	}

	tools := tm.Catalog().List()
	list := tm.Tags().Sorted(tools)
	if idleOnly {
		list = tm.Tags().Idle(tools)
	}

	if len(list) == 0 {
		c.Println("No tags registered.")
		return nil
	}
	for _, tag := range list {
		c.Printf("%4d  %s\n", tag.Count, tag.Name)
	}
	return nil
}

func newTagsRenameCommand(app Application) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a tag across every tool",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			from, to := args[0], args[1]

			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			radius := tm.TagBlastRadius(from)
			if !yes {
				prompt := fmt.Sprintf("Rename %q to %q across %d tools?", from, to, radius)
				if !confirm(c, prompt) {
					c.Println("Aborted.")
					return nil
				}
			}

			touched, err := tm.RenameTag(from, to)
			if err != nil {
				return err
			}
			c.Printf("Renamed %q to %q on %d tools.\n", from, to, touched)
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "rename without confirmation")

	return c
}

func newTagsDeleteCommand(app Application) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:   "delete <tag>",
		Short: "Delete a tag and strip it from every tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := args[0]

			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			radius := tm.TagBlastRadius(name)
			if !yes {
				prompt := fmt.Sprintf("Delete %q from %d tools?", name, radius)
				if !confirm(c, prompt) {
					c.Println("Aborted.")
					return nil
				}
			}

			touched, err := tm.DeleteTag(name)
			if err != nil {
				return err
			}
			c.Printf("Deleted %q from %d tools.\n", name, touched)
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "delete without confirmation")

	return c
}
