package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/pkg/constants"
)

// NewSyncCommand replaces the local catalog with the cloud snapshot.
func NewSyncCommand(app Application) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:     "sync",
		GroupID: "management",
		Short:   "Replace the local catalog with the cloud snapshot",
		Long: `Sync fetches the full catalog from the configured cloud backend and
replaces the local catalog with it. Local tools not present in the
cloud are lost, so sync asks for confirmation first.`,
		RunE: func(c *cobra.Command, args []string) error {
			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			if !yes && !confirm(c, "Overwrite the local catalog with the cloud snapshot?") {
				c.Println("Aborted.")
				return nil
			}

			ctx, cancel := context.WithTimeout(c.Context(), constants.SyncTimeout)
			defer cancel()

			count, err := tm.Sync(ctx)
			if err != nil {
				return err
			}
			c.Printf("Synced %d tools from the cloud.\n", count)
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "sync without confirmation")

	return c
}
