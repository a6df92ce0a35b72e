package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/pkg/constants"
)

// NewPublishCommand replaces the cloud catalog with the local snapshot.
func NewPublishCommand(app Application) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:     "publish",
		GroupID: "management",
		Short:   "Replace the cloud catalog with the local snapshot",
		Long: `Publish pushes the full local catalog to the configured cloud backend,
replacing whatever is stored there. The backend keeps no history, so
publish asks for confirmation first.`,
		RunE: func(c *cobra.Command, args []string) error {
			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			count := tm.Catalog().Len()
			if !yes {
				prompt := fmt.Sprintf("Overwrite the cloud catalog with %d local tools?", count)
				if !confirm(c, prompt) {
					c.Println("Aborted.")
					return nil
				}
			}

			ctx, cancel := context.WithTimeout(c.Context(), constants.SyncTimeout)
			defer cancel()

			if err := tm.Publish(ctx); err != nil {
				return err
			}
			c.Printf("Published %d tools to the cloud.\n", count)
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "publish without confirmation")

	return c
}
