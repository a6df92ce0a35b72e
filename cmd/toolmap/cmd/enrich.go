package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/enrich"
)

// NewEnrichCommand fills gaps in tool metadata with Gemini suggestions.
func NewEnrichCommand(app Application) *cobra.Command {
	var (
		limit  int
		dryRun bool
	)

	c := &cobra.Command{
		Use:     "enrich",
		GroupID: "management",
		Short:   "Fill missing tool metadata with AI suggestions",
		Long: `Enrich finds tools with a missing description, an unrecognized
category, or no tags, and asks Gemini to suggest values. Existing
values are never overwritten. Requires GEMINI_API_KEY.`,
		RunE: func(c *cobra.Command, args []string) error {
			tm, err := app.Toolmap()
			if err != nil {
				return err
			}

			enricher, err := app.Enricher(c.Context())
			if err != nil {
				return err
			}

			var candidates int
			for _, tool := range tm.Catalog().List() {
				if !enrich.NeedsEnrichment(tool) {
					continue
				}
				candidates++
				if limit > 0 && candidates > limit {
					break
				}
				if dryRun {
					c.Printf("would enrich: %s (%s)\n", tool.Name, tool.ID)
					continue
				}

				ctx, cancel := context.WithTimeout(c.Context(), constants.EnrichTimeout)
				enriched, changed, err := enricher.Enrich(ctx, tool)
				cancel()
				if err != nil {
					app.Logger().Warn().Err(err).Str("tool", tool.ID).Msg("enrichment failed")
					continue
				}
				if !changed {
					continue
				}
				if err := tm.ReplaceTool(enriched); err != nil {
					return err
				}
				c.Printf("enriched: %s (%s)\n", enriched.Name, enriched.ID)
			}

			if candidates == 0 {
				c.Println("Nothing to enrich.")
			}
			return nil
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 0, "enrich at most n tools (0 for no limit)")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "list candidates without calling the API")

	return c
}
