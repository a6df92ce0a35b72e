package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/news"
)

// NewNewsCommand shows the AI news feed, optionally mixed with hot tools
// the way the featured carousel presents them.
func NewNewsCommand(app Application) *cobra.Command {
	var (
		limit    int
		carousel bool
	)

	c := &cobra.Command{
		Use:     "news",
		GroupID: "catalog",
		Short:   "Show AI news headlines",
		Long: `News fetches the latest AI headlines, filtered to tech content and
shuffled per refresh. When the feed is unreachable, a small fallback
set is shown instead. With --carousel, headlines are mixed with the
catalog's hot tools the way the featured rotation orders them.`,
		RunE: func(c *cobra.Command, args []string) error {
			items, err := app.NewsFetcher().Fetch(c.Context())
			if err != nil {
				app.Logger().Warn().Err(err).Msg("news feed unavailable, showing fallback")
			}

			if carousel {
				tm, err := app.Toolmap()
				if err != nil {
					return err
				}
				return runCarousel(c, app, tm, items)
			}

			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}
			for _, item := range items {
				c.Printf("• %s\n  %s\n", item.Title, item.Link)
				if item.Description != "" {
					c.Printf("  %s\n", item.Description)
				}
			}
			return nil
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 10, "show at most n headlines")
	c.Flags().BoolVar(&carousel, "carousel", false, "mix headlines with hot tools")

	return c
}

func runCarousel(c *cobra.Command, app Application, tm toolmap.Toolmap, items []news.Item) error {
	slides := news.Carousel(tm.Catalog().HotFirst(), items)
	for i, slide := range slides {
		kind := "tool"
		if slide.CategoryID == catalogs.CategoryNews {
			kind = "news"
		}
		c.Printf("%d. [%s] %s\n   %s\n", i+1, kind, slide.Name, slide.URL)
	}
	return nil
}
