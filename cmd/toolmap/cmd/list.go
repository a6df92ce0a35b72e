package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/pkg/catalogs"
)

// NewListCommand lists catalog tools with optional filtering.
func NewListCommand(app Application) *cobra.Command {
	var (
		category string
		tag      string
		search   string
		hotOnly  bool
	)

	c := &cobra.Command{
		Use:     "list",
		GroupID: "catalog",
		Short:   "List tools in the catalog",
		Long: `List displays the tools in the catalog, newest first.

Filters can be combined from the catalog's derived views: by category,
by exact tag, by free-text search across names, descriptions, and tags,
or restricted to featured (hot) tools.`,
		RunE: func(c *cobra.Command, args []string) error {
			tm, err := app.Toolmap()
			if err != nil {
				return err
			}
			catalog := tm.Catalog()

			tools := catalog.List()
			switch {
			case search != "":
				tools = catalog.Search(search)
			case tag != "":
				tools = catalog.ByTag(tag)
			case category != "":
				id, ok := catalogs.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q (one of: %s)", category, categoryList())
				}
				tools = catalog.ByCategory(id)
			}
			if hotOnly {
				tools = onlyHot(tools)
			}

			if len(tools) == 0 {
				c.Println("No tools found.")
				return nil
			}

			c.Printf("Found %d tools:\n\n", len(tools))
			for _, tool := range tools {
				printTool(c, tool, app.Verbose())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&category, "category", "c", "", "filter by category ("+categoryList()+")")
	c.Flags().StringVarP(&tag, "tag", "t", "", "filter by exact tag")
	c.Flags().StringVarP(&search, "search", "s", "", "free-text search across name, description, and tags")
	c.Flags().BoolVar(&hotOnly, "hot", false, "show only featured tools")

	return c
}

func onlyHot(tools []catalogs.Tool) []catalogs.Tool {
	hot := make([]catalogs.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.IsHot {
			hot = append(hot, tool)
		}
	}
	return hot
}

func printTool(c *cobra.Command, tool catalogs.Tool, verbose bool) {
	marker := " "
	if tool.IsHot {
		marker = "*"
	}
	c.Printf("%s %s  [%s]  %s\n", marker, tool.Name, tool.CategoryID, tool.URL)
	if tool.Description != "" {
		c.Printf("    %s\n", tool.Description)
	}
	if len(tool.Tags) > 0 {
		c.Printf("    tags: %s\n", strings.Join(tool.Tags, ", "))
	}
	if verbose {
		c.Printf("    id: %s\n", tool.ID)
	}
}

func categoryList() string {
	ids := make([]string, len(catalogs.Categories))
	for i, category := range catalogs.Categories {
		ids[i] = string(category)
	}
	return strings.Join(ids, ", ")
}
