// Package cmd implements the toolmap CLI subcommands.
//
// Commands depend on the Application interface rather than the concrete app
// type, so they stay testable with mock implementations.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/pkg/enrich"
	"github.com/agentstation/toolmap/pkg/news"
)

// Application provides the dependencies commands need.
type Application interface {
	// Toolmap returns the shared toolmap instance (lazy-initialized).
	Toolmap() (toolmap.Toolmap, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// Enricher returns a Gemini-backed enricher, or an error when no API
	// key is configured.
	Enricher(ctx context.Context) (*enrich.Enricher, error)

	// NewsFetcher returns the configured news fetcher.
	NewsFetcher() *news.Fetcher

	// Verbose reports whether verbose output was requested.
	Verbose() bool
}

// confirm prompts on the command's input stream and returns whether the
// user answered yes. A closed or empty input counts as no.
func confirm(c *cobra.Command, prompt string) bool {
	fmt.Fprintf(c.OutOrStdout(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
