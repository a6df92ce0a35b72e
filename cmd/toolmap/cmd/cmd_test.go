package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/enrich"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/news"
)

// mockApp wires commands to an in-memory toolmap for tests.
type mockApp struct {
	tm      toolmap.Toolmap
	verbose bool
}

func (m *mockApp) Toolmap() (toolmap.Toolmap, error) { return m.tm, nil }
func (m *mockApp) Logger() *zerolog.Logger           { return logging.NewNopLogger() }
func (m *mockApp) Verbose() bool                     { return m.verbose }
func (m *mockApp) NewsFetcher() *news.Fetcher        { return news.NewFetcher() }
func (m *mockApp) Enricher(context.Context) (*enrich.Enricher, error) {
	return enrich.New(context.Background(), "")
}

func newMockApp(t *testing.T, tools ...catalogs.Tool) *mockApp {
	t.Helper()
	tm, err := toolmap.New(toolmap.WithoutSeed(), toolmap.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	for i := len(tools) - 1; i >= 0; i-- {
		require.NoError(t, tm.AddTool(tools[i]))
	}
	return &mockApp{tm: tm}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runCommand(t *testing.T, c *cobra.Command, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)
	require.NoError(t, c.Execute())
	return out.String()
}

func TestListCommand(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "kimi", Name: "Kimi", URL: "https://kimi.moonshot.cn", CategoryID: catalogs.CategoryChat, Tags: []string{"长文本"}},
		catalogs.Tool{ID: "cursor", Name: "Cursor", URL: "https://cursor.sh", CategoryID: catalogs.CategoryWork, IsHot: true},
	)

	out := runCommand(t, NewListCommand(app), "")
	assert.Contains(t, out, "Found 2 tools")
	assert.Contains(t, out, "Kimi")
	assert.Contains(t, out, "Cursor")
}

func TestListCommandCategoryFilter(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "kimi", Name: "Kimi", URL: "https://kimi.moonshot.cn", CategoryID: catalogs.CategoryChat},
		catalogs.Tool{ID: "cursor", Name: "Cursor", URL: "https://cursor.sh", CategoryID: catalogs.CategoryWork},
	)

	out := runCommand(t, NewListCommand(app), "", "--category", "work")
	assert.Contains(t, out, "Cursor")
	assert.NotContains(t, out, "Kimi")
}

func TestListCommandUnknownCategory(t *testing.T) {
	app := newMockApp(t)
	c := NewListCommand(app)
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--category", "bogus"})
	assert.Error(t, c.Execute())
}

func TestImportCommandConfirmed(t *testing.T) {
	app := newMockApp(t)
	input := t.TempDir() + "/batch.txt"
	writeFile(t, input, "Fresh | https://fresh.example.com | 新工具 | 办公")

	out := runCommand(t, NewImportCommand(app), "y\n", input)
	assert.Contains(t, out, "Parsed 1 new, 0 duplicate")
	assert.Contains(t, out, "Added 1 tools")
	assert.Equal(t, 1, app.tm.Catalog().Len())
}

func TestImportCommandDeclined(t *testing.T) {
	app := newMockApp(t)
	input := t.TempDir() + "/batch.txt"
	writeFile(t, input, "Fresh | https://fresh.example.com")

	out := runCommand(t, NewImportCommand(app), "n\n", input)
	assert.Contains(t, out, "Aborted")
	assert.Equal(t, 0, app.tm.Catalog().Len())
}

func TestImportCommandSkipsDuplicates(t *testing.T) {
	app := newMockApp(t, catalogs.Tool{ID: "fresh", Name: "Fresh", URL: "https://fresh.example.com"})
	input := t.TempDir() + "/batch.txt"
	writeFile(t, input, "Fresh Again | https://FRESH.example.com/")

	out := runCommand(t, NewImportCommand(app), "", "--yes", input)
	assert.Contains(t, out, "Parsed 0 new, 1 duplicate")
	assert.Equal(t, 1, app.tm.Catalog().Len())
}

func TestTagsRenameWithConfirmation(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "a", Name: "A", URL: "https://a", Tags: []string{"旧名"}},
	)

	out := runCommand(t, NewTagsCommand(app), "y\n", "rename", "旧名", "新名")
	assert.Contains(t, out, "across 1 tools")
	assert.Contains(t, out, "Renamed")

	tool, err := app.tm.Catalog().Tool("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"新名"}, tool.Tags)
}

func TestTagsDeleteDeclined(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "a", Name: "A", URL: "https://a", Tags: []string{"保留"}},
	)

	out := runCommand(t, NewTagsCommand(app), "n\n", "delete", "保留")
	assert.Contains(t, out, "Aborted")
	assert.True(t, app.tm.Tags().Exists("保留"))
}

func TestTagsListShowsCounts(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "a", Name: "A", URL: "https://a", Tags: []string{"开源"}},
		catalogs.Tool{ID: "b", Name: "B", URL: "https://b", Tags: []string{"开源", "免费"}},
	)

	out := runCommand(t, NewTagsCommand(app), "", "list")
	assert.Contains(t, out, "2  开源")
	assert.Contains(t, out, "1  免费")
}

func TestDuplicatesCommand(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "a", Name: "Foo", URL: "https://a"},
		catalogs.Tool{ID: "b", Name: " foo ", URL: "https://b"},
		catalogs.Tool{ID: "c", Name: "Bar", URL: "https://c"},
	)

	out := runCommand(t, NewDuplicatesCommand(app), "")
	assert.Contains(t, out, "1 duplicate groups")
	assert.Contains(t, out, `"foo" (2 tools)`)
}

func TestDuplicatesPrune(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "a", Name: "Foo", URL: "https://a"},
		catalogs.Tool{ID: "b", Name: "foo", URL: "https://b"},
	)

	out := runCommand(t, NewDuplicatesCommand(app), "y\n", "--prune")
	assert.Contains(t, out, "Removed 1 tools")
	assert.Equal(t, 1, app.tm.Catalog().Len())
}

func TestExportCommand(t *testing.T) {
	app := newMockApp(t,
		catalogs.Tool{ID: "kimi", Name: "Kimi", URL: "https://kimi.moonshot.cn", CategoryID: catalogs.CategoryChat},
	)

	out := runCommand(t, NewExportCommand(app), "")
	assert.Contains(t, out, `"name": "Kimi"`)
	assert.Contains(t, out, `"categoryId": "chat"`)
}
