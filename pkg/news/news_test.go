package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/logging"
)

// noShuffle keeps feed order so assertions stay deterministic.
func noShuffle(int, func(i, j int)) {}

func newTestFetcher(t *testing.T, payload string, status int) *Fetcher {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("rss_url"))
		assert.NotEmpty(t, r.URL.Query().Get("t"), "cache-busting timestamp")
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	return NewFetcher(
		WithAPIURL(server.URL),
		WithLogger(logging.NewNopLogger()),
		withShuffle(noShuffle),
	)
}

func TestFetchCleansAndFilters(t *testing.T) {
	payload := `{
		"status": "ok",
		"items": [
			{"guid": "1", "title": "AI 芯片新突破", "link": "https://qbitai.com/1",
			 "description": "<p>研究团队发布&nbsp;新架构</p>",
			 "content": "<div><img src=\"https://img.example.com/chip.jpg\" alt=\"\"></div>"},
			{"guid": "2", "title": "某明星代言 AI 产品", "link": "https://qbitai.com/2",
			 "description": "娱乐新闻"},
			{"guid": "3", "title": "开源模型评测", "link": "https://qbitai.com/3",
			 "description": "榜单更新", "thumbnail": "https://img.example.com/bench.jpg"}
		]
	}`
	fetcher := newTestFetcher(t, payload, http.StatusOK)

	items, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "the celebrity item is filtered out")

	assert.Equal(t, "AI 芯片新突破", items[0].Title)
	assert.Equal(t, "研究团队发布 新架构", items[0].Description)
	assert.Equal(t, "https://img.example.com/chip.jpg", items[0].Thumbnail,
		"thumbnail extracted from inline content")

	assert.Equal(t, "https://img.example.com/bench.jpg", items[1].Thumbnail,
		"explicit thumbnail wins")
}

func TestFetchBadStatusServesFallback(t *testing.T) {
	fetcher := newTestFetcher(t, `{"status": "error"}`, http.StatusOK)

	items, err := fetcher.Fetch(context.Background())
	assert.Error(t, err)
	require.Len(t, items, len(fallbackItems))
	assert.Equal(t, "fallback-1", items[0].GUID)
}

func TestFetchHTTPErrorServesFallback(t *testing.T) {
	fetcher := newTestFetcher(t, "oops", http.StatusBadGateway)

	items, err := fetcher.Fetch(context.Background())
	assert.Error(t, err)
	assert.Len(t, items, len(fallbackItems))
}

func TestAsTool(t *testing.T) {
	item := Item{GUID: "42", Title: "头条", Link: "https://qbitai.com/42", Thumbnail: "https://img/42.jpg"}
	tool := item.AsTool()

	assert.Equal(t, "news-42", tool.ID)
	assert.Equal(t, catalogs.CategoryNews, tool.CategoryID)
	assert.True(t, tool.IsHot)
	assert.Equal(t, []string{"新闻", "前沿"}, tool.Tags)
}

func TestCarouselMixing(t *testing.T) {
	tools := []catalogs.Tool{
		{ID: "h1", Name: "H1", IsHot: true},
		{ID: "cold", Name: "Cold"},
		{ID: "h2", Name: "H2", IsHot: true},
		{ID: "h3", Name: "H3", IsHot: true},
		{ID: "h4", Name: "H4", IsHot: true},
		{ID: "h5", Name: "H5", IsHot: true},
	}
	items := []Item{
		{GUID: "n1", Title: "N1"},
		{GUID: "n2", Title: "N2"},
		{GUID: "n3", Title: "N3"},
		{GUID: "n4", Title: "N4"},
	}

	mixed := Carousel(tools, items)
	require.Len(t, mixed, 7, "1 lead headline + 4 hot tools + 2 trailing headlines")

	assert.Equal(t, "news-n1", mixed[0].ID, "a headline leads the rotation")
	assert.Equal(t, "h1", mixed[1].ID)
	assert.Equal(t, "h4", mixed[4].ID, "hot tools cap at four")
	assert.Equal(t, "news-n2", mixed[5].ID)
	assert.Equal(t, "news-n3", mixed[6].ID, "only the top three headlines are used")
}

func TestCarouselWithoutNews(t *testing.T) {
	tools := []catalogs.Tool{{ID: "h1", IsHot: true}, {ID: "cold"}}

	mixed := Carousel(tools, nil)
	require.Len(t, mixed, 1)
	assert.Equal(t, "h1", mixed[0].ID)
}
