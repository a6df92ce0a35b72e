// Package news fetches AI news headlines through an RSS-to-JSON bridge and
// shapes them for display next to the tool catalog.
//
// The feed is filtered to pure tech content by a keyword blocklist, items
// are shuffled so each refresh reads like a fresh batch, and a static
// fallback set keeps the feed populated when the bridge is unreachable.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// Defaults for the qbitai feed through the rss2json bridge.
const (
	DefaultFeedURL = "https://www.qbitai.com/feed"
	DefaultAPIURL  = "https://api.rss2json.com/v1/api.json"
)

// excludeKeywords drops celebrity, sports, and entertainment items so the
// feed stays on tech.
var excludeKeywords = []string{"明星", "绯闻", "体育", "足球", "篮球", "娱乐", "演唱会", "代言", "综艺"}

// imgSrcPattern pulls the first inline image out of item HTML when the feed
// offers no thumbnail field.
var imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// htmlTagPattern strips markup from item descriptions.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

// Item is one news entry after cleaning.
type Item struct {
	GUID        string `json:"guid"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	PubDate     string `json:"pubDate"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// feedResponse is the rss2json envelope.
type feedResponse struct {
	Status string     `json:"status"`
	Items  []feedItem `json:"items"`
}

type feedItem struct {
	GUID        string `json:"guid"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	PubDate     string `json:"pubDate"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Thumbnail   string `json:"thumbnail"`
}

// Fetcher retrieves and cleans the news feed. Safe for concurrent use.
type Fetcher struct {
	apiURL     string
	feedURL    string
	httpClient *http.Client
	logger     *logging.Logger
	shuffle    func(n int, swap func(i, j int))
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFeedURL overrides the upstream RSS feed.
func WithFeedURL(feedURL string) Option {
	return func(f *Fetcher) { f.feedURL = feedURL }
}

// WithAPIURL overrides the rss2json bridge endpoint.
func WithAPIURL(apiURL string) Option {
	return func(f *Fetcher) { f.apiURL = apiURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = httpClient }
}

// WithLogger sets the fetcher logger.
func WithLogger(logger *logging.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// withShuffle pins the shuffle for deterministic tests.
func withShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(f *Fetcher) { f.shuffle = shuffle }
}

// NewFetcher returns a Fetcher with the default qbitai feed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		apiURL:  DefaultAPIURL,
		feedURL: DefaultFeedURL,
		httpClient: &http.Client{
			Timeout: constants.NewsFetchTimeout,
		},
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logging.Default()
	}
	return f
}

// Fetch loads the feed, cleans each item, filters non-tech content, and
// shuffles the result. On any failure it returns the shuffled fallback set
// alongside the error so callers can keep rendering.
func (f *Fetcher) Fetch(ctx context.Context) ([]Item, error) {
	items, err := f.fetch(ctx)
	if err != nil {
		f.logger.Warn().Err(err).Msg("news fetch failed, serving fallback items")
		return f.fallback(), err
	}
	return items, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]Item, error) {
	// The timestamp defeats the bridge's response cache.
	endpoint := fmt.Sprintf("%s?rss_url=%s&t=%d",
		f.apiURL, url.QueryEscape(f.feedURL), time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &errors.APIError{Endpoint: f.apiURL, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.APIError{StatusCode: resp.StatusCode, Endpoint: f.apiURL, Message: "reading response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{StatusCode: resp.StatusCode, Endpoint: f.apiURL, Message: strings.TrimSpace(string(body))}
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, &errors.ParseError{Format: "json", Source: f.apiURL, Message: "invalid feed payload", Err: err}
	}
	if feed.Status != "ok" {
		return nil, &errors.APIError{Endpoint: f.apiURL, Message: "feed status " + feed.Status}
	}

	items := make([]Item, 0, len(feed.Items))
	for _, raw := range feed.Items {
		item := clean(raw)
		if excluded(item) {
			continue
		}
		items = append(items, item)
	}

	f.shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	f.logger.Debug().Int("count", len(items)).Msg("fetched news feed")
	return items, nil
}

func (f *Fetcher) fallback() []Item {
	items := make([]Item, len(fallbackItems))
	copy(items, fallbackItems)
	f.shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items
}

// clean normalizes one feed item: fill the thumbnail from inline content
// when absent, and strip markup from the description.
func clean(raw feedItem) Item {
	thumbnail := raw.Thumbnail
	if thumbnail == "" && raw.Content != "" {
		if match := imgSrcPattern.FindStringSubmatch(raw.Content); match != nil {
			thumbnail = match[1]
		}
	}
	description := htmlTagPattern.ReplaceAllString(raw.Description, "")
	description = strings.TrimSpace(strings.ReplaceAll(description, "&nbsp;", " "))

	return Item{
		GUID:        raw.GUID,
		Title:       raw.Title,
		Link:        raw.Link,
		Author:      raw.Author,
		PubDate:     raw.PubDate,
		Description: description,
		Thumbnail:   thumbnail,
	}
}

func excluded(item Item) bool {
	text := strings.ToLower(item.Title + item.Description)
	for _, keyword := range excludeKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// AsTool converts a news item to a catalog tool for carousel display. The
// result carries the presentation-only news category and is never stored.
func (i Item) AsTool() catalogs.Tool {
	return catalogs.Tool{
		ID:          "news-" + i.GUID,
		Name:        i.Title,
		Description: i.Description,
		URL:         i.Link,
		IconURL:     i.Thumbnail,
		CategoryID:  catalogs.CategoryNews,
		IsHot:       true,
		Tags:        []string{"新闻", "前沿"},
	}
}

// Carousel mixes hot tools and headlines for the featured rotation: one
// headline leads, up to four hot tools follow, then the remaining headlines
// of the top three. With no news available the hot tools stand alone.
func Carousel(tools []catalogs.Tool, items []Item) []catalogs.Tool {
	hot := make([]catalogs.Tool, 0, 4)
	for _, tool := range tools {
		if tool.IsHot {
			hot = append(hot, tool)
			if len(hot) == 4 {
				break
			}
		}
	}

	top := items
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) == 0 {
		return hot
	}

	mixed := make([]catalogs.Tool, 0, len(hot)+len(top))
	mixed = append(mixed, top[0].AsTool())
	mixed = append(mixed, hot...)
	for _, item := range top[1:] {
		mixed = append(mixed, item.AsTool())
	}
	return mixed
}
