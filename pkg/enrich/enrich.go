// Package enrich fills gaps in tool records with Gemini suggestions.
//
// Enrichment is strictly additive: only a missing description, an
// unrecognized category, or an empty tag list is filled in. Fields an
// editor already wrote are never overwritten. Without an API key the
// enricher cannot be constructed, so callers skip enrichment entirely
// instead of failing mid-run.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// DefaultModel balances quality and cost for short metadata completions.
const DefaultModel = "gemini-2.0-flash"

// maxTags caps suggested tag lists so records stay scannable.
const maxTags = 4

// Suggestion is the structured completion the model is asked to return.
type Suggestion struct {
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Tags        []string `json:"tags"`
}

// Enricher generates metadata suggestions for incomplete tools.
type Enricher struct {
	client *genai.Client
	model  string
	logger *logging.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithModel overrides the Gemini model.
func WithModel(model string) Option {
	return func(e *Enricher) { e.model = model }
}

// WithLogger sets the enricher logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Enricher) { e.logger = logger }
}

// New returns an Enricher backed by the Gemini API.
func New(ctx context.Context, apiKey string, opts ...Option) (*Enricher, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &errors.ConfigError{Component: "enrich", Message: "Gemini API key is required"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, err
	}

	e := &Enricher{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Default()
	}
	return e, nil
}

// NeedsEnrichment reports whether a tool has gaps worth filling.
func NeedsEnrichment(tool catalogs.Tool) bool {
	if tool.Description == "" || tool.Description == catalogs.DefaultDescription {
		return true
	}
	if !tool.CategoryID.Valid() {
		return true
	}
	return len(tool.Tags) == 0
}

// Enrich asks the model to fill the tool's missing fields and applies only
// those suggestions that do not clobber existing values. It reports whether
// the tool changed.
func (e *Enricher) Enrich(ctx context.Context, tool catalogs.Tool) (catalogs.Tool, bool, error) {
	if !NeedsEnrichment(tool) {
		return tool, false, nil
	}

	prompt := buildPrompt(tool)
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
	})
	if err != nil {
		return tool, false, &errors.APIError{Endpoint: "gemini", Message: "generation failed", Err: err}
	}

	suggestion, err := parseSuggestion(resp.Text())
	if err != nil {
		return tool, false, err
	}

	enriched, changed := apply(tool, suggestion)
	if changed {
		e.logger.Debug().Str("tool", tool.ID).Msg("enriched tool metadata")
	}
	return enriched, changed, nil
}

// buildPrompt describes the tool and the exact JSON shape expected back.
func buildPrompt(tool catalogs.Tool) string {
	var b strings.Builder
	b.WriteString("你是一个 AI 工具目录的编辑。请为下面的工具补全缺失的元数据。\n\n")
	fmt.Fprintf(&b, "名称: %s\n", tool.Name)
	fmt.Fprintf(&b, "链接: %s\n", tool.URL)
	if tool.Description != "" && tool.Description != catalogs.DefaultDescription {
		fmt.Fprintf(&b, "现有描述: %s\n", tool.Description)
	}
	if len(tool.Tags) > 0 {
		fmt.Fprintf(&b, "现有标签: %s\n", strings.Join(tool.Tags, ", "))
	}

	b.WriteString("\n只返回一个 JSON 对象，不要包含其他文字：\n")
	b.WriteString(`{"description": "一句简体中文描述，30 字以内", `)
	fmt.Fprintf(&b, `"categoryId": "以下之一: %s", `, joinCategories())
	fmt.Fprintf(&b, `"tags": ["最多 %d 个简短标签"]}`, maxTags)
	return b.String()
}

func joinCategories() string {
	ids := make([]string, len(catalogs.Categories))
	for i, category := range catalogs.Categories {
		ids[i] = string(category)
	}
	return strings.Join(ids, "/")
}

// parseSuggestion decodes the model reply, tolerating markdown code fences.
func parseSuggestion(content string) (Suggestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return Suggestion{}, &errors.ParseError{
			Format:  "json",
			Source:  "gemini",
			Message: "invalid suggestion payload",
			Err:     err,
		}
	}
	return suggestion, nil
}

// apply merges a suggestion into the tool without overwriting anything an
// editor already set.
func apply(tool catalogs.Tool, suggestion Suggestion) (catalogs.Tool, bool) {
	changed := false

	if (tool.Description == "" || tool.Description == catalogs.DefaultDescription) && strings.TrimSpace(suggestion.Description) != "" {
		tool.Description = strings.TrimSpace(suggestion.Description)
		changed = true
	}
	if !tool.CategoryID.Valid() {
		if category, ok := catalogs.ParseCategory(suggestion.CategoryID); ok {
			tool.CategoryID = category
			changed = true
		}
	}
	if len(tool.Tags) == 0 && len(suggestion.Tags) > 0 {
		tags := make([]string, 0, maxTags)
		for _, tag := range suggestion.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
			if len(tags) == maxTags {
				break
			}
		}
		if len(tags) > 0 {
			tool.Tags = tags
			changed = true
		}
	}
	return tool, changed
}
