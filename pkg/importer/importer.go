// Package importer turns raw import text into catalog tool candidates and
// classifies them against an existing catalog.
//
// Two input formats are supported. Structured input is a JSON array of tool
// objects, or an object wrapping the array under a "data" field. Line input
// is pipe-delimited, two to five fields per line:
//
//	Name | URL | Description | Category | Tag1,Tag2
//
// Input that looks structured but fails to parse falls back to line parsing
// silently. Parsing never fails; unusable records are dropped and the caller
// sees only the aggregate counts.
//
// Example usage:
//
//	result := importer.Reconcile(input, catalog.List())
//	fmt.Printf("accepted %d, duplicates %d\n", len(result.Accepted), len(result.Rejected))
//	catalog.AddBatch(result.Accepted)
package importer

import (
	"encoding/json"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/toolmap/pkg/catalogs"
)

// UnknownName is the placeholder for structured records missing a name.
const UnknownName = "Unknown"

// idPrefix marks ids synthesized during import.
const idPrefix = "import"

// Result partitions one batch of candidates against the existing catalog.
// Accepted records are new; Rejected records collided with an existing
// tool's normalized URL. Nothing is merged automatically.
type Result struct {
	Accepted []catalogs.Tool
	Rejected []catalogs.Tool
}

// Reconcile parses raw import text and partitions the resulting candidates
// against the existing tools by normalized URL.
func Reconcile(input string, existing []catalogs.Tool) Result {
	return Partition(Parse(input), existing)
}

// Parse extracts candidate tools from raw import text. Structured input is
// tried first when the text looks like JSON; otherwise, or when structured
// parsing yields nothing usable, each line is parsed as pipe-delimited
// fields. Candidates sharing a normalized URL within the batch are collapsed
// to the first occurrence.
func Parse(input string) []catalogs.Tool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	var candidates []catalogs.Tool
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		candidates = parseJSON(trimmed)
	}
	if len(candidates) == 0 {
		candidates = parseLines(trimmed)
	}
	return collapseBatch(candidates)
}

// Partition splits candidates into accepted and rejected by comparing each
// candidate's normalized URL against the existing tools. Duplicates are
// filtered, never treated as failures.
func Partition(candidates, existing []catalogs.Tool) Result {
	known := make(map[string]struct{}, len(existing))
	for _, tool := range existing {
		if key := tool.NormalizedURL(); key != "" {
			known[key] = struct{}{}
		}
	}

	var result Result
	for _, candidate := range candidates {
		if _, dup := known[candidate.NormalizedURL()]; dup {
			result.Rejected = append(result.Rejected, candidate)
			continue
		}
		result.Accepted = append(result.Accepted, candidate)
	}
	return result
}

// Export serializes tools as the structured import format, so an exported
// catalog re-imports cleanly.
func Export(tools []catalogs.Tool) ([]byte, error) {
	return json.MarshalIndent(tools, "", "  ")
}

// record is the lenient shape structured input is decoded into. Tags is
// kept raw so a non-list value coerces to empty instead of failing the
// whole batch.
type record struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	URL         string          `json:"url"`
	Description string          `json:"description"`
	IconURL     string          `json:"iconUrl"`
	CategoryID  string          `json:"categoryId"`
	Tags        json.RawMessage `json:"tags"`
	IsHot       bool            `json:"isHot"`
}

func parseJSON(input string) []catalogs.Tool {
	var records []record
	if strings.HasPrefix(input, "[") {
		if err := json.Unmarshal([]byte(input), &records); err != nil {
			return nil
		}
	} else {
		var wrapper struct {
			Data []record `json:"data"`
		}
		if err := json.Unmarshal([]byte(input), &wrapper); err != nil {
			return nil
		}
		records = wrapper.Data
	}

	tools := make([]catalogs.Tool, 0, len(records))
	for _, rec := range records {
		tool, ok := coerce(rec)
		if !ok {
			continue
		}
		tools = append(tools, tool)
	}
	return tools
}

// coerce fills defaults and validates a structured record. Records without
// a usable URL are dropped.
func coerce(rec record) (catalogs.Tool, bool) {
	tool := catalogs.Tool{
		ID:          strings.TrimSpace(rec.ID),
		Name:        strings.TrimSpace(rec.Name),
		URL:         strings.TrimSpace(rec.URL),
		Description: strings.TrimSpace(rec.Description),
		IconURL:     strings.TrimSpace(rec.IconURL),
		IsHot:       rec.IsHot,
		CreatedAt:   utc.Now(),
	}
	if tool.NormalizedURL() == "" {
		return catalogs.Tool{}, false
	}
	if tool.ID == "" {
		tool.ID = catalogs.NewID(idPrefix)
	}
	if tool.Name == "" {
		tool.Name = UnknownName
	}

	if category, ok := catalogs.ParseCategory(rec.CategoryID); ok {
		tool.CategoryID = category
	} else {
		tool.CategoryID = catalogs.CategoryFallback
	}

	if len(rec.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(rec.Tags, &tags); err == nil {
			tool.Tags = cleanTags(tags)
		}
	}
	return tool, true
}

func parseLines(input string) []catalogs.Tool {
	var tools []catalogs.Tool
	for _, line := range strings.Split(input, "\n") {
		if tool, ok := parseLine(line); ok {
			tools = append(tools, tool)
		}
	}
	return tools
}

// parseLine parses one pipe-delimited line. Lines with fewer than two
// usable fields are skipped without diagnostics.
func parseLine(line string) (catalogs.Tool, bool) {
	if strings.TrimSpace(line) == "" {
		return catalogs.Tool{}, false
	}

	raw := strings.Split(line, "|")
	fields := make([]string, 0, len(raw))
	for _, field := range raw {
		fields = append(fields, strings.TrimSpace(field))
	}
	if len(fields) < 2 || fields[0] == "" || catalogs.NormalizeURL(fields[1]) == "" {
		return catalogs.Tool{}, false
	}
	if len(fields) > 5 {
		fields = fields[:5]
	}

	tool := catalogs.Tool{
		ID:          catalogs.NewID(idPrefix),
		Name:        fields[0],
		URL:         fields[1],
		Description: catalogs.DefaultDescription,
		CategoryID:  catalogs.CategoryFallback,
		CreatedAt:   utc.Now(),
	}
	if len(fields) >= 3 && fields[2] != "" {
		tool.Description = fields[2]
	}

	switch len(fields) {
	case 4:
		// An ambiguous 4th field: a comma means it is a tag list, anything
		// else is read as a category hint.
		if looksLikeTagList(fields[3]) {
			tool.Tags = splitTags(fields[3])
		} else {
			tool.CategoryID = inferCategory(fields[3])
		}
	case 5:
		tool.CategoryID = inferCategory(fields[3])
		tool.Tags = splitTags(fields[4])
	}
	return tool, true
}

// collapseBatch drops candidates whose normalized URL already appeared
// earlier in the same batch. First occurrence wins.
func collapseBatch(tools []catalogs.Tool) []catalogs.Tool {
	if len(tools) < 2 {
		return tools
	}
	seen := make(map[string]struct{}, len(tools))
	out := make([]catalogs.Tool, 0, len(tools))
	for _, tool := range tools {
		key := tool.NormalizedURL()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tool)
	}
	return out
}

func looksLikeTagList(field string) bool {
	return strings.ContainsAny(field, ",，")
}

// splitTags splits a tag-list field on commas, fullwidth commas, and
// whitespace, dropping empty tokens.
func splitTags(field string) []string {
	tokens := strings.FieldsFunc(field, func(r rune) bool {
		return r == ',' || r == '，' || r == ' ' || r == '\t'
	})
	tags := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			tags = append(tags, token)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// cleanTags trims structured tag values and drops empty ones.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
