package catalogs

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/agentstation/utc"
)

// CategoryID identifies one of the fixed tool categories.
type CategoryID string

// String returns the string representation of a CategoryID.
func (c CategoryID) String() string {
	return string(c)
}

// Tool categories. News is presentation-only: it never classifies a stored
// tool, but carousel entries synthesized from news items carry it.
const (
	CategoryChat  CategoryID = "chat"  // 对话
	CategoryStudy CategoryID = "study" // 学习
	CategoryWork  CategoryID = "work"  // 办公 (includes code, search, write, translate)
	CategoryLife  CategoryID = "life"  // 生活
	CategoryMedia CategoryID = "media" // 多媒体 (includes image, video, audio)
	CategoryAgent CategoryID = "agent" // 智能体
	CategoryNews  CategoryID = "news"  // 资讯
)

// CategoryFallback is assigned when a category is unspecified or unrecognized.
const CategoryFallback = CategoryChat

// Categories lists the categories a stored tool may belong to.
var Categories = []CategoryID{
	CategoryChat,
	CategoryStudy,
	CategoryWork,
	CategoryLife,
	CategoryMedia,
	CategoryAgent,
}

// Valid reports whether c is a storable tool category.
func (c CategoryID) Valid() bool {
	switch c {
	case CategoryChat, CategoryStudy, CategoryWork, CategoryLife, CategoryMedia, CategoryAgent:
		return true
	}
	return false
}

// ParseCategory returns the storable category matching id. The second return
// is false when id is empty, unrecognized, or presentation-only (news).
func ParseCategory(id string) (CategoryID, bool) {
	c := CategoryID(strings.ToLower(strings.TrimSpace(id)))
	return c, c.Valid()
}

// DefaultDescription is the placeholder used when an entry has no description.
const DefaultDescription = "暂无描述"

// Tool is one catalog entry: an AI tool listing.
type Tool struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	URL         string     `json:"url" yaml:"url"`
	IconURL     string     `json:"iconUrl,omitempty" yaml:"icon_url,omitempty"`
	CategoryID  CategoryID `json:"categoryId" yaml:"category_id"`
	IsHot       bool       `json:"isHot,omitempty" yaml:"is_hot,omitempty"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt   utc.Time   `json:"createdAt,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt   utc.Time   `json:"updatedAt,omitzero" yaml:"updated_at,omitempty"`
}

// HasTag reports whether the tool carries the exact tag.
func (t Tool) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// NormalizedURL returns the tool's URL in normalized form.
func (t Tool) NormalizedURL() string {
	return NormalizeURL(t.URL)
}

// NormalizedName returns the tool's name in normalized form.
func (t Tool) NormalizedName() string {
	return NormalizeName(t.Name)
}

// NormalizeURL lowers, trims, and strips trailing slashes from a URL.
// The result is used purely for equality comparisons, never for display.
func NormalizeURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	for strings.HasSuffix(u, "/") {
		u = strings.TrimSuffix(u, "/")
	}
	return u
}

// NormalizeName lowers and trims a display name for equality comparisons.
func NormalizeName(n string) string {
	return strings.ToLower(strings.TrimSpace(n))
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID synthesizes a unique entry id: prefix, millisecond timestamp, and a
// short random suffix. IDs are opaque and never reused.
func NewID(prefix string) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
