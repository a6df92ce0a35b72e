package importer

import (
	"strings"

	"github.com/agentstation/toolmap/pkg/catalogs"
)

// categoryKeywords maps each category to the bilingual substrings that hint
// at it. Order matters: the first category whose keyword matches wins.
var categoryKeywords = []struct {
	category catalogs.CategoryID
	keywords []string
}{
	{catalogs.CategoryChat, []string{"chat", "对话"}},
	{catalogs.CategoryStudy, []string{"study", "学习", "教育"}},
	{catalogs.CategoryWork, []string{"work", "办公", "code", "编程", "write", "写作", "search", "搜索", "translate", "翻译"}},
	{catalogs.CategoryLife, []string{"life", "生活", "daily"}},
	{catalogs.CategoryMedia, []string{"media", "多媒体", "image", "绘图", "video", "视频", "audio", "音频"}},
	{catalogs.CategoryAgent, []string{"agent", "智能体", "bot"}},
}

// inferCategory resolves a free-form category hint. Exact ids are honored
// first, then the keyword heuristic; anything else falls back to the
// default category.
func inferCategory(hint string) catalogs.CategoryID {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return catalogs.CategoryFallback
	}
	if category, ok := catalogs.ParseCategory(hint); ok {
		return category
	}
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(hint, keyword) {
				return entry.category
			}
		}
	}
	return catalogs.CategoryFallback
}
