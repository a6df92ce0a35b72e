package catalogs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase host", "https://WWW.DeepSeek.com", "https://www.deepseek.com"},
		{"trailing slash", "https://kimi.moonshot.cn/", "https://kimi.moonshot.cn"},
		{"multiple trailing slashes", "https://suno.com///", "https://suno.com"},
		{"surrounding whitespace", "  https://gamma.app \t", "https://gamma.app"},
		{"empty", "", ""},
		{"only slashes", "///", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "deepseek", NormalizeName("  DeepSeek "))
	assert.Equal(t, "扣子", NormalizeName("扣子"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNewID(t *testing.T) {
	id := NewID("import")
	assert.True(t, strings.HasPrefix(id, "import-"))

	parts := strings.Split(id, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 5)

	// Two ids generated back to back must not collide.
	assert.NotEqual(t, id, NewID("import"))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("work")
	assert.True(t, ok)
	assert.Equal(t, CategoryWork, c)

	c, ok = ParseCategory("WORK")
	assert.True(t, ok)
	assert.Equal(t, CategoryWork, c)

	_, ok = ParseCategory("news")
	assert.False(t, ok, "news is a presentation category, not storable")

	_, ok = ParseCategory("bogus")
	assert.False(t, ok)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %q should be valid", c)
	}
	assert.False(t, CategoryNews.Valid())
	assert.False(t, CategoryID("").Valid())
}

func TestToolHasTag(t *testing.T) {
	tool := Tool{Tags: []string{"开源", "编程"}}
	assert.True(t, tool.HasTag("开源"))
	assert.False(t, tool.HasTag("视频"))
	assert.False(t, tool.HasTag(""))
}
