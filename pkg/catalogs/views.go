package catalogs

import (
	"sort"
	"strings"
)

// Derived read projections over the catalog. None of these mutate entries;
// each returns a fresh slice computed from the current snapshot.

// ByCategory returns all entries whose category matches exactly, in
// catalog order.
func (cat *catalog) ByCategory(id CategoryID) []Tool {
	var result []Tool
	cat.tools.ForEach(func(tool Tool) bool {
		if tool.CategoryID == id {
			result = append(result, tool)
		}
		return true
	})
	return result
}

// ByTag returns all entries carrying the exact tag, in catalog order.
func (cat *catalog) ByTag(tag string) []Tool {
	var result []Tool
	cat.tools.ForEach(func(tool Tool) bool {
		if tool.HasTag(tag) {
			result = append(result, tool)
		}
		return true
	})
	return result
}

// Search returns entries matching the query case-insensitively against
// name, description, or any tag (substring, OR semantics across fields).
func (cat *catalog) Search(query string) []Tool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cat.List()
	}

	var result []Tool
	cat.tools.ForEach(func(tool Tool) bool {
		if matchesQuery(tool, q) {
			result = append(result, tool)
		}
		return true
	})
	return result
}

// Featured returns all entries flagged hot, in catalog order.
func (cat *catalog) Featured() []Tool {
	var result []Tool
	cat.tools.ForEach(func(tool Tool) bool {
		if tool.IsHot {
			result = append(result, tool)
		}
		return true
	})
	return result
}

// HotFirst returns every entry with hot entries sorted before non-hot ones,
// preserving relative order otherwise (stable sort).
func (cat *catalog) HotFirst() []Tool {
	result := cat.List()
	sort.SliceStable(result, func(i, j int) bool {
		return hotCompare(result[i], result[j]) < 0
	})
	return result
}

// hotCompare orders hot entries before non-hot ones and treats everything
// else as equal, so a stable sort keeps relative order inside each group.
func hotCompare(a, b Tool) int {
	switch {
	case a.IsHot == b.IsHot:
		return 0
	case a.IsHot:
		return -1
	default:
		return 1
	}
}

// matchesQuery checks one entry against an already-lowercased query.
func matchesQuery(tool Tool, q string) bool {
	if strings.Contains(strings.ToLower(tool.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Description), q) {
		return true
	}
	for _, tag := range tool.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
