// Package tags maintains the tag vocabulary for a tool catalog.
//
// The registry is the single source of truth for which tags exist. Tool
// records carry tag strings, but counts are always derived from the catalog
// on demand rather than stored, so the two can never drift. Tags with no
// remaining references stay registered as idle entries until they are
// explicitly deleted.
//
// Example usage:
//
//	registry := tags.NewRegistry()
//	registry.Reconcile(catalog.List())
//
//	// Rename cascades through every tool carrying the old tag.
//	touched, err := registry.Rename(catalog, "开源", "Open Source")
//
//	// Delete strips the tag from every tool before unregistering it.
//	touched, err = registry.Delete(catalog, "Open Source")
package tags

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Tag is a registry entry paired with its derived reference count.
type Tag struct {
	Name  string `json:"name"  yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Idle reports whether no tool currently references the tag.
func (t Tag) Idle() bool { return t.Count == 0 }

// Cascader is the slice of catalog behavior a cascade needs.
type Cascader interface {
	List() []catalogs.Tool
	Update(fn func(*catalogs.Tool) bool) int
}

// Registry tracks the known tag vocabulary. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewRegistry returns an empty registry, optionally pre-seeded.
func NewRegistry(seed ...string) *Registry {
	r := &Registry{names: make(map[string]struct{}, len(seed))}
	for _, name := range seed {
		if name = strings.TrimSpace(name); name != "" {
			r.names[name] = struct{}{}
		}
	}
	return r
}

// Register adds a tag to the vocabulary. Registering an existing or blank
// tag is a no-op.
func (r *Registry) Register(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	r.names[name] = struct{}{}
	r.mu.Unlock()
}

// Exists reports whether the tag is registered.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

// Len returns the number of registered tags, idle ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Names returns the registered tag names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	return names
}

// Reconcile registers every tag referenced by the given tools. Already
// registered tags, including idle ones, are left untouched. It returns the
// number of newly discovered tags.
func (r *Registry) Reconcile(tools []catalogs.Tool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := 0
	for _, tool := range tools {
		for _, tag := range tool.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := r.names[tag]; !ok {
				r.names[tag] = struct{}{}
				added++
			}
		}
	}
	return added
}

// Counts derives the reference count of every registered tag from the
// current catalog state. Registered tags with no references appear with a
// zero count; tags on tools but missing from the registry are ignored.
func (r *Registry) Counts(tools []catalogs.Tool) map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(r.names))
	for name := range r.names {
		counts[name] = 0
	}
	for _, tool := range tools {
		for _, tag := range tool.Tags {
			if _, ok := counts[tag]; ok {
				counts[tag]++
			}
		}
	}
	return counts
}

// BlastRadius returns how many tools a rename or delete of the tag would
// touch. Callers use it to confirm destructive cascades up front.
func (r *Registry) BlastRadius(c Cascader, name string) int {
	count := 0
	for _, tool := range c.List() {
		if tool.HasTag(name) {
			count++
		}
	}
	return count
}

// Rename changes a tag's name and rewrites every tool referencing it in a
// single pass. Renaming to the same name or to an empty name is a no-op.
// When a tool already carries the new name, the old entry is dropped rather
// than duplicated. It returns the number of tools touched.
func (r *Registry) Rename(c Cascader, from, to string) (int, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if to == "" || from == to {
		return 0, nil
	}

	r.mu.Lock()
	if _, ok := r.names[from]; !ok {
		r.mu.Unlock()
		return 0, &errors.NotFoundError{Resource: "tag", ID: from}
	}
	delete(r.names, from)
	r.names[to] = struct{}{}
	r.mu.Unlock()

	touched := c.Update(func(tool *catalogs.Tool) bool {
		return retag(tool, from, to)
	})
	return touched, nil
}

// Delete unregisters a tag and strips it from every tool referencing it.
// It returns the number of tools touched.
func (r *Registry) Delete(c Cascader, name string) (int, error) {
	name = strings.TrimSpace(name)

	r.mu.Lock()
	if _, ok := r.names[name]; !ok {
		r.mu.Unlock()
		return 0, &errors.NotFoundError{Resource: "tag", ID: name}
	}
	delete(r.names, name)
	r.mu.Unlock()

	touched := c.Update(func(tool *catalogs.Tool) bool {
		return retag(tool, name, "")
	})
	return touched, nil
}

// retag replaces from with to in a tool's tag list, deduplicating the
// result. An empty to removes the tag. Reports whether the tool changed.
func retag(tool *catalogs.Tool, from, to string) bool {
	if !tool.HasTag(from) {
		return false
	}
	next := make([]string, 0, len(tool.Tags))
	seen := make(map[string]struct{}, len(tool.Tags))
	for _, tag := range tool.Tags {
		if tag == from {
			tag = to
		}
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		next = append(next, tag)
	}
	tool.Tags = next
	return true
}

// Sorted returns every registered tag with its derived count, ordered by
// count descending and then by simplified-Chinese collation of the name, so
// mixed Chinese and Latin vocabularies list predictably.
func (r *Registry) Sorted(tools []catalogs.Tool) []Tag {
	counts := r.Counts(tools)
	list := make([]Tag, 0, len(counts))
	for name, count := range counts {
		list = append(list, Tag{Name: name, Count: count})
	}

	collator := collate.New(language.SimplifiedChinese)
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return collator.CompareString(list[i].Name, list[j].Name) < 0
	})
	return list
}

// Active returns the tags with at least one reference, sorted.
func (r *Registry) Active(tools []catalogs.Tool) []Tag {
	return filterTags(r.Sorted(tools), false)
}

// Idle returns the registered tags with no references, sorted.
func (r *Registry) Idle(tools []catalogs.Tool) []Tag {
	return filterTags(r.Sorted(tools), true)
}

func filterTags(list []Tag, idle bool) []Tag {
	out := make([]Tag, 0, len(list))
	for _, tag := range list {
		if tag.Idle() == idle {
			out = append(out, tag)
		}
	}
	return out
}
