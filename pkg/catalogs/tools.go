package catalogs

import (
	"fmt"
	"sync"
)

// Tools is a concurrent safe, ordered collection of tools.
// Order is most-recent-first: new entries are prepended.
type Tools struct {
	mu    sync.RWMutex
	order []*Tool
	index map[string]*Tool
}

// ToolsOption defines a function that configures a Tools instance.
type ToolsOption func(*Tools)

// WithToolsCapacity sets the initial capacity of the collection.
func WithToolsCapacity(capacity int) ToolsOption {
	return func(ts *Tools) {
		ts.order = make([]*Tool, 0, capacity)
		ts.index = make(map[string]*Tool, capacity)
	}
}

// NewTools creates a new Tools collection with optional configuration.
func NewTools(opts ...ToolsOption) *Tools {
	ts := &Tools{
		index: make(map[string]*Tool),
	}

	for _, opt := range opts {
		opt(ts)
	}

	return ts
}

// Get returns a copy of the tool by id and whether it exists.
func (ts *Tools) Get(id string) (Tool, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	tool, ok := ts.index[id]
	if !ok {
		return Tool{}, false
	}
	return *tool, true
}

// Exists checks if a tool exists without returning it.
func (ts *Tools) Exists(id string) bool {
	ts.mu.RLock()
	_, exists := ts.index[id]
	ts.mu.RUnlock()
	return exists
}

// Len returns the number of tools.
func (ts *Tools) Len() int {
	ts.mu.RLock()
	length := len(ts.order)
	ts.mu.RUnlock()
	return length
}

// Add prepends a single tool. Returns an error if the id already exists.
func (ts *Tools) Add(tool Tool) error {
	if tool.ID == "" {
		return fmt.Errorf("tool id cannot be empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.index[tool.ID]; exists {
		return fmt.Errorf("tool with ID %s already exists", tool.ID)
	}

	ts.prependLocked(&tool)
	return nil
}

// AddBatch prepends multiple tools in a single operation, preserving the
// batch's own order at the front of the collection. Tools whose id already
// exists are skipped; the number actually added is returned.
func (ts *Tools) AddBatch(tools []Tool) int {
	if len(tools) == 0 {
		return 0
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	added := 0
	// Walk backwards so the batch keeps its order after repeated prepends.
	for i := len(tools) - 1; i >= 0; i-- {
		tool := tools[i]
		if tool.ID == "" {
			continue
		}
		if _, exists := ts.index[tool.ID]; exists {
			continue
		}
		ts.prependLocked(&tool)
		added++
	}
	return added
}

// Replace swaps the tool with the same id in place, keeping its position.
// Returns an error if the id is not present.
func (ts *Tools) Replace(tool Tool) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	existing, ok := ts.index[tool.ID]
	if !ok {
		return fmt.Errorf("tool with ID %s not found", tool.ID)
	}

	*existing = tool
	return nil
}

// Delete removes a tool by id. Returns an error if the tool doesn't exist.
func (ts *Tools) Delete(id string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.index[id]; !exists {
		return fmt.Errorf("tool with ID %s not found", id)
	}

	delete(ts.index, id)
	for i, t := range ts.order {
		if t.ID == id {
			ts.order = append(ts.order[:i], ts.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns an ordered copy of all tools.
func (ts *Tools) List() []Tool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	tools := make([]Tool, len(ts.order))
	for i, t := range ts.order {
		tools[i] = *t
	}
	return tools
}

// ReplaceAll overwrites the whole collection with the given tools, keeping
// their order. Used by bulk cloud sync.
func (ts *Tools) ReplaceAll(tools []Tool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.order = make([]*Tool, 0, len(tools))
	ts.index = make(map[string]*Tool, len(tools))
	for i := range tools {
		tool := tools[i]
		if _, exists := ts.index[tool.ID]; exists {
			continue
		}
		ts.order = append(ts.order, &tool)
		ts.index[tool.ID] = &tool
	}
}

// Clear removes all tools.
func (ts *Tools) Clear() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.order = ts.order[:0]
	for k := range ts.index {
		delete(ts.index, k)
	}
}

// ForEach applies a function to a copy of each tool in order.
// If the function returns false, iteration stops early.
func (ts *Tools) ForEach(fn func(tool Tool) bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	for _, t := range ts.order {
		if !fn(*t) {
			break
		}
	}
}

// Update applies fn to every tool in order under the write lock, letting
// cascading operations visit each entry exactly once. fn returns whether it
// modified the tool; Update returns how many tools were modified.
func (ts *Tools) Update(fn func(tool *Tool) bool) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	changed := 0
	for _, t := range ts.order {
		if fn(t) {
			changed++
		}
	}
	return changed
}

// prependLocked inserts the tool at the front. Caller must hold the write lock.
func (ts *Tools) prependLocked(tool *Tool) {
	ts.order = append([]*Tool{tool}, ts.order...)
	ts.index[tool.ID] = tool
}
