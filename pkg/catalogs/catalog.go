// Package catalogs provides the core catalog system for managing AI tool
// listings. It offers multiple backing modes (embedded seed, file-based,
// memory) and supports ordered CRUD operations, derived filter views, and
// persistence.
//
// The catalog is the single source of truth that the importer, tag registry,
// and duplicate scanner read and mutate. All mutation funnels through named
// operations rather than ad hoc field writes.
//
// Example usage:
//
//	// Create a catalog seeded with the embedded tool list
//	catalog, err := catalogs.New(catalogs.WithEmbedded())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, tool := range catalog.List() {
//	    fmt.Printf("Tool: %s\n", tool.Name)
//	}
package catalogs

import (
	"io/fs"
	"os"

	"github.com/agentstation/toolmap/pkg/errors"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Catalog = (*catalog)(nil)
	_ Reader  = (*catalog)(nil)
	_ Writer  = (*catalog)(nil)
	_ Merger  = (*catalog)(nil)
	_ Copier  = (*catalog)(nil)
)

// catalog is the single concrete implementation of the Catalog interface.
// It can work as:
// - Memory catalog (readFS == nil)
// - Embedded catalog (readFS is the embedded seed)
// - Files catalog (readFS is os.DirFS)
type catalog struct {
	options *catalogOptions
	tools   *Tools
}

// New creates a new catalog with the given options.
// WithEmbedded() = embedded seed catalog with auto-load.
// WithPath(path) = files catalog with auto-load.
func New(opts ...Option) (Catalog, error) {
	cat := &catalog{
		tools:   NewTools(),
		options: catalogDefaults().apply(opts...),
	}

	// Auto-load if configured with a filesystem
	if cat.options.readFS != nil {
		if err := cat.Load(); err != nil {
			return nil, errors.WrapResource("load", "catalog", "", err)
		}
	}

	return cat, nil
}

// NewEmbedded creates a catalog seeded from the embedded tool list.
// This is the out-of-the-box catalog used when no local data exists yet.
func NewEmbedded() (Catalog, error) {
	return New(WithEmbedded())
}

// NewFromPath creates a catalog backed by files on disk.
func NewFromPath(path string) (Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	return New(WithPath(path))
}

// NewEmpty creates an in-memory empty catalog. Useful for testing or
// temporary catalogs that don't need persistence.
func NewEmpty() Catalog {
	return &catalog{
		tools:   NewTools(),
		options: catalogDefaults(),
	}
}

// NewFromFS creates a catalog from a custom filesystem implementation.
func NewFromFS(fsys fs.FS) (Catalog, error) {
	return New(WithFS(fsys))
}

// Tools returns the underlying ordered collection.
func (cat *catalog) Tools() *Tools {
	return cat.tools
}

// List returns an ordered copy of all entries.
func (cat *catalog) List() []Tool {
	return cat.tools.List()
}

// Len returns the number of entries.
func (cat *catalog) Len() int {
	return cat.tools.Len()
}

// Tool returns an entry by id.
func (cat *catalog) Tool(id string) (Tool, error) {
	tool, ok := cat.tools.Get(id)
	if !ok {
		return Tool{}, &errors.NotFoundError{
			Resource: "tool",
			ID:       id,
		}
	}
	return tool, nil
}

// Add prepends a single entry. The id must be unique; the URL is not checked
// against existing entries here — URL uniqueness is an import-path policy.
func (cat *catalog) Add(tool Tool) error {
	if err := validate(tool); err != nil {
		return err
	}
	if err := cat.tools.Add(tool); err != nil {
		return &errors.ResourceError{
			Operation: "create",
			Resource:  "tool",
			ID:        tool.ID,
			Message:   err.Error(),
			Err:       errors.ErrAlreadyExists,
		}
	}
	return nil
}

// AddBatch prepends a batch of entries, most-recent-first.
func (cat *catalog) AddBatch(tools []Tool) int {
	return cat.tools.AddBatch(tools)
}

// Replace swaps an entry by id, keeping its position.
func (cat *catalog) Replace(tool Tool) error {
	if err := validate(tool); err != nil {
		return err
	}
	if err := cat.tools.Replace(tool); err != nil {
		return &errors.NotFoundError{Resource: "tool", ID: tool.ID}
	}
	return nil
}

// Delete removes an entry by id.
func (cat *catalog) Delete(id string) error {
	if err := cat.tools.Delete(id); err != nil {
		return &errors.NotFoundError{Resource: "tool", ID: id}
	}
	return nil
}

// ReplaceAll overwrites the whole catalog. Used by bulk cloud sync.
func (cat *catalog) ReplaceAll(tools []Tool) {
	cat.tools.ReplaceAll(tools)
}

// ReplaceWith replaces this catalog's contents with another's.
func (cat *catalog) ReplaceWith(source Reader) error {
	cat.tools.ReplaceAll(source.List())
	return nil
}

// Copy creates a deep copy of the catalog.
func (cat *catalog) Copy() (Catalog, error) {
	newCat := &catalog{
		tools:   NewTools(WithToolsCapacity(cat.tools.Len())),
		options: cat.options,
	}
	return newCat, newCat.ReplaceWith(cat)
}

// validate enforces the minimal entry invariants: non-empty id and name.
func validate(tool Tool) error {
	if tool.ID == "" {
		return &errors.ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if tool.Name == "" {
		return &errors.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	return nil
}
