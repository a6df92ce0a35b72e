package catalogs

// Reader provides read-only access to catalog data.
type Reader interface {
	// Tools returns the underlying ordered collection
	Tools() *Tools

	// List returns an ordered copy of all entries
	List() []Tool

	// Tool returns an entry by id
	Tool(id string) (Tool, error)

	// Len returns the number of entries
	Len() int

	// Derived read-only views; none of these mutate entries
	ByCategory(id CategoryID) []Tool
	ByTag(tag string) []Tool
	Search(query string) []Tool
	Featured() []Tool
	HotFirst() []Tool
}

// Writer provides write operations for catalog data.
type Writer interface {
	// Add prepends a single entry. Manual submissions do not dedup
	// against existing URLs; only the import path does.
	Add(tool Tool) error

	// AddBatch prepends a batch (most-recent-first), returning the
	// number of entries actually added.
	AddBatch(tools []Tool) int

	// Replace swaps an entry by id, keeping its position
	Replace(tool Tool) error

	// Delete removes an entry by id
	Delete(id string) error

	// ReplaceAll overwrites the whole catalog (bulk cloud sync)
	ReplaceAll(tools []Tool)
}

// Merger provides catalog replacement from another catalog.
type Merger interface {
	// ReplaceWith replaces this catalog's contents with another's
	ReplaceWith(source Reader) error
}

// Copier provides catalog copying capabilities.
type Copier interface {
	// Copy returns a deep copy of the catalog
	Copy() (Catalog, error)
}

// Catalog is the complete interface combining all catalog capabilities.
type Catalog interface {
	Reader
	Writer
	Merger
	Copier
}

// ReadOnlyCatalog provides read-only access to a catalog.
type ReadOnlyCatalog interface {
	Reader
	Copier
}
