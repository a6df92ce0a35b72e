package catalogs

// Persistence handles catalog file persistence. Catalogs created with a
// filesystem option implement it; callers type-assert when they need it.
type Persistence interface {
	// Load (re)loads the catalog from its configured filesystem
	Load() error

	// Save writes the catalog to its configured write path
	Save() error

	// SaveTo writes the catalog to the given directory
	SaveTo(path string) error
}

// Compile-time interface check.
var _ Persistence = (*catalog)(nil)
