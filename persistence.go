package toolmap

import (
	"github.com/agentstation/toolmap/pkg/catalogs"
)

// initialCatalog resolves the starting catalog: a stored snapshot wins,
// then an explicitly provided catalog, then the embedded seed.
func (t *toolmap) initialCatalog() (catalogs.Catalog, error) {
	if t.options.store != nil {
		tools, exists, err := t.options.store.Load()
		if err != nil {
			return nil, err
		}
		if exists {
			catalog, err := catalogs.New()
			if err != nil {
				return nil, err
			}
			catalog.ReplaceAll(tools)
			t.logger.Debug().Int("count", len(tools)).Msg("loaded catalog from storage")
			return catalog, nil
		}
	}

	if t.options.initialCatalog != nil {
		return t.options.initialCatalog, nil
	}
	if t.options.skipEmbedded {
		return catalogs.New()
	}
	return catalogs.NewEmbedded()
}

// Save persists the current catalog through the configured storage.
func (t *toolmap) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.persistLocked()
}

// persistLocked writes the catalog to storage when one is configured.
// Callers hold t.mu.
func (t *toolmap) persistLocked() error {
	if t.options.store == nil {
		return nil
	}
	return t.options.store.Save(t.catalog.List())
}
