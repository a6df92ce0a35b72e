// Package toolmap manages a catalog of AI tools: importing records from
// text, keeping the tag vocabulary in sync with the catalog, scanning for
// duplicate titles, and moving the whole catalog between local storage and
// a cloud backend.
//
// Example usage:
//
//	tm, err := toolmap.New(
//		toolmap.WithStorage(storage.NewDefaultFileStore(dir)),
//	)
//	if err != nil { ... }
//
//	result, _ := tm.Classify(input)
//	added, err := tm.Merge(result)
package toolmap

import (
	"context"
	"sync"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/dedupe"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/importer"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/tags"
)

// Cloud is the remote backend the catalog syncs with.
type Cloud interface {
	FetchAll(ctx context.Context) ([]catalogs.Tool, error)
	ReplaceAll(ctx context.Context, tools []catalogs.Tool) error
}

// Toolmap funnels every catalog mutation through a named operation, so the
// catalog, the tag registry, and local storage never drift apart.
type Toolmap interface {
	// Catalog returns the live catalog for reads and derived views.
	Catalog() catalogs.Catalog

	// Tags returns the tag registry, reconciled with the catalog.
	Tags() *tags.Registry

	// Classify parses import text and partitions it against the catalog.
	// Nothing is merged; the caller confirms with Merge.
	Classify(input string) importer.Result

	// Merge prepends the accepted records and returns how many were added.
	Merge(result importer.Result) (int, error)

	// AddTool adds a single submission. By policy it does not dedup
	// against existing URLs; only batch import does.
	AddTool(tool catalogs.Tool) error

	// ReplaceTool updates an existing tool in place, matched by id.
	ReplaceTool(tool catalogs.Tool) error

	// DeleteTool removes a tool by id.
	DeleteTool(id string) error

	// RenameTag renames a tag across the registry and every tool,
	// returning the number of tools touched.
	RenameTag(from, to string) (int, error)

	// DeleteTag removes a tag from the registry and every tool,
	// returning the number of tools touched.
	DeleteTag(name string) (int, error)

	// TagBlastRadius reports how many tools a tag cascade would touch.
	TagBlastRadius(name string) int

	// Duplicates scans for tools sharing a normalized name.
	Duplicates() *dedupe.Result

	// Save persists the catalog to the configured storage.
	Save() error

	// Sync replaces the local catalog with the cloud snapshot. A sync
	// that loses the race against a newer local change returns
	// ErrStaleFetch and applies nothing.
	Sync(ctx context.Context) (int, error)

	// Publish replaces the cloud snapshot with the local catalog.
	Publish(ctx context.Context) error
}

type toolmap struct {
	mu       sync.Mutex
	catalog  catalogs.Catalog
	registry *tags.Registry
	options  *options
	logger   *logging.Logger

	// generation counts local mutations; Sync uses it to detect that a
	// fetch result went stale while in flight.
	generation uint64
}

var _ Toolmap = (*toolmap)(nil)

// New builds a Toolmap. The catalog comes from storage when a snapshot
// exists, then from the configured initial catalog, then from the embedded
// seed.
func New(opts ...Option) (Toolmap, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	tm := &toolmap{
		options: options,
		logger:  options.logger,
	}

	catalog, err := tm.initialCatalog()
	if err != nil {
		return nil, err
	}
	tm.catalog = catalog

	tm.registry = tags.NewRegistry()
	tm.registry.Reconcile(catalog.List())
	return tm, nil
}

func (t *toolmap) Catalog() catalogs.Catalog { return t.catalog }

func (t *toolmap) Tags() *tags.Registry { return t.registry }

func (t *toolmap) Classify(input string) importer.Result {
	return importer.Reconcile(input, t.catalog.List())
}

func (t *toolmap) Merge(result importer.Result) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	added := t.catalog.AddBatch(result.Accepted)
	if added == 0 {
		return 0, nil
	}
	t.afterMutationLocked()
	t.logger.Info().
		Int("added", added).
		Int("duplicates", len(result.Rejected)).
		Msg("merged import batch")
	return added, t.persistLocked()
}

func (t *toolmap) AddTool(tool catalogs.Tool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tool.ID == "" {
		tool.ID = catalogs.NewID("tool")
	}
	if err := t.catalog.Add(tool); err != nil {
		return err
	}
	t.afterMutationLocked()
	return t.persistLocked()
}

func (t *toolmap) ReplaceTool(tool catalogs.Tool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.catalog.Replace(tool); err != nil {
		return err
	}
	t.afterMutationLocked()
	return t.persistLocked()
}

func (t *toolmap) DeleteTool(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.catalog.Delete(id); err != nil {
		return err
	}
	t.afterMutationLocked()
	return t.persistLocked()
}

func (t *toolmap) RenameTag(from, to string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	touched, err := t.registry.Rename(t.catalog.Tools(), from, to)
	if err != nil {
		return 0, err
	}
	if touched > 0 {
		t.afterMutationLocked()
		if err := t.persistLocked(); err != nil {
			return touched, err
		}
	}
	t.logger.Info().
		Str("from", from).
		Str("to", to).
		Int("touched", touched).
		Msg("renamed tag")
	return touched, nil
}

func (t *toolmap) DeleteTag(name string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	touched, err := t.registry.Delete(t.catalog.Tools(), name)
	if err != nil {
		return 0, err
	}
	if touched > 0 {
		t.afterMutationLocked()
		if err := t.persistLocked(); err != nil {
			return touched, err
		}
	}
	t.logger.Info().
		Str("tag", name).
		Int("touched", touched).
		Msg("deleted tag")
	return touched, nil
}

func (t *toolmap) TagBlastRadius(name string) int {
	return t.registry.BlastRadius(t.catalog.Tools(), name)
}

func (t *toolmap) Duplicates() *dedupe.Result {
	return dedupe.Scan(t.catalog.List())
}

func (t *toolmap) Publish(ctx context.Context) error {
	if t.options.cloud == nil {
		return &errors.ConfigError{Component: "toolmap", Message: "no cloud backend configured"}
	}
	return t.options.cloud.ReplaceAll(ctx, t.catalog.List())
}

// afterMutationLocked re-derives state that follows the catalog: the tag
// registry picks up new tags and the generation advances so in-flight
// syncs know their snapshot is stale.
func (t *toolmap) afterMutationLocked() {
	t.generation++
	t.registry.Reconcile(t.catalog.List())
}
