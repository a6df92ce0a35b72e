package toolmap

import (
	"context"

	"github.com/agentstation/toolmap/pkg/errors"
)

// Sync replaces the local catalog with the cloud snapshot.
//
// The fetch runs without holding the mutation lock, so local edits can land
// while it is in flight. Each sync captures the mutation generation before
// fetching and re-checks it before applying: if anything changed locally in
// the meantime, the fetched snapshot is stale and is dropped with
// ErrStaleFetch instead of clobbering the newer state.
func (t *toolmap) Sync(ctx context.Context) (int, error) {
	if t.options.cloud == nil {
		return 0, &errors.ConfigError{Component: "toolmap", Message: "no cloud backend configured"}
	}

	t.mu.Lock()
	generation := t.generation
	t.mu.Unlock()

	tools, err := t.options.cloud.FetchAll(ctx)
	if err != nil {
		return 0, &errors.SyncError{Operation: "fetch", Err: err}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.generation != generation {
		t.logger.Warn().
			Uint64("fetched_at", generation).
			Uint64("current", t.generation).
			Msg("dropping stale cloud snapshot")
		return 0, errors.ErrStaleFetch
	}

	t.catalog.ReplaceAll(tools)
	t.afterMutationLocked()
	if err := t.persistLocked(); err != nil {
		return len(tools), err
	}

	t.logger.Info().Int("count", len(tools)).Msg("synced catalog from cloud")
	return len(tools), nil
}
