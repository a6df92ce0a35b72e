package toolmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/storage"
)

func TestSyncReplacesLocalCatalog(t *testing.T) {
	cloud := &fakeCloud{tools: []catalogs.Tool{
		{ID: "remote", Name: "Remote", URL: "https://remote.example.com", Tags: []string{"云端"}},
	}}
	tm := newTestToolmap(t, WithCloud(cloud))
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "local", Name: "Local", URL: "https://local.example.com"}))

	count, err := tm.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, 1, tm.Catalog().Len())
	_, err = tm.Catalog().Tool("remote")
	assert.NoError(t, err)
	assert.True(t, tm.Tags().Exists("云端"), "registry reconciled after sync")
}

func TestSyncPersists(t *testing.T) {
	store := storage.NewDefaultFileStore(t.TempDir())
	cloud := &fakeCloud{tools: []catalogs.Tool{
		{ID: "remote", Name: "Remote", URL: "https://remote.example.com"},
	}}
	tm := newTestToolmap(t, WithCloud(cloud), WithStorage(store))

	_, err := tm.Sync(context.Background())
	require.NoError(t, err)

	saved, exists, err := store.Load()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Len(t, saved, 1)
}

func TestSyncFetchFailureKeepsLocalState(t *testing.T) {
	cloud := &fakeCloud{err: assert.AnError}
	tm := newTestToolmap(t, WithCloud(cloud))
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "local", Name: "Local", URL: "https://local"}))

	_, err := tm.Sync(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, tm.Catalog().Len(), "failed sync leaves the prior state intact")
}

func TestSyncDropsStaleFetch(t *testing.T) {
	cloud := &fakeCloud{tools: []catalogs.Tool{
		{ID: "remote", Name: "Remote", URL: "https://remote.example.com"},
	}}
	tm := newTestToolmap(t, WithCloud(cloud))

	// A local edit lands while the fetch is in flight.
	cloud.onFetch = func() {
		require.NoError(t, tm.AddTool(catalogs.Tool{ID: "newer", Name: "Newer", URL: "https://newer.example.com"}))
	}

	_, err := tm.Sync(context.Background())
	assert.ErrorIs(t, err, errors.ErrStaleFetch)

	// The stale snapshot was not applied.
	assert.Equal(t, 1, tm.Catalog().Len())
	_, err = tm.Catalog().Tool("newer")
	assert.NoError(t, err)
}

func TestSyncWithoutCloud(t *testing.T) {
	tm := newTestToolmap(t)
	_, err := tm.Sync(context.Background())
	assert.True(t, errors.IsConfig(err))
}
