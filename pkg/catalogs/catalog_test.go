package catalogs

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/errors"
)

func TestNewEmptyCatalog(t *testing.T) {
	catalog, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func TestNewEmbeddedCatalog(t *testing.T) {
	catalog, err := NewEmbedded()
	require.NoError(t, err)
	assert.Greater(t, catalog.Len(), 0, "embedded seed should not be empty")

	got, err := catalog.Tool("deepseek")
	require.NoError(t, err)
	assert.Equal(t, "DeepSeek", got.Name)
	assert.True(t, got.IsHot)
}

func TestNewFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tools.yaml": &fstest.MapFile{Data: []byte(`
- id: a
  name: A
  url: https://a.example.com
  category_id: chat
`)},
	}

	catalog, err := NewFromFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

func TestNewFromFSMissingFile(t *testing.T) {
	catalog, err := NewFromFS(fstest.MapFS{})
	require.NoError(t, err, "a missing catalog file means an empty catalog, not an error")
	assert.Equal(t, 0, catalog.Len())
}

// deniedFS fails every open with a permission error.
type deniedFS struct{}

func (deniedFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func TestNewFromFSReadError(t *testing.T) {
	_, err := NewFromFS(deniedFS{})
	require.Error(t, err, "only a missing file is tolerated, not read failures")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestCatalogAddValidation(t *testing.T) {
	catalog, err := New()
	require.NoError(t, err)

	err = catalog.Add(Tool{Name: "no id", URL: "https://x"})
	assert.Error(t, err)

	err = catalog.Add(Tool{ID: "x", URL: "https://x"})
	assert.Error(t, err)

	require.NoError(t, catalog.Add(Tool{ID: "x", Name: "X", URL: "https://x", CategoryID: CategoryChat}))

	err = catalog.Add(Tool{ID: "x", Name: "X again", URL: "https://y"})
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestCatalogToolNotFound(t *testing.T) {
	catalog, err := New()
	require.NoError(t, err)

	_, err = catalog.Tool("ghost")
	assert.True(t, errors.IsNotFound(err))
}

func TestCatalogCopy(t *testing.T) {
	catalog, err := New()
	require.NoError(t, err)
	require.NoError(t, catalog.Add(Tool{ID: "a", Name: "A", URL: "https://a", CategoryID: CategoryChat}))

	clone, err := catalog.Copy()
	require.NoError(t, err)

	require.NoError(t, clone.Delete("a"))
	assert.Equal(t, 1, catalog.Len(), "copy must not share state with the source")
	assert.Equal(t, 0, clone.Len())
}

func TestCatalogReplaceWith(t *testing.T) {
	dst, err := New()
	require.NoError(t, err)
	require.NoError(t, dst.Add(Tool{ID: "old", Name: "Old", URL: "https://old", CategoryID: CategoryChat}))

	src, err := New()
	require.NoError(t, err)
	require.NoError(t, src.Add(Tool{ID: "new", Name: "New", URL: "https://new", CategoryID: CategoryWork}))

	require.NoError(t, dst.ReplaceWith(src))
	assert.Equal(t, 1, dst.Len())
	_, err = dst.Tool("new")
	assert.NoError(t, err)
}
