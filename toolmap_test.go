package toolmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/storage"
)

// fakeCloud is an in-memory Cloud with hooks for racing syncs.
type fakeCloud struct {
	tools     []catalogs.Tool
	err       error
	published []catalogs.Tool
	onFetch   func()
}

func (f *fakeCloud) FetchAll(ctx context.Context) ([]catalogs.Tool, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.tools, f.err
}

func (f *fakeCloud) ReplaceAll(ctx context.Context, tools []catalogs.Tool) error {
	if f.err != nil {
		return f.err
	}
	f.published = tools
	return nil
}

func newTestToolmap(t *testing.T, opts ...Option) Toolmap {
	t.Helper()
	opts = append(opts, WithoutSeed(), WithLogger(logging.NewNopLogger()))
	tm, err := New(opts...)
	require.NoError(t, err)
	return tm
}

func TestNewStartsFromEmbeddedSeed(t *testing.T) {
	tm, err := New(WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Greater(t, tm.Catalog().Len(), 0)
	assert.Greater(t, tm.Tags().Len(), 0, "registry reconciled against the seed")
}

func TestNewPrefersStoredSnapshot(t *testing.T) {
	store := storage.NewDefaultFileStore(t.TempDir())
	require.NoError(t, store.Save([]catalogs.Tool{
		{ID: "only", Name: "Only", URL: "https://only.example.com", Tags: []string{"存档"}},
	}))

	tm, err := New(WithStorage(store), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, 1, tm.Catalog().Len())
	assert.True(t, tm.Tags().Exists("存档"))
}

func TestClassifyAndMerge(t *testing.T) {
	tm := newTestToolmap(t)
	require.NoError(t, tm.AddTool(catalogs.Tool{
		ID: "cursor", Name: "Cursor", URL: "https://cursor.sh", CategoryID: catalogs.CategoryWork,
	}))

	result := tm.Classify("Cursor Clone | https://cursor.sh/\nFresh | https://fresh.example.com | 新工具 | 办公 | 效率,免费")
	require.Len(t, result.Accepted, 1)
	require.Len(t, result.Rejected, 1)

	added, err := tm.Merge(result)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, tm.Catalog().Len())

	// Merged tool is prepended and its tags are reconciled.
	assert.Equal(t, "Fresh", tm.Catalog().List()[0].Name)
	assert.True(t, tm.Tags().Exists("效率"))
}

func TestMergePersists(t *testing.T) {
	store := storage.NewDefaultFileStore(t.TempDir())
	tm := newTestToolmap(t, WithStorage(store))

	result := tm.Classify("A | https://a.example.com")
	_, err := tm.Merge(result)
	require.NoError(t, err)

	saved, exists, err := store.Load()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Len(t, saved, 1)
}

func TestAddToolSkipsURLDedup(t *testing.T) {
	tm := newTestToolmap(t)
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "a", Name: "A", URL: "https://same.example.com"}))

	// Single submission does not check URLs; only batch import does.
	err := tm.AddTool(catalogs.Tool{ID: "b", Name: "B", URL: "https://same.example.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, tm.Catalog().Len())
}

func TestAddToolSynthesizesID(t *testing.T) {
	tm := newTestToolmap(t)
	require.NoError(t, tm.AddTool(catalogs.Tool{Name: "NoID", URL: "https://noid.example.com"}))

	list := tm.Catalog().List()
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
}

func TestTagCascadesThroughFacade(t *testing.T) {
	tm := newTestToolmap(t)
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "a", Name: "A", URL: "https://a", Tags: []string{"旧名", "其他"}}))
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "b", Name: "B", URL: "https://b", Tags: []string{"旧名"}}))

	assert.Equal(t, 2, tm.TagBlastRadius("旧名"))

	touched, err := tm.RenameTag("旧名", "新名")
	require.NoError(t, err)
	assert.Equal(t, 2, touched)

	touched, err = tm.DeleteTag("其他")
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	tool, err := tm.Catalog().Tool("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"新名"}, tool.Tags)
}

func TestDuplicates(t *testing.T) {
	tm := newTestToolmap(t)
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "a", Name: "Foo", URL: "https://a"}))
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "b", Name: " foo ", URL: "https://b"}))
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "c", Name: "Bar", URL: "https://c"}))

	scan := tm.Duplicates()
	require.Equal(t, 1, scan.Len())
	assert.Equal(t, "foo", scan.Groups()[0].Name)
}

func TestPublish(t *testing.T) {
	cloud := &fakeCloud{}
	tm := newTestToolmap(t, WithCloud(cloud))
	require.NoError(t, tm.AddTool(catalogs.Tool{ID: "a", Name: "A", URL: "https://a"}))

	require.NoError(t, tm.Publish(context.Background()))
	require.Len(t, cloud.published, 1)
	assert.Equal(t, "a", cloud.published[0].ID)
}

func TestPublishWithoutCloud(t *testing.T) {
	tm := newTestToolmap(t)
	err := tm.Publish(context.Background())
	assert.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}
