package toolmap

import (
	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/storage"
)

type options struct {
	store          storage.Store
	cloud          Cloud
	initialCatalog catalogs.Catalog
	skipEmbedded   bool
	logger         *logging.Logger
}

func defaultOptions() *options {
	return &options{
		logger: logging.Default(),
	}
}

// Option configures a Toolmap.
type Option func(*options)

// WithStorage sets the local persistence backend. Mutations save through
// it, and its snapshot wins over the embedded seed at startup.
func WithStorage(store storage.Store) Option {
	return func(o *options) { o.store = store }
}

// WithCloud sets the remote backend used by Sync and Publish.
func WithCloud(cloud Cloud) Option {
	return func(o *options) { o.cloud = cloud }
}

// WithInitialCatalog seeds the catalog directly, bypassing the embedded
// seed. Storage snapshots still take precedence.
func WithInitialCatalog(catalog catalogs.Catalog) Option {
	return func(o *options) { o.initialCatalog = catalog }
}

// WithoutSeed starts from an empty catalog when neither storage nor an
// initial catalog provides one.
func WithoutSeed() Option {
	return func(o *options) { o.skipEmbedded = true }
}

// WithLogger sets the logger used for operation-level events.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}
