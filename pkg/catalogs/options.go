package catalogs

import (
	"io/fs"
	"os"

	"github.com/agentstation/toolmap/internal/embedded"
)

// Option configures a catalog at construction time.
type Option func(*catalogOptions)

// catalogOptions holds the backing configuration for a catalog.
type catalogOptions struct {
	readFS    fs.FS  // filesystem to auto-load from, nil for memory catalogs
	writePath string // directory to save catalog files into
}

// catalogDefaults returns the default (memory) configuration.
func catalogDefaults() *catalogOptions {
	return &catalogOptions{}
}

// apply applies the given options in order.
func (o *catalogOptions) apply(opts ...Option) *catalogOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEmbedded configures the catalog to load the embedded seed tool list.
func WithEmbedded() Option {
	return func(o *catalogOptions) {
		o.readFS = embedded.FS()
	}
}

// WithPath configures the catalog to load from and save to a directory on disk.
func WithPath(path string) Option {
	return func(o *catalogOptions) {
		o.readFS = os.DirFS(path)
		o.writePath = path
	}
}

// WithFS configures the catalog to load from a custom filesystem.
func WithFS(fsys fs.FS) Option {
	return func(o *catalogOptions) {
		o.readFS = fsys
	}
}

// WithWritePath configures where Save writes catalog files without
// affecting where the catalog loads from.
func WithWritePath(path string) Option {
	return func(o *catalogOptions) {
		o.writePath = path
	}
}
