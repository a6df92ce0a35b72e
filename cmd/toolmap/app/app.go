// Package app provides the application context and dependency management
// for the toolmap CLI. It centralizes configuration, logging, and the
// toolmap instance behind one dependency-injected struct.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/pkg/cloud"
	"github.com/agentstation/toolmap/pkg/enrich"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/news"
	"github.com/agentstation/toolmap/pkg/storage"
)

// App represents the toolmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Toolmap instance (lazy-initialized, singleton)
	mu sync.RWMutex
	tm toolmap.Toolmap
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Verbose reports whether verbose output was requested.
func (a *App) Verbose() bool { return a.config.Verbose }

// Toolmap returns the toolmap instance, creating it lazily if needed.
// Thread-safe; only one instance is ever created.
func (a *App) Toolmap() (toolmap.Toolmap, error) {
	a.mu.RLock()
	if a.tm != nil {
		tm := a.tm
		a.mu.RUnlock()
		return tm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tm != nil {
		return a.tm, nil
	}

	opts, err := a.buildToolmapOptions()
	if err != nil {
		return nil, err
	}
	tm, err := toolmap.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "toolmap", "", err)
	}

	a.tm = tm
	return tm, nil
}

// Enricher returns a Gemini-backed enricher, or a config error when no API
// key is set.
func (a *App) Enricher(ctx context.Context) (*enrich.Enricher, error) {
	return enrich.New(ctx, a.config.GeminiAPIKey,
		enrich.WithLogger(a.logger))
}

// NewsFetcher returns a news fetcher honoring the configured feed URL.
func (a *App) NewsFetcher() *news.Fetcher {
	opts := []news.Option{news.WithLogger(a.logger)}
	if a.config.NewsFeedURL != "" {
		opts = append(opts, news.WithFeedURL(a.config.NewsFeedURL))
	}
	return news.NewFetcher(opts...)
}

// buildToolmapOptions constructs toolmap options from the app configuration.
func (a *App) buildToolmapOptions() ([]toolmap.Option, error) {
	opts := []toolmap.Option{
		toolmap.WithLogger(a.logger),
	}

	if a.config.DataDir != "" {
		opts = append(opts, toolmap.WithStorage(storage.NewDefaultFileStore(a.config.DataDir)))
	}

	if a.config.SupabaseURL != "" && a.config.SupabaseAnonKey != "" {
		client, err := cloud.NewClient(a.config.SupabaseURL, a.config.SupabaseAnonKey,
			cloud.WithServiceKey(a.config.SupabaseServiceKey),
			cloud.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		opts = append(opts, toolmap.WithCloud(client))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithToolmap sets a custom toolmap instance (useful for testing).
func WithToolmap(tm toolmap.Toolmap) Option {
	return func(a *App) error {
		a.tm = tm
		return nil
	}
}
