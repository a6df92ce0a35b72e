// Package constants provides shared constants used throughout the toolmap codebase.
// This includes timeouts, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the cloud backend
	DefaultHTTPTimeout = 30 * time.Second

	// NewsFetchTimeout is the timeout for fetching the news feed
	NewsFetchTimeout = 15 * time.Second

	// SyncTimeout is the timeout for full cloud sync operations
	SyncTimeout = 2 * time.Minute

	// EnrichTimeout is the timeout for a single AI enrichment call
	EnrichTimeout = 45 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API keys (rw-------)
	SecureFilePermissions = 0600
)

// DataFileName is the default on-disk name of the local catalog store.
const DataFileName = "tools.json"
