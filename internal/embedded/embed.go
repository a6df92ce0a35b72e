// Package embedded carries the seed tool catalog compiled into the binary.
// It is loaded at startup when no local catalog data exists yet.
package embedded

import (
	"embed"
	"io/fs"
)

// seedFS embeds the seed catalog yaml files at build time.
//
//go:embed catalog/*
var seedFS embed.FS

// FS returns the embedded seed catalog rooted at the catalog directory.
func FS() fs.FS {
	sub, err := fs.Sub(seedFS, "catalog")
	if err != nil {
		// The catalog directory is part of the build; failure here means
		// a broken binary, not a runtime condition.
		panic(err)
	}
	return sub
}
