// Package storage persists the tool catalog as a JSON document.
//
// The Store interface mirrors the two operations the catalog needs from any
// persistence backend: load the full list (reporting absence distinctly
// from emptiness) and save the full list. The file implementation writes
// atomically via a temp file rename so a crash never leaves a torn file.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Store loads and saves a full catalog snapshot.
type Store interface {
	// Load returns the stored tools. The boolean reports whether a stored
	// snapshot exists at all; (nil, false, nil) means nothing saved yet.
	Load() ([]catalogs.Tool, bool, error)
	// Save replaces the stored snapshot.
	Save(tools []catalogs.Tool) error
}

// FileStore persists the catalog to a single JSON file.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the given file path. The directory
// is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// NewDefaultFileStore stores the catalog under dir using the standard data
// file name.
func NewDefaultFileStore(dir string) *FileStore {
	return NewFileStore(filepath.Join(dir, constants.DataFileName))
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the stored snapshot. A missing file is not an error.
func (s *FileStore) Load() ([]catalogs.Tool, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapIO("read", s.path, err)
	}

	var tools []catalogs.Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, true, &errors.ParseError{
			Format:  "json",
			Source:  s.path,
			Message: "invalid catalog snapshot",
			Err:     err,
		}
	}
	return tools, true, nil
}

// Save writes the snapshot atomically: marshal, write to a temp file in the
// same directory, then rename over the target.
func (s *FileStore) Save(tools []catalogs.Tool) error {
	data, err := json.MarshalIndent(tools, "", "  ")
	if err != nil {
		return errors.WrapIO("marshal", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("rename", s.path, err)
	}
	return nil
}
