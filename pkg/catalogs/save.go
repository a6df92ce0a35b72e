package catalogs

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Save writes the catalog to the configured write path as tools.yaml.
func (cat *catalog) Save() error {
	if cat.options.writePath == "" {
		return &errors.ConfigError{
			Component: "catalog",
			Message:   "no write path configured for saving",
		}
	}
	return cat.saveTo(cat.options.writePath)
}

// SaveTo writes the catalog to the given directory as tools.yaml.
func (cat *catalog) SaveTo(path string) error {
	return cat.saveTo(path)
}

func (cat *catalog) saveTo(basePath string) error {
	if err := os.MkdirAll(basePath, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", basePath, err)
	}

	data, err := yaml.Marshal(cat.tools.List())
	if err != nil {
		return errors.WrapParse("yaml", toolsFileName, err)
	}

	fullPath := filepath.Join(basePath, toolsFileName)
	if err := os.WriteFile(fullPath, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", fullPath, err)
	}
	return nil
}
