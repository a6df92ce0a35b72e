package catalogs

import (
	stderrors "errors"
	"io/fs"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/pkg/errors"
)

// toolsFileName is the catalog file read from the configured filesystem.
const toolsFileName = "tools.yaml"

// Load loads the catalog from the configured filesystem.
func (cat *catalog) Load() error {
	if cat.options.readFS == nil {
		return nil // Memory catalog - nothing to load
	}

	data, err := fs.ReadFile(cat.options.readFS, toolsFileName)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil // File doesn't exist is okay
		}
		return errors.WrapIO("read", toolsFileName, err)
	}

	var tools []Tool
	if err := yaml.Unmarshal(data, &tools); err != nil {
		return errors.WrapParse("yaml", toolsFileName, err)
	}

	cat.tools.ReplaceAll(tools)
	return nil
}
