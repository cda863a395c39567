// Package cores loads the curated cores selection and narrows it with the
// include and exclude lists.
package cores

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// Load reads a cores DB mapping core identifiers to their naming overrides.
// Files ending in .yaml or .yml are YAML, anything else is JSON.
func Load(fsys types.FS, path string) (types.CoreSelection, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if path == "" {
		return nil, errors.New(errors.ErrCoresDBLoad, "no cores database configured")
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCoresDBLoad, "cores database not found: %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCoresDBLoad, "failed to read cores database %s", path)
	}

	selection := types.CoreSelection{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &selection)
	default:
		err = json.Unmarshal(data, &selection)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCoresDBLoad, "failed to parse cores database %s", path).
			WithDetail("path", path)
	}

	return selection, nil
}
