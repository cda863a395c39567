// Package dataset loads the ZIP-packaged JSON catalogs.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/arcbuilder/pkg/cache"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/fetch"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/style"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// Default refs substituted into the catalog URL templates
const (
	DefaultArcadeRef = "db"
	DefaultMRARef    = "main"
)

// Archive locates one ZIP-packaged catalog.
type Archive struct {
	CacheDir string
	// BaseName is the JSON member name. The archive is BaseName + ".zip".
	BaseName string
	URLBase  string
	Force    bool
}

// Source describes where a catalog lives. URL may contain {ref}.
type Source struct {
	URL  string
	Ref  string
	Name string
}

// Options configures a Loader.
type Options struct {
	Store    cache.Ensurer
	FS       types.FS
	CacheDir string
	Arcade   Source
	MRA      Source
	Console  *style.Console
	Logger   *zerolog.Logger
}

// Loader reads catalogs through the cache store.
type Loader struct {
	store    cache.Ensurer
	fs       types.FS
	cacheDir string
	arcade   Source
	mra      Source
	console  *style.Console
	logger   zerolog.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts Options) *Loader {
	l := &Loader{
		store:    opts.Store,
		fs:       opts.FS,
		cacheDir: opts.CacheDir,
		arcade:   opts.Arcade,
		mra:      opts.MRA,
		console:  style.OrDefault(opts.Console),
		logger:   logging.OrDefault(opts.Logger, "dataset"),
	}
	if l.fs == nil {
		l.fs = filesystem.NewOS()
	}
	if l.arcade.Ref == "" {
		l.arcade.Ref = DefaultArcadeRef
	}
	if l.mra.Ref == "" {
		l.mra.Ref = DefaultMRARef
	}
	return l
}

// LoadArcadeDB loads the arcade ROM catalog. An empty ref uses the
// configured one.
func (l *Loader) LoadArcadeDB(ctx context.Context, ref string, force bool) (*types.Catalog, error) {
	return l.load(ctx, l.arcade, ref, force)
}

// LoadMRADB loads the MRA catalog. An empty ref uses the configured one.
func (l *Loader) LoadMRADB(ctx context.Context, ref string, force bool) (*types.Catalog, error) {
	return l.load(ctx, l.mra, ref, force)
}

func (l *Loader) load(ctx context.Context, src Source, ref string, force bool) (*types.Catalog, error) {
	if ref == "" {
		ref = src.Ref
	}
	return l.LoadZipJSON(ctx, Archive{
		CacheDir: l.cacheDir,
		BaseName: src.Name,
		URLBase:  fetch.Expand(src.URL, ref, ""),
		Force:    force,
	})
}

// LoadZipJSON ensures the archive and decodes its JSON member. Problems
// with the archive or its content are reported and yield an empty catalog;
// the error return is reserved for cancellation.
func (l *Loader) LoadZipJSON(ctx context.Context, archive Archive) (*types.Catalog, error) {
	zipName := archive.BaseName + ".zip"
	path := filepath.Join(archive.CacheDir, zipName)
	logger := l.logger.With().Str("catalog", archive.BaseName).Logger()

	err := l.store.Ensure(ctx, cache.Request{
		Dir:   archive.CacheDir,
		Name:  zipName,
		URL:   fetch.JoinURL(archive.URLBase, zipName),
		Force: archive.Force,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		logger.Error().Err(err).Msg("Could not obtain catalog archive")
		l.console.BadFile(archive.BaseName)
		if !filesystem.IsFile(l.fs, path) {
			return &types.Catalog{}, nil
		}
	}

	data, err := l.readMember(path, archive.BaseName)
	if err != nil {
		logger.Error().Err(err).Msg("Could not read catalog archive")
		l.console.Printf("%s Not a ZIP file!", archive.BaseName)
		return &types.Catalog{}, nil
	}
	if data == nil {
		logger.Error().Msg("Catalog archive has no member with the catalog name")
		return &types.Catalog{}, nil
	}

	logger.Debug().Msg("Loading catalog...")
	var catalog types.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		logger.Error().Err(err).Msg("Catalog is not valid JSON")
		return &types.Catalog{}, nil
	}

	logger.Debug().
		Int("files", len(catalog.Files)).
		Int("tags", catalog.Tags.Len()).
		Str("path", path).
		Msg("Catalog loaded OK")
	return &catalog, nil
}

// readMember returns the named member of the archive at path, or nil when
// the archive has no such member.
func (l *Loader) readMember(path, member string) ([]byte, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", path)
	}
	raw, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrZipExtract, "%s is not a ZIP archive", path)
	}

	for _, zf := range zr.File {
		if zf.Name != member {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrZipExtract, "failed to open %s in %s", member, path)
		}
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrZipExtract, "failed to extract %s from %s", member, path)
		}
		return data, nil
	}
	return nil, nil
}
