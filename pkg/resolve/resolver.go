package resolve

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/arcbuilder/pkg/cache"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/fetch"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/style"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// DefaultMRAFilesRef is used when an MRA files ref is empty.
const DefaultMRAFilesRef = "master"

// Store is the part of the cache store the resolver uses.
type Store interface {
	cache.Ensurer
	Verify(path, hash string, size int64) (bool, error)
}

// Failure is one file that could not be cached.
type Failure struct {
	Name string
	Err  error
}

// Report summarizes a caching pass.
type Report struct {
	Ensured []string
	Failed  []Failure
}

// Options configures a Resolver.
type Options struct {
	Store Store
	FS    types.FS
	// MRAFilesURL is the template MRA files are fetched from. It holds
	// {ref} and {name}.
	MRAFilesURL string
	Console     *style.Console
	Logger      *zerolog.Logger
}

// Resolver caches the files a plan names.
type Resolver struct {
	store       Store
	fs          types.FS
	mraFilesURL string
	console     *style.Console
	logger      zerolog.Logger
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	r := &Resolver{
		store:       opts.Store,
		fs:          opts.FS,
		mraFilesURL: opts.MRAFilesURL,
		console:     style.OrDefault(opts.Console),
		logger:      logging.OrDefault(opts.Logger, "resolve"),
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	return r
}

// CacheROMs ensures every ROM archive into dir. Failures are reported per
// file and never stop the pass.
func (r *Resolver) CacheROMs(ctx context.Context, entries []types.CatalogEntry, dir string, force bool) Report {
	return r.cache(ctx, entries, dir, force, func(e types.CatalogEntry) string { return e.URL })
}

// CacheMRAs ensures every MRA file into dir, fetching from the MRA files
// template at ref.
func (r *Resolver) CacheMRAs(ctx context.Context, entries []types.CatalogEntry, dir, ref string, force bool) Report {
	if ref == "" {
		ref = DefaultMRAFilesRef
	}
	return r.cache(ctx, entries, dir, force, func(e types.CatalogEntry) string {
		return fetch.Expand(r.mraFilesURL, ref, e.Name())
	})
}

func (r *Resolver) cache(ctx context.Context, entries []types.CatalogEntry, dir string, force bool, url func(types.CatalogEntry) string) Report {
	var report Report
	for _, entry := range entries {
		if ctx.Err() != nil {
			report.Failed = append(report.Failed, Failure{Name: entry.Name(), Err: ctx.Err()})
			continue
		}

		err := r.store.Ensure(ctx, cache.Request{
			Dir:   dir,
			Name:  entry.Name(),
			Hash:  entry.Hash,
			Size:  entry.Size,
			URL:   url(entry),
			Force: force,
		})
		if err != nil {
			r.console.BadFile(entry.Name())
			r.logger.Warn().Err(err).
				Str("file", entry.Name()).
				Str("code", string(errors.GetErrorCode(err))).
				Msg("File not cached")
			report.Failed = append(report.Failed, Failure{Name: entry.Name(), Err: err})
			continue
		}
		report.Ensured = append(report.Ensured, entry.Name())
	}

	r.logger.Info().
		Int("ensured", len(report.Ensured)).
		Int("failed", len(report.Failed)).
		Str("dir", dir).
		Msg("Cache pass complete")
	return report
}

// CheckState is the outcome of auditing one cached file.
type CheckState string

const (
	CheckOK         CheckState = "ok"
	CheckMissing    CheckState = "missing"
	CheckCorrupt    CheckState = "corrupt"
	CheckUnverified CheckState = "unverified"
)

// Check is the audit result of one file.
type Check struct {
	Name  string
	Path  string
	State CheckState
	Err   error
}

// Audit checks the cached copies of entries in dir without downloading.
// Entries without a published hash are reported as unverified.
func (r *Resolver) Audit(entries []types.CatalogEntry, dir string) []Check {
	checks := make([]Check, 0, len(entries))
	for _, entry := range entries {
		c := Check{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())}
		switch {
		case !filesystem.IsFile(r.fs, c.Path):
			c.State = CheckMissing
		case entry.Hash == "":
			c.State = CheckUnverified
		default:
			ok, err := r.store.Verify(c.Path, entry.Hash, entry.Size)
			switch {
			case err != nil:
				c.State, c.Err = CheckCorrupt, err
			case ok:
				c.State = CheckOK
			default:
				c.State = CheckCorrupt
			}
		}
		if c.State == CheckCorrupt {
			r.logger.Warn().Str("file", c.Name).Msg("Cached file failed verification")
		}
		checks = append(checks, c)
	}
	return checks
}
