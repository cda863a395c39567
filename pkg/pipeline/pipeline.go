package pipeline

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/arcbuilder/pkg/build"
	"github.com/arthur-debert/arcbuilder/pkg/cache"
	"github.com/arthur-debert/arcbuilder/pkg/config"
	"github.com/arthur-debert/arcbuilder/pkg/cores"
	"github.com/arthur-debert/arcbuilder/pkg/dataset"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/fetch"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/internal/hashutil"
	"github.com/arthur-debert/arcbuilder/pkg/metrics"
	"github.com/arthur-debert/arcbuilder/pkg/paths"
	"github.com/arthur-debert/arcbuilder/pkg/resolve"
	"github.com/arthur-debert/arcbuilder/pkg/style"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// Options configures a run.
type Options struct {
	Config *config.Config
	// Layout overrides the layout derived from Config.Paths.
	Layout types.Layout

	Include []string
	Exclude []string

	ForceArcadeDB bool
	ForceMRADB    bool
	// Force refetches every ROM archive and MRA file.
	Force bool
	// NoBuild stops after caching.
	NoBuild bool
	// SkipDownloads plans from whatever is cached without ensuring files.
	// Only Plan honors it.
	SkipDownloads bool

	// GOOS and GOARCH select the tool binary; empty uses the running
	// platform.
	GOOS   string
	GOARCH string

	// Source replaces the HTTP fetcher built from Config.Network.
	Source fetch.Source
	// Backend replaces the mra tool.
	Backend build.Backend

	FS      types.FS
	Console *style.Console
	Metrics *metrics.Recorder
	Logger  *zerolog.Logger
}

// run holds the components shared by Run, Plan and Verify.
type run struct {
	id      string
	opts    Options
	cfg     *config.Config
	layout  types.Layout
	fs      types.FS
	console *style.Console
	root    zerolog.Logger
	logger  zerolog.Logger

	store    *cache.Store
	breakers *fetch.BreakerFetcher
	loader   *dataset.Loader
	resolver *resolve.Resolver
}

// datasets are the loaded inputs of a run.
type datasets struct {
	arcade   *types.Catalog
	mra      *types.Catalog
	selected types.CoreSelection
}

func newRun(opts Options) (*run, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "pipeline requires a configuration")
	}
	cfg := opts.Config

	r := &run{
		id:      uuid.NewString(),
		opts:    opts,
		cfg:     cfg,
		layout:  opts.Layout,
		fs:      opts.FS,
		console: style.OrDefault(opts.Console),
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	if r.layout == nil {
		p, err := paths.New(cfg.Paths.CacheDir, cfg.Paths.OutputDir)
		if err != nil {
			return nil, err
		}
		r.layout = p
	}

	r.root = log.Logger
	if opts.Logger != nil {
		r.root = *opts.Logger
	}
	r.root = r.root.With().Str("run_id", r.id).Logger()
	r.logger = r.component("pipeline")

	algo, err := hashutil.Parse(cfg.Hash.Algorithm)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid hash algorithm")
	}

	source := opts.Source
	if source == nil {
		r.breakers = fetch.NewBreakerFetcher(fetch.NewFetcher(
			fetch.WithTimeout(cfg.Network.Timeout),
			fetch.WithInsecureSkipVerify(cfg.Network.InsecureSkipVerify),
			fetch.WithUserAgent(cfg.Network.UserAgent),
			fetch.WithMaxRetries(cfg.Network.MaxRetries),
			fetch.WithBaseDelay(cfg.Network.BaseDelay),
		), cfg.Network.BreakerThreshold)
		source = r.breakers
	}

	cacheLogger := r.component("cache")
	r.store = cache.New(cache.Options{
		FS:        r.fs,
		Source:    source,
		Algorithm: algo,
		Console:   r.console,
		Metrics:   opts.Metrics,
		Logger:    &cacheLogger,
	})

	datasetLogger := r.component("dataset")
	r.loader = dataset.NewLoader(dataset.Options{
		Store:    r.store,
		FS:       r.fs,
		CacheDir: r.layout.CacheDir(),
		Arcade: dataset.Source{
			URL:  cfg.Sources.ArcadeDBURL,
			Ref:  cfg.Sources.ArcadeDBRef,
			Name: cfg.Sources.ArcadeDBName,
		},
		MRA: dataset.Source{
			URL:  cfg.Sources.MRADBURL,
			Ref:  cfg.Sources.MRADBRef,
			Name: cfg.Sources.MRADBName,
		},
		Console: r.console,
		Logger:  &datasetLogger,
	})

	resolveLogger := r.component("resolve")
	r.resolver = resolve.New(resolve.Options{
		Store:       r.store,
		FS:          r.fs,
		MRAFilesURL: cfg.Sources.MRAFilesURL,
		Console:     r.console,
		Logger:      &resolveLogger,
	})

	return r, nil
}

func (r *run) component(name string) zerolog.Logger {
	return r.root.With().Str("component", name).Logger()
}

func (r *run) goos() string {
	if r.opts.GOOS != "" {
		return r.opts.GOOS
	}
	return runtime.GOOS
}

func (r *run) goarch() string {
	if r.opts.GOARCH != "" {
		return r.opts.GOARCH
	}
	return runtime.GOARCH
}

// load reads the three datasets and applies the include/exclude filter.
// Any dataset that comes back empty is fatal.
func (r *run) load(ctx context.Context) (*datasets, error) {
	r.logger.Info().Str("cache_dir", r.layout.CacheDir()).Msg("Loading datasets")

	arcade, err := r.loader.LoadArcadeDB(ctx, "", r.opts.ForceArcadeDB)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "run cancelled while loading the arcade catalog")
	}
	if arcade.Empty() {
		return nil, errors.New(errors.ErrDatasetLoad, "there is no arcade catalog data").
			WithDetail("name", r.cfg.Sources.ArcadeDBName)
	}

	mraDB, err := r.loader.LoadMRADB(ctx, "", r.opts.ForceMRADB)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "run cancelled while loading the MRA catalog")
	}
	if mraDB.Empty() {
		return nil, errors.New(errors.ErrDatasetLoad, "there is no MRA catalog data").
			WithDetail("name", r.cfg.Sources.MRADBName)
	}

	db, err := cores.Load(r.fs, r.cfg.Paths.CoresDB)
	if err != nil {
		return nil, err
	}
	if len(db) == 0 {
		return nil, errors.Newf(errors.ErrCoresDBLoad, "there are no cores in %s", r.cfg.Paths.CoresDB).
			WithDetail("path", r.cfg.Paths.CoresDB)
	}

	selected := cores.Filter(db, cores.SplitList(r.opts.Include), cores.SplitList(r.opts.Exclude))
	r.logger.Info().
		Int("arcade_files", len(arcade.Files)).
		Int("mra_files", len(mraDB.Files)).
		Int("cores", len(db)).
		Int("selected", len(selected)).
		Msg("Datasets loaded")
	if len(selected) == 0 {
		r.logger.Warn().Msg("Include/exclude filters left no cores selected")
	}

	return &datasets{arcade: arcade, mra: mraDB, selected: selected}, nil
}
