package cache

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/fetch"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/internal/hashutil"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/metrics"
	"github.com/arthur-debert/arcbuilder/pkg/style"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

const partSuffix = ".part"

// Request describes one file to make available locally.
type Request struct {
	Dir  string
	Name string
	// Hash and Size are the expected digest and byte length. Empty or zero
	// means unknown.
	Hash string
	Size int64
	// URL is where to download the file from when it is missing.
	URL   string
	Force bool
}

// Path is the destination of the request.
func (r Request) Path() string {
	return filepath.Join(r.Dir, r.Name)
}

// Options configures a Store.
type Options struct {
	FS        types.FS
	Source    fetch.Source
	Algorithm hashutil.Algorithm
	Console   *style.Console
	Metrics   *metrics.Recorder
	Logger    *zerolog.Logger
}

// Store ensures files are present and verified.
type Store struct {
	fs      types.FS
	source  fetch.Source
	algo    hashutil.Algorithm
	console *style.Console
	metrics *metrics.Recorder
	logger  zerolog.Logger
	locks   keyedMutex
}

// New creates a Store. A nil FS uses the OS filesystem and a nil Source
// uses a default fetcher.
func New(opts Options) *Store {
	s := &Store{
		fs:      opts.FS,
		source:  opts.Source,
		algo:    opts.Algorithm,
		console: style.OrDefault(opts.Console),
		metrics: opts.Metrics,
		logger:  logging.OrDefault(opts.Logger, "cache"),
	}
	if s.fs == nil {
		s.fs = filesystem.NewOS()
	}
	if s.source == nil {
		s.source = fetch.NewFetcher()
	}
	if s.algo == "" {
		s.algo = hashutil.MD5
	}
	return s
}

// Ensure makes req.Path() present and, when both hash and size are known,
// verified. A nil error means the file is usable.
func (s *Store) Ensure(ctx context.Context, req Request) error {
	path := req.Path()
	unlock := s.locks.Lock(path)
	defer unlock()

	logger := s.logger.With().Str("file", req.Name).Logger()

	if err := s.fs.MkdirAll(req.Dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create cache directory %s", req.Dir)
	}

	if req.Force {
		if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path)
		}
	}

	verified := false
	if req.Hash != "" && filesystem.IsFile(s.fs, path) {
		ok, err := s.Verify(path, req.Hash, req.Size)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("Could not read cached file, refetching")
			if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove unreadable %s", path)
			}
		case !ok:
			logger.Warn().Msg("Cached file failed verification, refetching")
			s.metrics.RecordVerifyFailure()
			if err := s.fs.Remove(path); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove corrupt %s", path)
			}
		default:
			verified = true
			s.metrics.RecordCacheHit()
			logger.Trace().Msg("Cache hit")
		}
	}

	if !filesystem.IsFile(s.fs, path) {
		if req.URL == "" {
			return errors.Newf(errors.ErrNotFound, "%s is not cached and has no source URL", req.Name).
				WithDetail("path", path)
		}
		if err := s.download(ctx, logger, req, path); err != nil {
			return err
		}
	}

	if !verified && req.Hash != "" && req.Size > 0 {
		ok, err := s.Verify(path, req.Hash, req.Size)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
		}
		if !ok {
			s.metrics.RecordVerifyFailure()
			logger.Error().Str("expected_hash", req.Hash).Int64("expected_size", req.Size).
				Msg("Downloaded file failed verification")
			return errors.Newf(errors.ErrHashMismatch, "%s does not match its expected hash or size", req.Name).
				WithDetail("path", path).
				WithDetail("hash", req.Hash).
				WithDetail("size", req.Size)
		}
	}

	return nil
}

func (s *Store) download(ctx context.Context, logger zerolog.Logger, req Request, path string) error {
	s.console.Downloading(req.Name)

	url := fetch.EscapeURL(req.URL)
	logger = logger.With().Str("url", url).Logger()
	start := time.Now()

	artifact, err := s.source.Fetch(ctx, url)
	if err != nil {
		if fetch.IsStatus(err) {
			logger.Debug().Err(err).Msg("Download refused")
		} else {
			logger.Error().Err(err).Msg("Download failed")
		}
		s.metrics.RecordDownload(metrics.ResultFailed, 0, time.Since(start))
		return errors.Wrapf(err, errors.ErrDownload, "failed to download %s", req.Name).
			WithDetail("url", url)
	}
	defer func() { _ = artifact.Body.Close() }()

	tmp := path + partSuffix
	out, err := s.fs.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", tmp)
	}

	n, copyErr := io.Copy(out, artifact.Body)
	closeErr := out.Close()
	if copyErr != nil || closeErr != nil {
		_ = s.fs.Remove(tmp)
		err := copyErr
		if err == nil {
			err = closeErr
		}
		logger.Error().Err(err).Msg("Download interrupted")
		s.metrics.RecordDownload(metrics.ResultFailed, n, time.Since(start))
		return errors.Wrapf(err, errors.ErrDownload, "failed to download %s", req.Name).
			WithDetail("url", url)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s into place", req.Name)
	}

	s.metrics.RecordDownload(metrics.ResultOK, n, time.Since(start))
	logger.Debug().Int64("bytes", n).Dur("took", time.Since(start)).Msg("Downloaded")
	return nil
}

// Verify reports whether the file at path has the given digest and, when
// size is positive, the given length.
func (s *Store) Verify(path, hash string, size int64) (bool, error) {
	sum, n, err := hashutil.CalculateFileChecksum(s.fs, path, s.algo)
	if err != nil {
		return false, err
	}
	if !hashutil.Equal(sum, hash) {
		return false, nil
	}
	return size <= 0 || n == size, nil
}

// Ensurer obtains a file into the local cache.
type Ensurer interface {
	Ensure(ctx context.Context, req Request) error
}

var _ Ensurer = (*Store)(nil)
