package mratool

import (
	"context"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/arcbuilder/pkg/cache"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// ProvisionOptions configures Provision.
type ProvisionOptions struct {
	Store  cache.Ensurer
	FS     types.FS
	BinDir string
	// BaseURL is the release base; empty uses DefaultBaseURL.
	BaseURL string
	GOOS    string
	GOARCH  string
	// SettleDelay is waited after a fresh download before the binary is
	// used.
	SettleDelay time.Duration
	Force       bool
	Logger      *zerolog.Logger
}

// Provision makes the platform tool binary available in BinDir and returns
// a Tool for it.
func Provision(ctx context.Context, opts ProvisionOptions) (*Tool, error) {
	logger := logging.OrDefault(opts.Logger, "mratool")
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	url, err := DownloadURL(opts.BaseURL, opts.GOOS, opts.GOARCH)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrToolProvision, "unsupported platform")
	}
	name, _ := BinaryName(opts.GOOS, opts.GOARCH)
	binName := path.Base(name)
	binPath := filepath.Join(opts.BinDir, binName)

	existed := filesystem.IsFile(fsys, binPath) && !opts.Force
	if !existed {
		err := opts.Store.Ensure(ctx, cache.Request{
			Dir:   opts.BinDir,
			Name:  binName,
			URL:   url,
			Force: opts.Force,
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrToolProvision, "failed to obtain %s", binName)
		}

		if opts.SettleDelay > 0 {
			logger.Debug().Dur("delay", opts.SettleDelay).Msg("Waiting for the new binary to settle")
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), errors.ErrToolProvision, "provisioning cancelled")
			case <-time.After(opts.SettleDelay):
			}
		}
	}

	if opts.GOOS != "windows" {
		if err := fsys.Chmod(binPath, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrToolProvision, "failed to make %s executable", binPath)
		}
	}

	logger.Debug().Str("path", binPath).Bool("downloaded", !existed).Msg("Build tool ready")
	return New(binPath, opts.Logger), nil
}
