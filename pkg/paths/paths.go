package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

const (
	// AppDirName is the directory name used below the XDG base dirs
	AppDirName = "arcbuilder"

	// ROMDirName is the cache subdirectory for ROM archives
	ROMDirName = "roms"

	// MRADirName is the cache subdirectory for MRA files
	MRADirName = "mra"

	// BinDirName is the cache subdirectory for the build executable
	BinDirName = "bin"

	// DefaultOutputDir is used when no output root is configured
	DefaultOutputDir = "JOTEGO"

	// LogFileName is the name of the log file
	LogFileName = "arcbuilder.log"

	// EnvHome is the environment variable for the user's home directory
	EnvHome = "HOME"
)

// Paths resolves the cache and output locations of a run.
type Paths struct {
	cacheDir  string
	outputDir string
}

var _ types.Layout = (*Paths)(nil)

// New creates a Paths. An empty cacheDir uses the XDG cache directory and
// an empty outputDir uses DefaultOutputDir in the working directory. Both
// are made absolute.
func New(cacheDir, outputDir string) (*Paths, error) {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	absCache, err := filepath.Abs(ExpandHome(cacheDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for cache dir %s", cacheDir)
	}
	absOut, err := filepath.Abs(ExpandHome(outputDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for output dir %s", outputDir)
	}

	return &Paths{cacheDir: absCache, outputDir: absOut}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/arcbuilder.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// ConfigDir returns $XDG_CONFIG_HOME/arcbuilder.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns $XDG_STATE_HOME/arcbuilder. XDG_STATE_HOME is read at
// call time so tests can override it.
func StateDir() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the append-only log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

func (p *Paths) CacheDir() string { return p.cacheDir }

func (p *Paths) ROMDir() string { return filepath.Join(p.cacheDir, ROMDirName) }

func (p *Paths) MRADir() string { return filepath.Join(p.cacheDir, MRADirName) }

func (p *Paths) BinDir() string { return filepath.Join(p.cacheDir, BinDirName) }

func (p *Paths) OutputDir() string { return p.outputDir }

// ExpandHome expands a leading ~ to the home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
