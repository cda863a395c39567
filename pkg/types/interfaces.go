package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required by the cache and build layers
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// Layout provides the on-disk locations used by a run
type Layout interface {
	// CacheDir returns the cache root
	CacheDir() string

	// ROMDir returns the ROM archive cache, <cache>/roms
	ROMDir() string

	// MRADir returns the MRA file cache, <cache>/mra
	MRADir() string

	// BinDir returns where the build executable is kept, <cache>/bin
	BinDir() string

	// OutputDir returns the root of the produced ARC files
	OutputDir() string
}
