// Package paths provides the on-disk layout used by arcbuilder.
//
// The cache root holds three subdirectories:
//
//   - roms: ROM archives named after their catalog entries
//   - mra:  MRA descriptor files
//   - bin:  the platform mra executable
//
// When no cache root is configured it defaults to
// $XDG_CACHE_HOME/arcbuilder. ARC files are written below the output root,
// with multi-variant cores in an upper-case subdirectory.
//
// # Usage
//
//	p, err := paths.New(cfg.Paths.CacheDir, cfg.Paths.OutputDir)
//	if err != nil {
//	    return err
//	}
//	romDir := p.ROMDir() // ~/.cache/arcbuilder/roms
package paths
