package config

import "time"

// Config is the effective arcbuilder configuration.
type Config struct {
	Paths   Paths   `koanf:"paths" toml:"paths"`
	Network Network `koanf:"network" toml:"network"`
	Sources Sources `koanf:"sources" toml:"sources"`
	Tool    Tool    `koanf:"tool" toml:"tool"`
	Hash    Hash    `koanf:"hash" toml:"hash"`
	Metrics Metrics `koanf:"metrics" toml:"metrics"`
}

// Paths locates the cache, the cores selection and the output tree.
type Paths struct {
	CacheDir  string `koanf:"cache_dir" toml:"cache_dir"`
	CoresDB   string `koanf:"cores_db" toml:"cores_db"`
	OutputDir string `koanf:"output_dir" toml:"output_dir"`
}

// Network holds the HTTP client settings handed to the fetcher.
type Network struct {
	Timeout            time.Duration `koanf:"timeout" toml:"timeout"`
	InsecureSkipVerify bool          `koanf:"insecure_skip_verify" toml:"insecure_skip_verify"`
	UserAgent          string        `koanf:"user_agent" toml:"user_agent"`
	MaxRetries         int           `koanf:"max_retries" toml:"max_retries"`
	BaseDelay          time.Duration `koanf:"base_delay" toml:"base_delay"`
	BreakerThreshold   int64         `koanf:"breaker_threshold" toml:"breaker_threshold"`
}

// Sources are the remote dataset locations. URLs may contain {ref} and
// {name} placeholders.
type Sources struct {
	ArcadeDBURL  string `koanf:"arcade_db_url" toml:"arcade_db_url"`
	ArcadeDBRef  string `koanf:"arcade_db_ref" toml:"arcade_db_ref"`
	ArcadeDBName string `koanf:"arcade_db_name" toml:"arcade_db_name"`
	MRADBURL     string `koanf:"mra_db_url" toml:"mra_db_url"`
	MRADBRef     string `koanf:"mra_db_ref" toml:"mra_db_ref"`
	MRADBName    string `koanf:"mra_db_name" toml:"mra_db_name"`
	MRAFilesURL  string `koanf:"mra_files_url" toml:"mra_files_url"`
	MRAFilesRef  string `koanf:"mra_files_ref" toml:"mra_files_ref"`
}

// Tool configures the external mra executable.
type Tool struct {
	Path        string        `koanf:"path" toml:"path"`
	BaseURL     string        `koanf:"base_url" toml:"base_url"`
	SettleDelay time.Duration `koanf:"settle_delay" toml:"settle_delay"`
}

type Hash struct {
	Algorithm string `koanf:"algorithm" toml:"algorithm"`
}

type Metrics struct {
	Textfile string `koanf:"textfile" toml:"textfile"`
}
