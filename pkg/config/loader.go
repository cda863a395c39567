package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/internal/hashutil"
	"github.com/arthur-debert/arcbuilder/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARCBUILDER_"

// windowsSettleDelay is applied when no settle delay is configured on
// windows, where a freshly written executable may be locked by scanners.
const windowsSettleDelay = 15 * time.Second

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("not implemented")
}

// LoadOptions selects the layers applied on top of the embedded defaults.
type LoadOptions struct {
	// File is an explicit config file. Empty looks for
	// $XDG_CONFIG_HOME/arcbuilder/config.toml and skips it when absent.
	File string
	// Environ replaces os.Environ for the environment layer.
	Environ []string
	// Overrides are dotted keys (for example "paths.cache_dir") from flags
	// that were explicitly set.
	Overrides map[string]interface{}
	GOOS      string
}

// DefaultConfigFile returns the conventional config file location.
func DefaultConfigFile() string {
	return filepath.Join(paths.ConfigDir(), "config.toml")
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	path := opts.File
	if path == "" {
		if candidate := DefaultConfigFile(); fileExists(candidate) {
			path = candidate
		}
	} else if !fileExists(path) {
		return nil, errors.Newf(errors.ErrConfigLoad, "config file %s not found", path).
			WithDetail("path", path)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if err := loadEnv(k, opts.Environ); err != nil {
		return nil, err
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if err := postProcessConfig(&cfg, k, goos); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnv maps ARCBUILDER_SECTION_KEY to section.key. Only the first
// underscore separates section from key, so ARCBUILDER_NETWORK_MAX_RETRIES
// is network.max_retries.
func loadEnv(k *koanf.Koanf, environ []string) error {
	transform := func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}

	if environ == nil {
		if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
		return nil
	}

	values := make(map[string]interface{})
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		values[transform(name)] = value
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	return nil
}

func postProcessConfig(cfg *Config, k *koanf.Koanf, goos string) error {
	if _, err := hashutil.Parse(cfg.Hash.Algorithm); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid hash algorithm %q", cfg.Hash.Algorithm)
	}
	if cfg.Network.MaxRetries < 0 {
		return errors.Newf(errors.ErrConfigParse, "network.max_retries must not be negative, got %d", cfg.Network.MaxRetries)
	}
	if cfg.Sources.MRAFilesRef == "" {
		cfg.Sources.MRAFilesRef = "master"
	}
	if goos == "windows" && !k.Exists("tool.settle_delay") {
		cfg.Tool.SettleDelay = windowsSettleDelay
	}
	cfg.Paths.CacheDir = paths.ExpandHome(cfg.Paths.CacheDir)
	cfg.Paths.CoresDB = paths.ExpandHome(cfg.Paths.CoresDB)
	cfg.Paths.OutputDir = paths.ExpandHome(cfg.Paths.OutputDir)
	cfg.Tool.Path = paths.ExpandHome(cfg.Tool.Path)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
