// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test configuration layering, decoding and rendering

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
)

// isolated keeps the developer's own config file and environment out of
// the test.
func isolated(opts LoadOptions) LoadOptions {
	if opts.Environ == nil {
		opts.Environ = []string{}
	}
	if opts.GOOS == "" {
		opts.GOOS = "linux"
	}
	return opts
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolated(LoadOptions{File: writeConfig(t, "")}))
	require.NoError(t, err)

	assert.Equal(t, "cores.json", cfg.Paths.CoresDB)
	assert.Equal(t, "JOTEGO", cfg.Paths.OutputDir)
	assert.Equal(t, 15*time.Minute, cfg.Network.Timeout)
	assert.True(t, cfg.Network.InsecureSkipVerify)
	assert.Equal(t, 3, cfg.Network.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Network.BaseDelay)
	assert.Equal(t, "db", cfg.Sources.ArcadeDBRef)
	assert.Equal(t, "main", cfg.Sources.MRADBRef)
	assert.Equal(t, "71dae38d45b3646f35345848a87cc4a709b6b6af", cfg.Sources.MRAFilesRef)
	assert.Equal(t, "arcade_roms_db.json", cfg.Sources.ArcadeDBName)
	assert.Equal(t, "jtbindb.json", cfg.Sources.MRADBName)
	assert.Equal(t, "md5", cfg.Hash.Algorithm)
	assert.Zero(t, cfg.Tool.SettleDelay)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoad_Layering(t *testing.T) {
	path := writeConfig(t, `
[paths]
cores_db = "/etc/cores.yaml"
output_dir = "/from/file"

[network]
timeout = "30s"
max_retries = 1
`)

	cfg, err := Load(isolated(LoadOptions{
		File: path,
		Environ: []string{
			"ARCBUILDER_NETWORK_MAX_RETRIES=7",
			"ARCBUILDER_PATHS_OUTPUT_DIR=/from/env",
			"ARCBUILDER_NETWORK_INSECURE_SKIP_VERIFY=false",
			"HOME=/ignored",
		},
		Overrides: map[string]interface{}{
			"paths.output_dir": "/from/flag",
		},
	}))
	require.NoError(t, err)

	assert.Equal(t, "/etc/cores.yaml", cfg.Paths.CoresDB, "file beats defaults")
	assert.Equal(t, 30*time.Second, cfg.Network.Timeout)
	assert.Equal(t, 7, cfg.Network.MaxRetries, "env beats file")
	assert.False(t, cfg.Network.InsecureSkipVerify)
	assert.Equal(t, "/from/flag", cfg.Paths.OutputDir, "flags beat env")
}

func TestLoad_EmptyMRAFilesRefMeansMaster(t *testing.T) {
	cfg, err := Load(isolated(LoadOptions{
		File: writeConfig(t, "[sources]\nmra_files_ref = \"\"\n"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "master", cfg.Sources.MRAFilesRef)
}

func TestLoad_WindowsSettleDelay(t *testing.T) {
	cfg, err := Load(isolated(LoadOptions{File: writeConfig(t, ""), GOOS: "windows"}))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Tool.SettleDelay)

	cfg, err = Load(isolated(LoadOptions{File: writeConfig(t, "[tool]\nsettle_delay = \"2s\"\n"), GOOS: "windows"}))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Tool.SettleDelay)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(isolated(LoadOptions{File: filepath.Join(t.TempDir(), "missing.toml")}))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	_, err = Load(isolated(LoadOptions{File: writeConfig(t, "[paths\n")}))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = Load(isolated(LoadOptions{File: writeConfig(t, "[hash]\nalgorithm = \"crc32\"\n")}))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = Load(isolated(LoadOptions{File: writeConfig(t, "[network]\nmax_retries = -1\n")}))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg, err := Load(isolated(LoadOptions{
		File:      writeConfig(t, ""),
		Overrides: map[string]interface{}{"network.timeout": "90s", "paths.cache_dir": "/var/cache/arc"},
	}))
	require.NoError(t, err)

	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "1m30s")

	reloaded, err := Load(isolated(LoadOptions{File: writeConfig(t, out)}))
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line not commented: %q", line)
	}
	assert.Contains(t, content, "[network]")
	assert.Contains(t, content, "# timeout = \"15m\"")
}
