package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
)

// tomlConfig mirrors Config with durations as strings so the output can be
// read back by Load.
type tomlConfig struct {
	Paths   Paths `toml:"paths"`
	Network struct {
		Timeout            string `toml:"timeout"`
		InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
		UserAgent          string `toml:"user_agent"`
		MaxRetries         int    `toml:"max_retries"`
		BaseDelay          string `toml:"base_delay"`
		BreakerThreshold   int64  `toml:"breaker_threshold"`
	} `toml:"network"`
	Sources Sources `toml:"sources"`
	Tool    struct {
		Path        string `toml:"path"`
		BaseURL     string `toml:"base_url"`
		SettleDelay string `toml:"settle_delay"`
	} `toml:"tool"`
	Hash    Hash    `toml:"hash"`
	Metrics Metrics `toml:"metrics"`
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) (string, error) {
	var out tomlConfig
	out.Paths = cfg.Paths
	out.Network.Timeout = cfg.Network.Timeout.String()
	out.Network.InsecureSkipVerify = cfg.Network.InsecureSkipVerify
	out.Network.UserAgent = cfg.Network.UserAgent
	out.Network.MaxRetries = cfg.Network.MaxRetries
	out.Network.BaseDelay = cfg.Network.BaseDelay.String()
	out.Network.BreakerThreshold = cfg.Network.BreakerThreshold
	out.Sources = cfg.Sources
	out.Tool.Path = cfg.Tool.Path
	out.Tool.BaseURL = cfg.Tool.BaseURL
	out.Tool.SettleDelay = cfg.Tool.SettleDelay.String()
	out.Hash = cfg.Hash
	out.Metrics = cfg.Metrics

	data, err := toml.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

// DefaultsContent returns the embedded defaults file.
func DefaultsContent() string {
	return string(defaultConfig)
}

// GenerateConfigContent returns the defaults with every value commented
// out, suitable as a starting config file.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues comments out every assignment line, keeping
// blank lines, comments and section headers.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
