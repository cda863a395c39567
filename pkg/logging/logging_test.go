// pkg/logging/logging_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test logger setup, level mapping and helper functions

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{verbosity: -1, want: zerolog.WarnLevel},
		{verbosity: 0, want: zerolog.WarnLevel},
		{verbosity: 1, want: zerolog.InfoLevel},
		{verbosity: 2, want: zerolog.DebugLevel},
		{verbosity: 3, want: zerolog.TraceLevel},
		{verbosity: 7, want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetup_WritesConsoleAndFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "state", "arcbuilder.log")
	previous := log.Logger
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var console bytes.Buffer
	require.NoError(t, Setup(Options{Verbosity: 1, File: logFile, Console: &console}))
	log.Info().Msg("caching roms")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Contains(t, console.String(), "caching roms")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"caching roms"`)
}

func TestSetup_UnwritableFileKeepsConsole(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	previous := log.Logger
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var console bytes.Buffer
	err := Setup(Options{File: filepath.Join(blocker, "arcbuilder.log"), Console: &console})
	require.Error(t, err)

	log.Warn().Msg("still here")
	assert.Contains(t, console.String(), "still here")
}

func TestGetLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	logger := GetLogger("cache")
	logger.Warn().Msg("wrong hash")

	assert.Contains(t, buf.String(), `"component":"cache"`)
	assert.Contains(t, buf.String(), "wrong hash")
}

func TestOrDefault(t *testing.T) {
	var buf bytes.Buffer
	explicit := zerolog.New(&buf)

	got := OrDefault(&explicit, "ignored")
	got.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")

	var fallbackBuf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&fallbackBuf)
	t.Cleanup(func() { log.Logger = previous })

	fallback := OrDefault(nil, "build")
	fallback.Info().Msg("from fallback")
	assert.Contains(t, fallbackBuf.String(), `"component":"build"`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = previous })

	LogCommand("mra", []string{"-A", "-z", "roms"})

	output := buf.String()
	assert.Contains(t, output, "mra")
	assert.Contains(t, output, "-z")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "load-arcade-db")
	done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Operation started")
	assert.Contains(t, lines[1], "duration")
}
