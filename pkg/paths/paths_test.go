// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test cache and output layout resolution

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Layout(t *testing.T) {
	root := t.TempDir()
	p, err := New(filepath.Join(root, "cache"), filepath.Join(root, "out"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "cache"), p.CacheDir())
	assert.Equal(t, filepath.Join(root, "cache", "roms"), p.ROMDir())
	assert.Equal(t, filepath.Join(root, "cache", "mra"), p.MRADir())
	assert.Equal(t, filepath.Join(root, "cache", "bin"), p.BinDir())
	assert.Equal(t, filepath.Join(root, "out"), p.OutputDir())
}

func TestNew_Defaults(t *testing.T) {
	p, err := New("", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultCacheDir(), p.CacheDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, DefaultOutputDir), p.OutputDir())
}

func TestNew_RelativePathsBecomeAbsolute(t *testing.T) {
	p, err := New("cache", "out")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.CacheDir()))
	assert.True(t, filepath.IsAbs(p.OutputDir()))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"~", home},
		{"~/cache", filepath.Join(home, "cache")},
		{"~other/cache", "~other/cache"},
		{"/abs/cache", "/abs/cache"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), tt.in)
	}
}

func TestStateDir_RespectsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	assert.Equal(t, filepath.Join(dir, AppDirName), StateDir())
	assert.Equal(t, filepath.Join(dir, AppDirName, LogFileName), LogFilePath())
}
