// pkg/internal/hashutil/checksum_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test digest computation over readers and files

package hashutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_KnownDigests(t *testing.T) {
	tests := []struct {
		algo Algorithm
		want string
	}{
		{algo: MD5, want: "5d41402abc4b2a76b9719d911017c592"},
		{algo: SHA1, want: "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{algo: SHA256, want: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			got, n, err := Checksum(strings.NewReader("hello"), tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(5), n)
		})
	}
}

func TestCalculateFileChecksum_Deterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1942.zip")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
	fsys := filesystem.NewOS()

	first, size, err := CalculateFileChecksum(fsys, path, MD5)
	require.NoError(t, err)
	second, _, err := CalculateFileChecksum(fsys, path, MD5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(5), size)
}

func TestCalculateFileChecksum_Missing(t *testing.T) {
	_, _, err := CalculateFileChecksum(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"), MD5)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	for name, want := range map[string]Algorithm{"": MD5, "MD5": MD5, "sha1": SHA1, " sha256 ": SHA256} {
		got, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}

	_, err := Parse("crc32")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("ABCDEF", "abcdef"))
	assert.False(t, Equal("abc", "abd"))
}
