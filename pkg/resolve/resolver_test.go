// pkg/resolve/resolver_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test caching passes and cache audits against a fake store

package resolve

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/arcbuilder/pkg/cache"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/style"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

type fakeStore struct {
	mu       sync.Mutex
	requests []cache.Request
	fail     map[string]bool
	verify   map[string]bool
}

func (f *fakeStore) Ensure(_ context.Context, req cache.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.fail[req.Name] {
		return errors.Newf(errors.ErrDownload, "failed to download %s", req.Name)
	}
	return nil
}

func (f *fakeStore) Verify(path, _ string, _ int64) (bool, error) {
	return f.verify[filepath.Base(path)], nil
}

func TestCacheROMs(t *testing.T) {
	store := &fakeStore{fail: map[string]bool{"bad.zip": true}}
	var out bytes.Buffer
	r := New(Options{Store: store, Console: style.Plain(&out)})

	entries := []types.CatalogEntry{
		{Path: "mame/good.zip", Hash: "h1", Size: 10, URL: "https://a/good.zip"},
		{Path: "mame/bad.zip", Hash: "h2", Size: 20, URL: "https://a/bad.zip"},
		{Path: "mame/last.zip", URL: "https://a/last.zip"},
	}

	report := r.CacheROMs(context.Background(), entries, "/cache/roms", true)

	assert.Equal(t, []string{"good.zip", "last.zip"}, report.Ensured)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "bad.zip", report.Failed[0].Name)
	assert.Equal(t, "bad.zip Bad file!\n", out.String())

	require.Len(t, store.requests, 3)
	assert.Equal(t, cache.Request{
		Dir: "/cache/roms", Name: "good.zip", Hash: "h1", Size: 10, URL: "https://a/good.zip", Force: true,
	}, store.requests[0])
}

func TestCacheMRAs_BuildsURLFromTemplate(t *testing.T) {
	store := &fakeStore{}
	r := New(Options{
		Store:       store,
		MRAFilesURL: "https://raw.githubusercontent.com/jotego/jtbin/{ref}/mra/{name}",
		Console:     style.Discard(),
	})

	entries := []types.CatalogEntry{{Path: "mra/Final Fight (World).mra", Hash: "h", Size: 5}}

	r.CacheMRAs(context.Background(), entries, "/cache/mra", "abc", false)
	r.CacheMRAs(context.Background(), entries, "/cache/mra", "", false)

	require.Len(t, store.requests, 2)
	assert.Equal(t, "https://raw.githubusercontent.com/jotego/jtbin/abc/mra/Final Fight (World).mra", store.requests[0].URL)
	assert.Equal(t, "https://raw.githubusercontent.com/jotego/jtbin/master/mra/Final Fight (World).mra", store.requests[1].URL)
	assert.Equal(t, "h", store.requests[0].Hash)
}

func TestCache_CancelledContextFailsRemaining(t *testing.T) {
	store := &fakeStore{}
	r := New(Options{Store: store, Console: style.Discard()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := r.CacheROMs(ctx, []types.CatalogEntry{{Path: "a.zip"}, {Path: "b.zip"}}, "/d", false)
	assert.Empty(t, store.requests)
	assert.Len(t, report.Failed, 2)
}

func TestAudit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"good.zip", "bad.zip", "nohash.zip"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	store := &fakeStore{verify: map[string]bool{"good.zip": true}}
	r := New(Options{Store: store, Console: style.Discard()})

	checks := r.Audit([]types.CatalogEntry{
		{Path: "good.zip", Hash: "h"},
		{Path: "bad.zip", Hash: "h"},
		{Path: "nohash.zip"},
		{Path: "absent.zip", Hash: "h"},
	}, dir)

	states := make(map[string]CheckState)
	for _, c := range checks {
		states[c.Name] = c.State
	}
	assert.Equal(t, map[string]CheckState{
		"good.zip":   CheckOK,
		"bad.zip":    CheckCorrupt,
		"nohash.zip": CheckUnverified,
		"absent.zip": CheckMissing,
	}, states)
	assert.Empty(t, store.requests, "audits never download")
}
