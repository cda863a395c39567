// Package testutil provides utilities for testing arcbuilder components.
//
// Key components:
//   - FileServer: an httptest server serving an in-memory file map and
//     recording what was requested
//   - ZipBytes: builds ZIP archives in memory for catalog fixtures
//   - MD5Hex: the digest format catalogs publish
//
// Usage guidelines:
//   - Tests use the real filesystem under t.TempDir()
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
