// Package cache keeps local copies of remote files.
//
// Ensure is the only primitive the rest of the program uses to obtain a
// file. It never trusts presence alone: a cached file with a known digest is
// re-hashed on every call and removed when it no longer matches, so the next
// download replaces it. Downloads land in a temporary sibling and are renamed
// into place, and concurrent calls for the same destination are serialized.
//
// Failures are per file. Ensure returns a coded error and the caller decides
// whether the failure matters; nothing here aborts a run.
package cache
