// Package types defines the data model shared by the arcbuilder pipeline:
// catalog entries and their tag dictionaries, the curated core selection,
// the core to MRA grouping produced by tag resolution, and the filesystem
// and layout interfaces the cache and build layers depend on.
package types
