// Package filesystem provides filesystem implementations for arcbuilder.
//
// This package contains the implementation of the types.FS interface used by
// the cache store and the build orchestrator.
package filesystem
