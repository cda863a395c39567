// Package build turns resolved MRA groups into ARC files.
//
// Plan is pure: it maps every tag key group to build steps. A group with a
// single MRA builds it once at the output root under the core's name and
// once more under the tool's own naming. A group with several MRAs picks one
// primary (the first file starting with the core's default_mra, or the first
// file when none is configured) for the root, and builds every file into a
// per-core subdirectory named after the core id without "jt", upper-cased.
//
// The Orchestrator executes steps against a Backend, one at a time, and
// isolates every failure to its step.
package build
