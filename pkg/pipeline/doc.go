// Package pipeline runs arcbuilder end to end: it loads the arcade, MRA and
// cores datasets, narrows the cores selection, caches the ROM archives and
// MRA files the selection needs and finally drives the build backend.
//
// Only dataset loading can fail a run. Every per-file and per-build problem
// is carried in the returned result so a run always completes.
package pipeline
