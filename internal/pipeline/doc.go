// Package pipeline orchestrates a full detection run: background
// estimation, multi-scale tile search, cross-scale merging, boundary
// tracing and per-source measurement.
//
// The search phase is embarrassingly parallel: every (grid size,
// offset) pair reads the same immutable threshold counter and writes
// only its own result slot, so it fans out across a worker pool and the
// slots are concatenated in a fixed order (grid sizes ascending, then
// offset order) before merging. A run with Workers == 1 produces
// byte-for-byte the same candidate boxes as a parallel run.
//
// The merge phase is inherently sequential and always runs on a single
// goroutine after all search results are collected.
package pipeline
