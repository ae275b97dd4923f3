// Package detect implements the multi-scale detection and merging engine.
//
// The engine finds regions of interest ("sources") in a noise-dominated
// 2D intensity field by tiling the field at several grid sizes, keeping
// every tile whose above-threshold pixel occupancy reaches one half, and
// consolidating the resulting candidate boxes across all scales into
// disjoint merged regions. Each region can then be traced into a closed
// polygon outline for annotation.
//
// # Coordinate System
//
// All coordinates are 0-based pixel coordinates with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward.
// Rectangles are half-open: a Box covers [X1,X2) × [Y1,Y2).
//
// # Pipeline
//
//  1. NewCounter builds a prefix-sum table over the thresholded field,
//     answering rectangle population counts in O(1).
//  2. Search scans one grid size at one tiling offset and emits
//     candidate boxes. Offsets produces the offset schedule for a grid.
//  3. Merge consumes the full candidate stream (smallest grid first)
//     and groups overlapping boxes into Regions using a spatial tree.
//  4. Trace walks a finished Region's perimeter into a closed polygon.
//
// # Merge Semantics
//
// Two rectangles count as overlapping only when a corner of one lies
// within the other and the shared area covers at least the requested
// fraction of the corner-owning rectangle. Rectangles crossing in a
// "plus" configuration, with no corner of either inside the other, are
// NOT detected as overlapping. This is a deliberate property of the
// merge behaviour that downstream results depend on; see Overlaps.
//
// Candidate ordering matters across scales: small compact detections
// should seed regions before larger overlapping tiles swallow them, so
// callers must feed boxes smallest grid size first. Within one grid
// size the outcome is independent of ordering.
//
// # Error Handling
//
// Geometry violations (inverted boxes, counter queries outside the
// table) are programming errors and panic rather than returning errors.
// A spatial tree removal for a region absent from an expected leaf
// surfaces as a *ConsistencyError, which signals a bug in the engine's
// own bookkeeping and is fatal. A boundary walk that fails to close
// within its step budget returns ErrTraceNotClosed; callers should skip
// that region's polygon and continue.
//
// # Concurrency
//
// A Counter is immutable after construction and safe to share between
// goroutines. Search is a pure function of its inputs. Merge and the
// types it owns (Region, Tree, Engine) are single-writer and must not
// be used concurrently.
package detect
