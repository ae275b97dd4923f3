package detect

import (
	"errors"
	"fmt"
)

// ErrTraceNotClosed reports a boundary walk that exceeded its step
// budget without returning to its first vertex. This indicates a
// raster whose outline the walk cannot return along, such as a narrow
// spur on a much wider body. Callers should skip the affected region's
// polygon rather than aborting the run.
var ErrTraceNotClosed = errors.New("boundary trace exceeded step budget without closing")

// ConsistencyError reports a spatial tree removal that reached a leaf
// not holding the region being removed. It signals a bug in the merge
// engine's own bookkeeping, never bad user input, and must be surfaced
// as a fatal internal error rather than swallowed.
type ConsistencyError struct {
	RegionID int
	Leaf     Box
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("detect: region %d missing from leaf (%d,%d)-(%d,%d) during removal",
		e.RegionID, e.Leaf.X1, e.Leaf.Y1, e.Leaf.X2, e.Leaf.Y2)
}
