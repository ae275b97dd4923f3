package detect

import "fmt"

// Engine consolidates a stream of candidate boxes into merged regions.
//
// For each box the engine either merges it into the single surviving
// union of every existing region it overlaps, or seeds a new region.
// At all times the live regions partition the boxes processed so far:
// every box belongs to exactly one region. Region IDs are assigned from
// a counter owned by the engine, so independent runs are isolated.
//
// Engine is single-writer; the merge phase is inherently sequential and
// must not be parallelized.
type Engine struct {
	tree   *Tree
	factor float64
	nextID int
}

// NewEngine creates a merge engine for an image of the given pixel
// dimensions. factor is the minimum fractional overlap (see Overlaps)
// for a box to join an existing region.
func NewEngine(width, height int, factor float64) *Engine {
	return &Engine{
		tree:   NewTree(width, height),
		factor: factor,
	}
}

// Add feeds one candidate box into the engine.
//
// If no existing region overlaps the box, a new singleton region is
// created. Otherwise the first match becomes primary: the primary is
// pulled from the tree while its bounding box is still current, the box
// and every other match are absorbed into it, and it is re-inserted to
// cover the leaves its grown bounding box now touches. Absorbed regions
// are removed from the tree and never referenced again.
//
// The only possible error is a *ConsistencyError from the tree, which
// is fatal.
func (e *Engine) Add(b Box) error {
	found := e.tree.Query(b, e.factor)
	if len(found) == 0 {
		r := newRegion(e.nextID, b)
		e.nextID++
		e.tree.Insert(r)
		return nil
	}

	// Removal descends by the region's bounding box, so the primary
	// must leave the tree before Append widens its bounds.
	primary := found[0]
	if err := e.tree.Remove(primary); err != nil {
		return err
	}
	primary.Append(b)
	for _, other := range found[1:] {
		if err := e.tree.Remove(other); err != nil {
			return err
		}
		primary.Union(other)
	}
	e.tree.Insert(primary)
	return nil
}

// Regions returns the current set of live regions, ID-ascending.
func (e *Engine) Regions() []*Region {
	return e.tree.All()
}

// Merge consolidates boxes into merged regions on a width×height
// canvas, preserving the order boxes are given in. Callers should order
// boxes smallest grid size first: merge outcomes near detection
// thresholds depend on small compact detections seeding regions before
// larger overlapping tiles arrive.
func Merge(boxes []Box, width, height int, overlapFactor float64) ([]*Region, error) {
	e := NewEngine(width, height, overlapFactor)
	for i, b := range boxes {
		if err := e.Add(b); err != nil {
			return nil, fmt.Errorf("merging box %d of %d: %w", i+1, len(boxes), err)
		}
	}
	return e.Regions(), nil
}
