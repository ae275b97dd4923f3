package detect

import "sort"

// leafSizeLimit is the partition extent, in pixels, below which the
// spatial tree stops splitting. Bounding the leaf size caps the number
// of regions any query must scan per leaf, giving near-linear total
// merge cost for spatially local detections.
const leafSizeLimit = 250

// treeNode is one arena slot. Leaves have left == -1 and a non-nil
// membership map keyed by region ID; internal nodes have exactly two
// children whose bounds tile the parent.
type treeNode struct {
	bounds  Box
	left    int
	right   int
	members map[int]*Region
}

// Tree is a static recursive spatial partition of the image extent,
// holding the current set of live regions.
//
// The partition structure is fixed at construction: a node whose longer
// axis exceeds leafSizeLimit splits at that axis's midpoint into two
// children, otherwise it is a leaf regardless of aspect ratio. Only
// membership changes afterwards. A region lives in every leaf whose
// bounds overlap its bounding box, so it may appear in several leaves;
// query results are deduplicated by region ID.
//
// Nodes are stored in a flat arena with child indices rather than as a
// pointer-linked recursive structure, and all operations descend with
// an explicit stack.
type Tree struct {
	nodes []treeNode
}

// NewTree builds the partition structure for an image of the given
// pixel dimensions. Both dimensions must be positive.
func NewTree(width, height int) *Tree {
	root := NewBox(0, 0, width, height)

	// Nodes are laid out in breadth-first order; appending children
	// while sweeping the slice builds the whole arena in one pass.
	nodes := []treeNode{{bounds: root, left: -1, right: -1}}
	for i := 0; i < len(nodes); i++ {
		b := nodes[i].bounds
		w, h := b.Width(), b.Height()

		var lb, rb Box
		switch {
		case w >= h && w > leafSizeLimit:
			mid := b.X1 + w/2
			lb = Box{X1: b.X1, Y1: b.Y1, X2: mid, Y2: b.Y2}
			rb = Box{X1: mid, Y1: b.Y1, X2: b.X2, Y2: b.Y2}
		case h >= w && h > leafSizeLimit:
			mid := b.Y1 + h/2
			lb = Box{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: mid}
			rb = Box{X1: b.X1, Y1: mid, X2: b.X2, Y2: b.Y2}
		default:
			nodes[i].members = make(map[int]*Region)
			continue
		}

		nodes[i].left = len(nodes)
		nodes = append(nodes, treeNode{bounds: lb, left: -1, right: -1})
		nodes[i].right = len(nodes)
		nodes = append(nodes, treeNode{bounds: rb, left: -1, right: -1})
	}

	return &Tree{nodes: nodes}
}

// leavesTouching returns the arena indices of every leaf whose bounds
// overlap b at overlap factor 0, pruning subtrees that cannot match.
func (t *Tree) leavesTouching(b Box) []int {
	var leaves []int
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[i]
		if !Overlaps(n.bounds, b, 0) {
			continue
		}
		if n.left < 0 {
			leaves = append(leaves, i)
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return leaves
}

// Insert adds a region to every leaf whose bounds overlap its bounding
// box.
func (t *Tree) Insert(r *Region) {
	for _, i := range t.leavesTouching(r.Bounds) {
		t.nodes[i].members[r.ID] = r
	}
}

// Remove deletes a region from every leaf its bounding box overlaps.
//
// Removal mirrors Insert exactly, so a leaf reached by the descent that
// does not hold the region indicates corrupted engine bookkeeping; that
// case returns a *ConsistencyError and must be treated as fatal.
func (t *Tree) Remove(r *Region) error {
	for _, i := range t.leavesTouching(r.Bounds) {
		n := &t.nodes[i]
		if _, ok := n.members[r.ID]; !ok {
			return &ConsistencyError{RegionID: r.ID, Leaf: n.bounds}
		}
		delete(n.members, r.ID)
	}
	return nil
}

// Query returns every live region overlapping b by at least factor,
// deduplicated by region ID and ordered ID-ascending so results are
// reproducible across runs.
func (t *Tree) Query(b Box, factor float64) []*Region {
	found := make(map[int]*Region)
	for _, i := range t.leavesTouching(b) {
		for id, r := range t.nodes[i].members {
			if _, ok := found[id]; ok {
				continue
			}
			if r.Overlaps(b, factor) {
				found[id] = r
			}
		}
	}
	return sortByID(found)
}

// All returns every live region in the tree, ordered ID-ascending.
func (t *Tree) All() []*Region {
	found := make(map[int]*Region)
	for i := range t.nodes {
		for id, r := range t.nodes[i].members {
			found[id] = r
		}
	}
	return sortByID(found)
}

func sortByID(m map[int]*Region) []*Region {
	regions := make([]*Region, 0, len(m))
	for _, r := range m {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].ID < regions[j].ID
	})
	return regions
}
