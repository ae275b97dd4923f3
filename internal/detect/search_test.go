package detect

import (
	"reflect"
	"testing"
)

func onesField(width, height int) [][]float64 {
	return buildField(width, height, func(x, y int) float64 { return 1 })
}

// TestSearchFullCoverage: a 20×20 all-ones field at threshold 0 with
// grid 10 and offset (0,0) yields one box per tile, 4 in total.
func TestSearchFullCoverage(t *testing.T) {
	c := NewCounter(onesField(20, 20), 0)

	boxes := Search(c, 10, 0, 0)

	want := []Box{
		{0, 0, 10, 10},
		{0, 10, 10, 20},
		{10, 0, 20, 10},
		{10, 10, 20, 20},
	}
	if !reflect.DeepEqual(boxes, want) {
		t.Errorf("boxes = %+v, want %+v", boxes, want)
	}
}

func TestSearchOccupancyThreshold(t *testing.T) {
	// Exactly half of each 4×4 tile above threshold: rows 0-1 hot,
	// rows 2-3 cold. Occupancy 8/16 = 0.5 meets the >= 0.5 cut.
	field := buildField(8, 4, func(x, y int) float64 {
		if y < 2 {
			return 10
		}
		return 0
	})
	c := NewCounter(field, 5)
	if got := len(Search(c, 4, 0, 0)); got != 2 {
		t.Errorf("tiles at exactly half occupancy: got %d boxes, want 2", got)
	}

	// One pixel below half misses the cut.
	field[1][0] = 0
	c = NewCounter(field, 5)
	boxes := Search(c, 4, 0, 0)
	if len(boxes) != 1 || boxes[0].X1 != 4 {
		t.Errorf("tile below half occupancy still emitted: %+v", boxes)
	}
}

func TestSearchOffsetClipsPartialTiles(t *testing.T) {
	// 25 wide, grid 10, offset 3: tiles start at x=3 and x=13; a tile
	// at x=23 would overhang and must not be tested.
	c := NewCounter(onesField(25, 13), 0)

	boxes := Search(c, 10, 3, 3)

	want := []Box{{3, 3, 13, 13}, {13, 3, 23, 13}}
	if !reflect.DeepEqual(boxes, want) {
		t.Errorf("boxes = %+v, want %+v", boxes, want)
	}
}

func TestSearchRestartable(t *testing.T) {
	c := NewCounter(gradientField(30, 30), 20)
	first := Search(c, 5, 2, 2)
	second := Search(c, 5, 2, 2)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Search with identical inputs differed")
	}
}

func TestSearchArgumentValidation(t *testing.T) {
	c := NewCounter(onesField(10, 10), 0)
	for _, bad := range []func(){
		func() { Search(c, 0, 0, 0) },
		func() { Search(c, 5, 5, 0) },
		func() { Search(c, 5, 0, -1) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("invalid Search arguments did not panic")
				}
			}()
			bad()
		}()
	}
}

func TestOffsetsSimplified(t *testing.T) {
	got := Offsets(10, 2, false)
	want := [][2]int{{0, 0}, {5, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Offsets(10, 2, simplified) = %v, want %v", got, want)
	}

	if got := Offsets(7, 1, false); !reflect.DeepEqual(got, [][2]int{{0, 0}}) {
		t.Errorf("Offsets(7, 1) = %v, want [[0 0]]", got)
	}
}

func TestOffsetsExhaustive(t *testing.T) {
	got := Offsets(9, 3, true)
	if len(got) != 9 {
		t.Fatalf("exhaustive offset count = %d, want 9", len(got))
	}
	want := [][2]int{
		{0, 0}, {0, 3}, {0, 6},
		{3, 0}, {3, 3}, {3, 6},
		{6, 0}, {6, 3}, {6, 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Offsets(9, 3, exhaustive) = %v, want %v", got, want)
	}
}
