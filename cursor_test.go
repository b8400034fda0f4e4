package rasterops

import "testing"

func TestCursorSequentialOrder(t *testing.T) {
	buf, _ := NewPixelBuffer(7, 5)
	cur := buf.Spliterate()

	var indices []int
	cur.ForEachRemaining(func(px *PixelView) {
		indices = append(indices, px.Index())
	})

	if len(indices) != 35 {
		t.Fatalf("Expected 35 positions, got %d", len(indices))
	}
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("Order violated at step %d: %d after %d", i, indices[i], indices[i-1])
		}
	}
}

func TestCursorRegionCoordinates(t *testing.T) {
	buf, _ := NewPixelBuffer(10, 10)
	region := Region{X: 2, Y: 3, Width: 4, Height: 2}
	cur, err := buf.SpliterateRegion(region)
	if err != nil {
		t.Fatalf("SpliterateRegion failed: %v", err)
	}

	count := 0
	cur.ForEachRemaining(func(px *PixelView) {
		if px.X() < 2 || px.X() >= 6 || px.Y() < 3 || px.Y() >= 5 {
			t.Errorf("Position (%d,%d) outside region", px.X(), px.Y())
		}
		if px.Index() != px.Y()*10+px.X() {
			t.Errorf("Index %d does not match (%d,%d)", px.Index(), px.X(), px.Y())
		}
		count++
	})
	if count != region.Size() {
		t.Errorf("Expected %d positions, got %d", region.Size(), count)
	}
}

func TestCursorTryAdvanceExhaustion(t *testing.T) {
	buf, _ := NewPixelBuffer(2, 2)
	cur := buf.Spliterate()

	steps := 0
	for cur.TryAdvance(func(px *PixelView) { steps++ }) {
	}
	if steps != 4 {
		t.Errorf("Expected 4 steps, got %d", steps)
	}
	if cur.TryAdvance(func(px *PixelView) {}) {
		t.Error("TryAdvance after exhaustion should return false")
	}
	if cur.EstimateSize() != 0 {
		t.Errorf("Exhausted cursor should report size 0, got %d", cur.EstimateSize())
	}
}

// splitFully recursively splits a cursor into leaves that cannot split
// further.
func splitFully(cur *Cursor) []*Cursor {
	var leaves []*Cursor
	stack := []*Cursor{cur}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if prefix := c.TrySplit(); prefix != nil {
			stack = append(stack, c, prefix)
		} else {
			leaves = append(leaves, c)
		}
	}
	return leaves
}

func TestCursorSplitConservation(t *testing.T) {
	cases := []Region{
		{Width: 0, Height: 0},
		{Width: 1, Height: 1},
		{Width: 3, Height: 1},
		{Width: 10, Height: 10},
		{X: 1, Y: 2, Width: 7, Height: 3},
	}

	for _, region := range cases {
		buf, _ := NewPixelBuffer(12, 8)
		cur, err := buf.SpliterateRegion(region)
		if err != nil {
			t.Fatalf("Region %+v: %v", region, err)
		}

		leaves := splitFully(cur)

		total := 0
		for _, leaf := range leaves {
			total += leaf.EstimateSize()
		}
		if total != region.Size() {
			t.Errorf("Region %+v: leaf sizes sum to %d, want %d", region, total, region.Size())
		}

		visits := make(map[int]int)
		for _, leaf := range leaves {
			leaf.ForEachRemaining(func(px *PixelView) {
				visits[px.Index()]++
			})
		}
		if len(visits) != region.Size() {
			t.Errorf("Region %+v: visited %d distinct positions, want %d", region, len(visits), region.Size())
		}
		for idx, n := range visits {
			if n != 1 {
				t.Errorf("Region %+v: position %d visited %d times", region, idx, n)
			}
		}
	}
}

func TestCursorSplitHalves(t *testing.T) {
	buf, _ := NewPixelBuffer(10, 1)
	cur := buf.Spliterate()

	prefix := cur.TrySplit()
	if prefix == nil {
		t.Fatal("TrySplit on size-10 cursor should succeed")
	}
	if prefix.EstimateSize() != 5 || cur.EstimateSize() != 5 {
		t.Errorf("Expected 5/5 split, got %d/%d", prefix.EstimateSize(), cur.EstimateSize())
	}

	// Prefix covers the earlier half.
	var first int
	prefix.TryAdvance(func(px *PixelView) { first = px.Index() })
	if first != 0 {
		t.Errorf("Prefix should start at index 0, got %d", first)
	}
	var retained int
	cur.TryAdvance(func(px *PixelView) { retained = px.Index() })
	if retained != 5 {
		t.Errorf("Retained half should start at index 5, got %d", retained)
	}
}

func TestCursorSplitBelowMinimum(t *testing.T) {
	buf, _ := NewPixelBuffer(1, 1)
	cur := buf.Spliterate()
	if cur.TrySplit() != nil {
		t.Error("Size-1 cursor should not split")
	}

	empty, _ := buf.SpliterateRegion(Region{Width: 0, Height: 0})
	if empty.TrySplit() != nil {
		t.Error("Empty cursor should not split")
	}
	if empty.TryAdvance(func(px *PixelView) {}) {
		t.Error("Empty cursor should not advance")
	}
}

func TestCursorSplitAfterPartialDrain(t *testing.T) {
	buf, _ := NewPixelBuffer(8, 1)
	cur := buf.Spliterate()

	// Consume three positions, then split the remainder.
	for i := 0; i < 3; i++ {
		cur.TryAdvance(func(px *PixelView) {})
	}
	prefix := cur.TrySplit()
	if prefix == nil {
		t.Fatal("Split of remaining range should succeed")
	}
	if got := prefix.EstimateSize() + cur.EstimateSize(); got != 5 {
		t.Errorf("Remaining positions after split sum to %d, want 5", got)
	}

	var first int
	prefix.TryAdvance(func(px *PixelView) { first = px.Index() })
	if first != 3 {
		t.Errorf("Split prefix should resume at index 3, got %d", first)
	}
}
