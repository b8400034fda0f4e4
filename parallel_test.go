package rasterops

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestParallelMatchesSequentialPoint(t *testing.T) {
	parallel := CreateGradientBuffer(64, 48)
	sequential := parallel.Clone()

	f := NewChain(BrightnessFilter(12), ChannelRotateFilter())
	if err := f.Apply(parallel, &Options{Parallel: true}); err != nil {
		t.Fatalf("Parallel apply failed: %v", err)
	}
	if err := f.Apply(sequential, nil); err != nil {
		t.Fatalf("Sequential apply failed: %v", err)
	}

	if equal, idx := BuffersEqual(parallel, sequential); !equal {
		t.Errorf("Parallel result differs from sequential at index %d", idx)
	}
}

func TestParallelMatchesSequentialArea(t *testing.T) {
	parallel := CreateCheckerboardBuffer(64, 64, 8)
	sequential := parallel.Clone()

	mk := func() Filter { return NewConvolutionFilter(GaussianKernel5x5(), MirrorEdge, false) }
	if err := mk().Apply(parallel, &Options{Parallel: true, Workers: 8}); err != nil {
		t.Fatalf("Parallel apply failed: %v", err)
	}
	if err := mk().Apply(sequential, nil); err != nil {
		t.Fatalf("Sequential apply failed: %v", err)
	}

	if equal, idx := BuffersEqual(parallel, sequential); !equal {
		t.Errorf("Parallel result differs from sequential at index %d", idx)
	}
}

func TestParallelVisitsEachPositionOnce(t *testing.T) {
	buf, _ := NewPixelBuffer(37, 23) // awkward size to exercise uneven splits
	counts := make([]int32, 37*23)

	f := NewPointFilter(func(px *PixelView) {
		atomic.AddInt32(&counts[px.Index()], 1)
	})
	if err := f.Apply(buf, &Options{Parallel: true, Workers: 6}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for i, n := range counts {
		if n != 1 {
			t.Fatalf("Position %d visited %d times", i, n)
		}
	}
}

func TestConcurrentSplitDrain(t *testing.T) {
	// Splits must not share iteration state: drain already-split
	// cursors on separate goroutines while the parent keeps splitting.
	buf, _ := NewPixelBuffer(100, 100)
	counts := make([]int32, 100*100)

	cur := buf.Spliterate()
	var wg sync.WaitGroup
	visit := func(px *PixelView) {
		atomic.AddInt32(&counts[px.Index()], 1)
	}

	for i := 0; i < 7; i++ {
		piece := cur.TrySplit()
		if piece == nil {
			break
		}
		wg.Add(1)
		go func(c *Cursor) {
			defer wg.Done()
			c.ForEachRemaining(visit)
		}(piece)
	}
	cur.ForEachRemaining(visit)
	wg.Wait()

	for i, n := range counts {
		if n != 1 {
			t.Fatalf("Position %d visited %d times", i, n)
		}
	}
}

func TestParallelFloatCursorSplit(t *testing.T) {
	// ConvertingCursor splits feed parallel consumption the same way.
	buf := CreateSolidBuffer(32, 32, PackARGB(255, 100, 100, 100))
	fc := NewFloatCursor(buf.Spliterate())

	var pieces []*ConvertingCursor[*FloatPixel]
	for i := 0; i < 3; i++ {
		if piece := fc.TrySplit(); piece != nil {
			pieces = append(pieces, piece)
		}
	}
	pieces = append(pieces, fc)

	var wg sync.WaitGroup
	for _, piece := range pieces {
		wg.Add(1)
		go func(c *ConvertingCursor[*FloatPixel]) {
			defer wg.Done()
			c.ForEachRemaining(func(f *FloatPixel) {
				f.R = 0.5
			})
		}(piece)
	}
	wg.Wait()

	for i, p := range buf.Pix() {
		if RedOf(p) != 128 {
			t.Fatalf("Pixel %d: expected red 128, got %d", i, RedOf(p))
		}
	}
}

func TestSplitCursorPieceCount(t *testing.T) {
	buf, _ := NewPixelBuffer(16, 16)
	pieces := splitCursor(buf.Spliterate(), 8)

	if len(pieces) != 8 {
		t.Errorf("Expected 8 pieces for an evenly divisible range, got %d", len(pieces))
	}
	total := 0
	for _, p := range pieces {
		total += p.EstimateSize()
	}
	if total != 256 {
		t.Errorf("Pieces cover %d positions, want 256", total)
	}
}
