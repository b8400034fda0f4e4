package rasterops

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// splitBatchFactor oversplits relative to the worker count so slow
// ranges do not straggle behind fast ones.
const splitBatchFactor = 4

// drainParallel drains the cursor across worker goroutines. The cursor
// is recursively split into disjoint sub-ranges, each drained
// sequentially by one goroutine. The buffer is shared without locking;
// range disjointness guarantees no position is written twice.
func drainParallel(cur *Cursor, workers int, visit func(*PixelView)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || cur.EstimateSize() <= 1 {
		cur.ForEachRemaining(visit)
		return
	}

	pieces := splitCursor(cur, workers*splitBatchFactor)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, piece := range pieces {
		piece := piece
		g.Go(func() error {
			piece.ForEachRemaining(visit)
			return nil
		})
	}
	// Drains cannot fail; Wait only joins the workers.
	_ = g.Wait()
}

// splitCursor recursively halves the cursor until roughly target
// disjoint pieces exist or the pieces stop splitting.
func splitCursor(cur *Cursor, target int) []*Cursor {
	depth := 0
	for 1<<depth < target {
		depth++
	}
	return splitToDepth(cur, depth, make([]*Cursor, 0, 1<<depth))
}

func splitToDepth(cur *Cursor, depth int, out []*Cursor) []*Cursor {
	if depth == 0 {
		return append(out, cur)
	}
	prefix := cur.TrySplit()
	if prefix == nil {
		return append(out, cur)
	}
	out = splitToDepth(prefix, depth-1, out)
	return splitToDepth(cur, depth-1, out)
}
