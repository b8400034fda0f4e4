package rasterops

// Cursor is a divisible iteration range over a rectangular region of a
// pixel buffer. A cursor visits positions in ascending linear-index
// order, reports its remaining size exactly, and can recursively halve
// itself into disjoint sub-ranges for concurrent consumption.
//
// Splitting hands the earlier half of the remaining range to a new
// cursor and keeps the later half. After a split the two cursors share
// no iteration state, so already-split cursors may be drained on other
// goroutines while further splits happen. The pixel buffer itself is
// shared; disjointness of the ranges is what makes concurrent draining
// safe.
type Cursor struct {
	buf    *PixelBuffer
	region Region

	// next and fence delimit the remaining range [next, fence) in the
	// region's own row-major position space.
	next  int
	fence int

	// view is repositioned on every step and passed to visitors. One
	// view per cursor keeps traversal allocation-free; visitors must
	// not retain it across steps.
	view PixelView
}

func newCursor(buf *PixelBuffer, region Region) *Cursor {
	c := &Cursor{
		buf:    buf,
		region: region,
		next:   0,
		fence:  region.Size(),
	}
	c.view.buf = buf
	return c
}

// position maps a region-local position to buffer coordinates.
func (c *Cursor) position(p int) (x, y int) {
	return c.region.X + p%c.region.Width, c.region.Y + p/c.region.Width
}

// TryAdvance consumes exactly one remaining position, invoking visit
// with the cursor's view positioned there. It reports whether a
// position was available.
func (c *Cursor) TryAdvance(visit func(*PixelView)) bool {
	if c.next >= c.fence {
		return false
	}
	c.view.moveTo(c.position(c.next))
	c.next++
	visit(&c.view)
	return true
}

// ForEachRemaining drains all remaining positions in ascending
// linear-index order, invoking visit at each one.
func (c *Cursor) ForEachRemaining(visit func(*PixelView)) {
	for p := c.next; p < c.fence; p++ {
		c.view.moveTo(c.position(p))
		visit(&c.view)
	}
	c.next = c.fence
}

// TrySplit partitions the remaining range into two disjoint halves,
// returning a new cursor over the earlier half and retaining the later
// half. It returns nil when fewer than two positions remain.
func (c *Cursor) TrySplit() *Cursor {
	remaining := c.fence - c.next
	if remaining <= 1 {
		return nil
	}
	mid := c.next + remaining/2
	prefix := &Cursor{
		buf:    c.buf,
		region: c.region,
		next:   c.next,
		fence:  mid,
	}
	prefix.view.buf = c.buf
	c.next = mid
	return prefix
}

// EstimateSize returns the exact count of remaining positions. The
// traversal is size-known, not merely estimated, and stays so after
// every split.
func (c *Cursor) EstimateSize() int {
	return c.fence - c.next
}
