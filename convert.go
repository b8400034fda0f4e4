package rasterops

import "math"

// ConvertingCursor adapts a Cursor so that callers iterate in an
// alternate per-element representation T, such as normalized float
// channels, while mutations still write through to the buffer.
//
// The cursor holds exactly one T instance, created once at construction
// and reused on every step: each step absorbs the current PixelView into
// it, hands it to the visitor, then commits it back into the view. A
// split-off cursor gets its own T, so parallel drains never share one.
// Callers must not retain the T across steps.
type ConvertingCursor[T any] struct {
	inner  *Cursor
	elem   T
	create func() T
	absorb func(*PixelView, T)
	commit func(T, *PixelView)
}

// NewConvertingCursor builds an adapter from a cursor, a zero-argument
// constructor for T, an absorb function filling a T from a PixelView,
// and a commit function writing a T back into a PixelView.
func NewConvertingCursor[T any](
	inner *Cursor,
	create func() T,
	absorb func(*PixelView, T),
	commit func(T, *PixelView),
) *ConvertingCursor[T] {
	return &ConvertingCursor[T]{
		inner:  inner,
		elem:   create(),
		create: create,
		absorb: absorb,
		commit: commit,
	}
}

// TryAdvance consumes one position: absorb, visit, commit. It reports
// whether a position was available.
func (c *ConvertingCursor[T]) TryAdvance(visit func(T)) bool {
	return c.inner.TryAdvance(func(px *PixelView) {
		c.absorb(px, c.elem)
		visit(c.elem)
		c.commit(c.elem, px)
	})
}

// ForEachRemaining drains all remaining positions in ascending
// linear-index order, converting on every step.
func (c *ConvertingCursor[T]) ForEachRemaining(visit func(T)) {
	c.inner.ForEachRemaining(func(px *PixelView) {
		c.absorb(px, c.elem)
		visit(c.elem)
		c.commit(c.elem, px)
	})
}

// TrySplit splits the underlying cursor and, on success, wraps the
// earlier half in a new ConvertingCursor with the same conversion triple
// and a fresh T instance. It returns nil when the underlying cursor
// cannot split.
func (c *ConvertingCursor[T]) TrySplit() *ConvertingCursor[T] {
	split := c.inner.TrySplit()
	if split == nil {
		return nil
	}
	return &ConvertingCursor[T]{
		inner:  split,
		elem:   c.create(),
		create: c.create,
		absorb: c.absorb,
		commit: c.commit,
	}
}

// EstimateSize delegates to the underlying cursor's exact remaining
// count.
func (c *ConvertingCursor[T]) EstimateSize() int {
	return c.inner.EstimateSize()
}

// FloatPixel is a converted pixel representation with channels
// normalized to [0, 1]. Coordinate queries delegate to the PixelView
// the values were absorbed from.
type FloatPixel struct {
	A, R, G, B float64

	view *PixelView
}

// X returns the column of the pixel this value was absorbed from.
func (f *FloatPixel) X() int {
	return f.view.X()
}

// Y returns the row of the pixel this value was absorbed from.
func (f *FloatPixel) Y() int {
	return f.view.Y()
}

// Index returns the linear index of the pixel this value was absorbed
// from.
func (f *FloatPixel) Index() int {
	return f.view.Index()
}

func absorbFloatPixel(px *PixelView, f *FloatPixel) {
	p := px.ARGB()
	f.A = float64(AlphaOf(p)) / 255
	f.R = float64(RedOf(p)) / 255
	f.G = float64(GreenOf(p)) / 255
	f.B = float64(BlueOf(p)) / 255
	f.view = px
}

func commitFloatPixel(f *FloatPixel, px *PixelView) {
	px.SetChannels(
		floatToChannel(f.A),
		floatToChannel(f.R),
		floatToChannel(f.G),
		floatToChannel(f.B),
	)
}

// floatToChannel maps a normalized channel back to 8 bits, clamping to
// [0, 1] first so visitor arithmetic cannot overflow the byte.
func floatToChannel(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 255))
}

// NewFloatCursor wraps a cursor so visitors see FloatPixel elements with
// normalized channels. In-place mutation of the element's channels is
// written back to the buffer after each visit.
func NewFloatCursor(inner *Cursor) *ConvertingCursor[*FloatPixel] {
	return NewConvertingCursor(
		inner,
		func() *FloatPixel { return &FloatPixel{} },
		absorbFloatPixel,
		commitFloatPixel,
	)
}
