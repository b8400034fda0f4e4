package rasterops

import (
	"errors"
	"fmt"
)

var (
	// ErrNilPixelFunc is returned when a filter is applied without a
	// transform function.
	ErrNilPixelFunc = errors.New("nil pixel function")

	// ErrUnsupportedComposition is returned when per-position access is
	// requested on a composition that cannot provide it.
	ErrUnsupportedComposition = errors.New("unsupported composition access")
)

// Options controls how a filter application traverses the buffer.
// A nil *Options means the whole buffer, sequentially.
type Options struct {
	// Region restricts the application to a sub-rectangle. Nil means
	// the whole buffer.
	Region *Region

	// Parallel enables multi-worker traversal over split cursor ranges.
	Parallel bool

	// Workers caps the number of worker goroutines when Parallel is
	// set. Zero or negative means GOMAXPROCS.
	Workers int
}

// Filter transforms a pixel buffer in place. A filter borrows the
// buffer for the duration of Apply and never retains it.
type Filter interface {
	Apply(buf *PixelBuffer, opts *Options) error
}

// PixelTransformer is the per-position accessor implemented by filters
// whose output at a position depends only on that position's input.
// Chains implement it too, but fail fast when they contain a
// neighborhood stage.
type PixelTransformer interface {
	TransformPixel(px *PixelView) error
}

// pointStage is the fusion hook: per-pixel filters hand the chain a
// plain visit function, with any table building done up front.
type pointStage interface {
	pointFn() (func(*PixelView), error)
}

// cursorFor builds the traversal cursor for one filter application.
func cursorFor(buf *PixelBuffer, opts *Options) (*Cursor, error) {
	if opts == nil || opts.Region == nil {
		return buf.Spliterate(), nil
	}
	return buf.SpliterateRegion(*opts.Region)
}

// drain runs visit over every position of the cursor, sequentially or
// across workers per opts.
func drain(cur *Cursor, opts *Options, visit func(*PixelView)) {
	if opts != nil && opts.Parallel {
		workers := 0
		if opts.Workers > 0 {
			workers = opts.Workers
		}
		drainParallel(cur, workers, visit)
		return
	}
	cur.ForEachRemaining(visit)
}

// PointFilter applies a transform function at every position
// independently. It is the general per-pixel filter; transforms that
// only need independent channel remapping should prefer LookupFilter.
type PointFilter struct {
	fn func(*PixelView)
}

// NewPointFilter creates a per-pixel filter from a transform function.
func NewPointFilter(fn func(*PixelView)) *PointFilter {
	return &PointFilter{fn: fn}
}

// Apply runs the transform at every position of the region.
func (f *PointFilter) Apply(buf *PixelBuffer, opts *Options) error {
	if f.fn == nil {
		return ErrNilPixelFunc
	}
	cur, err := cursorFor(buf, opts)
	if err != nil {
		return err
	}
	drain(cur, opts, f.fn)
	return nil
}

// TransformPixel runs the transform at a single position.
func (f *PointFilter) TransformPixel(px *PixelView) error {
	if f.fn == nil {
		return ErrNilPixelFunc
	}
	f.fn(px)
	return nil
}

func (f *PointFilter) pointFn() (func(*PixelView), error) {
	if f.fn == nil {
		return nil, ErrNilPixelFunc
	}
	return f.fn, nil
}

// GrayscaleFilter converts pixels to luminance using the BT.601 integer
// formula, preserving alpha. Luminance mixes all three channels, so this
// is a PointFilter rather than a LookupFilter.
func GrayscaleFilter() *PointFilter {
	return NewPointFilter(func(px *PixelView) {
		p := px.ARGB()
		lum := (299*int(RedOf(p)) + 587*int(GreenOf(p)) + 114*int(BlueOf(p)) + 500) / 1000
		if lum > 255 {
			lum = 255
		}
		v := uint8(lum)
		px.SetChannels(AlphaOf(p), v, v, v)
	})
}

// ChannelRotateFilter cycles the color channels: new red takes the old
// green, new green the old blue, new blue the old red. Alpha is
// unchanged. Applying it three times is the identity.
func ChannelRotateFilter() *PointFilter {
	return NewPointFilter(func(px *PixelView) {
		p := px.ARGB()
		px.SetChannels(AlphaOf(p), GreenOf(p), BlueOf(p), RedOf(p))
	})
}

// describeStage names a filter for error messages.
func describeStage(f Filter) string {
	switch f.(type) {
	case *AreaFilter:
		return "neighborhood filter"
	case *Chain:
		return "nested chain"
	default:
		return fmt.Sprintf("%T", f)
	}
}
