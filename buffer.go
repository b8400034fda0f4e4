// Package rasterops provides an in-memory raster image model with a
// composable filter pipeline over packed 32-bit ARGB pixels. Buffers can
// be iterated sequentially or split recursively for parallel processing
// without copying the underlying pixel data.
package rasterops

import (
	"errors"
	"fmt"
)

var (
	// ErrPixLengthMismatch is returned when a supplied pixel slice does
	// not contain exactly width*height entries.
	ErrPixLengthMismatch = errors.New("pixel slice length does not match width*height")

	// ErrRegionOutOfBounds is returned when a requested region does not
	// lie entirely within the buffer.
	ErrRegionOutOfBounds = errors.New("region exceeds buffer bounds")

	// ErrDimensionMismatch is returned when two buffers that must share
	// dimensions do not.
	ErrDimensionMismatch = errors.New("buffer dimensions do not match")
)

// Packed pixels use the 0xAARRGGBB layout: alpha in the top byte, then
// red, green, and blue.

// PackARGB combines four 8-bit channels into one packed pixel value.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// AlphaOf extracts the alpha channel from a packed pixel value.
func AlphaOf(p uint32) uint8 {
	return uint8(p >> 24)
}

// RedOf extracts the red channel from a packed pixel value.
func RedOf(p uint32) uint8 {
	return uint8(p >> 16)
}

// GreenOf extracts the green channel from a packed pixel value.
func GreenOf(p uint32) uint8 {
	return uint8(p >> 8)
}

// BlueOf extracts the blue channel from a packed pixel value.
func BlueOf(p uint32) uint8 {
	return uint8(p)
}

// Region describes a rectangle within a buffer, in pixel coordinates.
type Region struct {
	X, Y          int
	Width, Height int
}

// Size returns the number of pixels covered by the region.
func (r Region) Size() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// PixelBuffer owns a contiguous array of width*height packed ARGB values
// in row-major order. Filters borrow the buffer for the duration of an
// application and never retain it.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint32
}

// NewPixelBuffer creates a zeroed buffer with the given dimensions.
// Negative dimensions are a configuration error.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", width, height, ErrPixLengthMismatch)
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}, nil
}

// NewPixelBufferFromPix creates a buffer backed by an existing packed
// pixel slice. The slice must contain exactly width*height entries; the
// buffer takes ownership and writes through to it.
func NewPixelBufferFromPix(width, height int, pix []uint32) (*PixelBuffer, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%d pixels for %dx%d buffer: %w", len(pix), width, height, ErrPixLengthMismatch)
	}
	return &PixelBuffer{width: width, height: height, pix: pix}, nil
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Pix returns the raw packed pixel slice for codec and display
// collaborators. Mutations write through to the buffer.
func (b *PixelBuffer) Pix() []uint32 {
	return b.pix
}

// Bounds returns the region covering the whole buffer.
func (b *PixelBuffer) Bounds() Region {
	return Region{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// Index returns the linear index of (x, y). Indices are row-major:
// index = y*width + x.
func (b *PixelBuffer) Index(x, y int) int {
	return y*b.width + x
}

// At returns the packed pixel value at (x, y).
func (b *PixelBuffer) At(x, y int) uint32 {
	return b.pix[y*b.width+x]
}

// Set stores a packed pixel value at (x, y).
func (b *PixelBuffer) Set(x, y int, p uint32) {
	b.pix[y*b.width+x] = p
}

// Fill sets every pixel in the buffer to the given packed value.
func (b *PixelBuffer) Fill(p uint32) {
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Clone creates a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint32, len(b.pix))
	copy(pix, b.pix)
	return &PixelBuffer{width: b.width, height: b.height, pix: pix}
}

// CopyFrom overwrites the buffer's contents with those of src. The two
// buffers must have identical dimensions. This is the snapshot fill used
// by neighborhood filters; it completes before any traversal begins.
func (b *PixelBuffer) CopyFrom(src *PixelBuffer) error {
	if b.width != src.width || b.height != src.height {
		return fmt.Errorf("%dx%d into %dx%d: %w", src.width, src.height, b.width, b.height, ErrDimensionMismatch)
	}
	copy(b.pix, src.pix)
	return nil
}

// checkRegion verifies that the region lies within the buffer.
func (b *PixelBuffer) checkRegion(r Region) error {
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 ||
		r.X+r.Width > b.width || r.Y+r.Height > b.height {
		return fmt.Errorf("region (%d,%d %dx%d) in %dx%d buffer: %w",
			r.X, r.Y, r.Width, r.Height, b.width, b.height, ErrRegionOutOfBounds)
	}
	return nil
}

// Spliterate returns a cursor over every pixel in the buffer.
func (b *PixelBuffer) Spliterate() *Cursor {
	return newCursor(b, b.Bounds())
}

// SpliterateRegion returns a cursor over the given rectangle, which must
// lie entirely within the buffer.
func (b *PixelBuffer) SpliterateRegion(r Region) (*Cursor, error) {
	if err := b.checkRegion(r); err != nil {
		return nil, err
	}
	return newCursor(b, r), nil
}
