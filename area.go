package rasterops

import "math"

// SampleFunc computes and writes one output pixel. It may read any
// position of the snapshot, resolving out-of-range coordinates through
// the filter's boundary policy, and writes its result through out.
//
// The function must never read the live target buffer: the target is
// being overwritten during the traversal, so reading it would make the
// result depend on traversal order. Reading only the snapshot removes
// that bug class by construction.
type SampleFunc func(out *PixelView, snapshot *PixelBuffer)

// AreaFilter is a neighborhood filter: output at a position depends on
// a region of input positions. Apply copies the target into a frozen
// snapshot first, then traverses the live target invoking the sample
// function with read access to the snapshot only.
type AreaFilter struct {
	// Edge resolves out-of-range snapshot reads.
	Edge Boundary

	sample SampleFunc

	// snapshot is reused across applications to the same dimensions.
	// It is read-only during a traversal, so split cursor ranges share
	// it without synchronization.
	snapshot *PixelBuffer
}

// NewAreaFilter creates a neighborhood filter from a boundary policy
// and a sample function.
func NewAreaFilter(edge Boundary, sample SampleFunc) *AreaFilter {
	return &AreaFilter{Edge: edge, sample: sample}
}

// Apply snapshots the buffer, then traverses the region over the live
// target invoking the sample function at every position. The snapshot
// copy completes before any traversal work starts; with parallel
// options the copy is the synchronization barrier ahead of the workers.
func (f *AreaFilter) Apply(buf *PixelBuffer, opts *Options) error {
	if f.sample == nil {
		return ErrNilPixelFunc
	}
	cur, err := cursorFor(buf, opts)
	if err != nil {
		return err
	}

	if f.snapshot == nil || f.snapshot.width != buf.width || f.snapshot.height != buf.height {
		snap, err := NewPixelBuffer(buf.width, buf.height)
		if err != nil {
			return err
		}
		f.snapshot = snap
	}
	if err := f.snapshot.CopyFrom(buf); err != nil {
		return err
	}

	snap := f.snapshot
	drain(cur, opts, func(px *PixelView) {
		f.sample(px, snap)
	})
	return nil
}

// NewConvolutionFilter creates a neighborhood filter computing a
// weighted sum of snapshot samples over the kernel window. Color
// channels are convolved; alpha is carried over from the snapshot
// unchanged, so zero-sum kernels do not hollow out the image. When
// normalize is set and the kernel weights do not sum to zero, the sum
// is divided by the total weight.
func NewConvolutionFilter(kernel *Kernel, edge Boundary, normalize bool) *AreaFilter {
	halfW := kernel.Width / 2
	halfH := kernel.Height / 2
	weightSum := kernel.WeightSum()

	return NewAreaFilter(edge, func(out *PixelView, snapshot *PixelBuffer) {
		x, y := out.X(), out.Y()
		var sumR, sumG, sumB float64

		for ky := 0; ky < kernel.Height; ky++ {
			for kx := 0; kx < kernel.Width; kx++ {
				p := edge.Sample(snapshot, x+kx-halfW, y+ky-halfH)
				w := kernel.Values[ky][kx]
				sumR += float64(RedOf(p)) * w
				sumG += float64(GreenOf(p)) * w
				sumB += float64(BlueOf(p)) * w
			}
		}

		if normalize && weightSum != 0 {
			sumR /= weightSum
			sumG /= weightSum
			sumB /= weightSum
		}

		a := AlphaOf(snapshot.pix[y*snapshot.width+x])
		out.SetChannels(a, clampFloatChannel(sumR), clampFloatChannel(sumG), clampFloatChannel(sumB))
	})
}

// ShiftFilter creates a neighborhood filter translating the image by
// (dx, dy): each output pixel takes the snapshot value at
// (x - dx, y - dy), resolved through the boundary policy.
func ShiftFilter(dx, dy int, edge Boundary) *AreaFilter {
	return NewAreaFilter(edge, func(out *PixelView, snapshot *PixelBuffer) {
		out.SetARGB(edge.Sample(snapshot, out.X()-dx, out.Y()-dy))
	})
}

// clampFloatChannel clamps a convolution sum to [0, 255] and rounds to
// a byte.
func clampFloatChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
