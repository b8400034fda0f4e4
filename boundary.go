package rasterops

// BoundaryMode selects how out-of-range neighborhood samples resolve.
type BoundaryMode int

const (
	// BoundaryClamp replicates the nearest edge pixel.
	BoundaryClamp BoundaryMode = iota
	// BoundaryWrap repeats the buffer periodically.
	BoundaryWrap
	// BoundaryMirror reflects coordinates at the edges.
	BoundaryMirror
	// BoundaryConstant substitutes a fixed packed value.
	BoundaryConstant
)

// Boundary maps an out-of-range (x, y) to an in-range sample. It is a
// pure function of the coordinates and dimensions; no state is kept.
type Boundary struct {
	Mode BoundaryMode

	// Value is the packed pixel substituted by BoundaryConstant.
	Value uint32
}

// Stock boundary policies.
var (
	ClampEdge  = Boundary{Mode: BoundaryClamp}
	WrapEdge   = Boundary{Mode: BoundaryWrap}
	MirrorEdge = Boundary{Mode: BoundaryMirror}
)

// ConstantEdge returns a boundary policy substituting the given packed
// value for every out-of-range sample.
func ConstantEdge(value uint32) Boundary {
	return Boundary{Mode: BoundaryConstant, Value: value}
}

// Sample reads the packed pixel at (x, y) from buf, resolving
// out-of-range coordinates according to the policy.
func (b Boundary) Sample(buf *PixelBuffer, x, y int) uint32 {
	if x >= 0 && x < buf.width && y >= 0 && y < buf.height {
		return buf.pix[y*buf.width+x]
	}
	switch b.Mode {
	case BoundaryWrap:
		return buf.pix[wrapCoord(y, buf.height)*buf.width+wrapCoord(x, buf.width)]
	case BoundaryMirror:
		return buf.pix[mirrorCoord(y, buf.height)*buf.width+mirrorCoord(x, buf.width)]
	case BoundaryConstant:
		return b.Value
	default: // BoundaryClamp
		return buf.pix[clampCoord(y, buf.height)*buf.width+clampCoord(x, buf.width)]
	}
}

// clampCoord clamps v to [0, n).
func clampCoord(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// wrapCoord maps v into [0, n) periodically.
func wrapCoord(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// mirrorCoord reflects v into [0, n) with period 2n, so the sequence
// near the left edge reads ..., 1, 0, 0, 1, ...
func mirrorCoord(v, n int) int {
	period := 2 * n
	v %= period
	if v < 0 {
		v += period
	}
	if v >= n {
		v = period - 1 - v
	}
	return v
}
