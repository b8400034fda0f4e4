package rasterops

// CreateGradientBuffer creates a horizontal gradient test buffer with
// opaque alpha.
func CreateGradientBuffer(width, height int) *PixelBuffer {
	buf, _ := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			buf.Set(x, y, PackARGB(255, v, v, v))
		}
	}
	return buf
}

// CreateCheckerboardBuffer creates a checkerboard pattern for
// neighborhood testing.
func CreateCheckerboardBuffer(width, height, squareSize int) *PixelBuffer {
	buf, _ := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isWhite := ((x/squareSize)+(y/squareSize))%2 == 0
			if isWhite {
				buf.Set(x, y, PackARGB(255, 255, 255, 255))
			} else {
				buf.Set(x, y, PackARGB(255, 0, 0, 0))
			}
		}
	}
	return buf
}

// CreateSolidBuffer creates a buffer filled with one packed value.
func CreateSolidBuffer(width, height int, p uint32) *PixelBuffer {
	buf, _ := NewPixelBuffer(width, height)
	buf.Fill(p)
	return buf
}

// CreateIndexBuffer creates a buffer where each pixel's packed value is
// its own linear index. Useful for checking that positions move where
// they should.
func CreateIndexBuffer(width, height int) *PixelBuffer {
	buf, _ := NewPixelBuffer(width, height)
	for i := range buf.pix {
		buf.pix[i] = uint32(i)
	}
	return buf
}

// BuffersEqual reports whether two buffers have identical dimensions
// and byte-for-byte identical pixels, returning the first differing
// index (or -1).
func BuffersEqual(a, b *PixelBuffer) (bool, int) {
	if a.width != b.width || a.height != b.height {
		return false, 0
	}
	for i := range a.pix {
		if a.pix[i] != b.pix[i] {
			return false, i
		}
	}
	return true, -1
}

// MaxChannelDiff returns the largest per-channel difference between two
// buffers of identical dimensions.
func MaxChannelDiff(a, b *PixelBuffer) int {
	maxDiff := 0
	for i := range a.pix {
		pa, pb := a.pix[i], b.pix[i]
		for shift := 0; shift < 32; shift += 8 {
			da := int(pa>>shift) & 0xff
			db := int(pb>>shift) & 0xff
			d := da - db
			if d < 0 {
				d = -d
			}
			if d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff
}
