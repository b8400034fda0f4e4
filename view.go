package rasterops

// PixelView is a lightweight cursor bound to one position in a shared
// pixel buffer. Reads and writes act directly on the buffer.
//
// Each Cursor owns a single PixelView and repositions it on every step,
// so a view is only valid until the cursor advances again. Callers must
// not retain a view past the step that produced it.
type PixelView struct {
	buf   *PixelBuffer
	index int
	x, y  int
}

// X returns the view's column in the buffer.
func (v *PixelView) X() int {
	return v.x
}

// Y returns the view's row in the buffer.
func (v *PixelView) Y() int {
	return v.y
}

// Index returns the view's row-major linear index in the buffer.
func (v *PixelView) Index() int {
	return v.index
}

// Buffer returns the buffer the view was created from.
func (v *PixelView) Buffer() *PixelBuffer {
	return v.buf
}

// ARGB returns the packed pixel value at the view's position.
func (v *PixelView) ARGB() uint32 {
	return v.buf.pix[v.index]
}

// SetARGB stores a packed pixel value at the view's position. The write
// goes through to the buffer immediately.
func (v *PixelView) SetARGB(p uint32) {
	v.buf.pix[v.index] = p
}

// Alpha returns the alpha channel at the view's position.
func (v *PixelView) Alpha() uint8 {
	return AlphaOf(v.buf.pix[v.index])
}

// Red returns the red channel at the view's position.
func (v *PixelView) Red() uint8 {
	return RedOf(v.buf.pix[v.index])
}

// Green returns the green channel at the view's position.
func (v *PixelView) Green() uint8 {
	return GreenOf(v.buf.pix[v.index])
}

// Blue returns the blue channel at the view's position.
func (v *PixelView) Blue() uint8 {
	return BlueOf(v.buf.pix[v.index])
}

// SetChannels stores all four channels at the view's position in one
// packed write.
func (v *PixelView) SetChannels(a, r, g, b uint8) {
	v.buf.pix[v.index] = PackARGB(a, r, g, b)
}

// moveTo repositions the view at buffer coordinates (x, y).
func (v *PixelView) moveTo(x, y int) {
	v.x = x
	v.y = y
	v.index = y*v.buf.width + x
}
