package rasterops

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FromImage converts any image.Image into a new PixelBuffer. The source
// is first copied into an RGBA raster, so pixel values follow
// image.RGBA's alpha-premultiplied convention.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, bounds, xdraw.Src, nil)

	buf := &PixelBuffer{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    make([]uint32, bounds.Dx()*bounds.Dy()),
	}
	for i := range buf.pix {
		o := i * 4
		buf.pix[i] = PackARGB(rgba.Pix[o+3], rgba.Pix[o], rgba.Pix[o+1], rgba.Pix[o+2])
	}
	return buf
}

// ToImage converts the buffer into a new image.RGBA for codec and
// display collaborators.
func (b *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for i, p := range b.pix {
		o := i * 4
		img.Pix[o] = RedOf(p)
		img.Pix[o+1] = GreenOf(p)
		img.Pix[o+2] = BlueOf(p)
		img.Pix[o+3] = AlphaOf(p)
	}
	return img
}

// Scaled returns a new buffer resampled to the given dimensions with
// Catmull-Rom interpolation. Scaling is codec-layer glue rather than a
// filter; it lives here next to the image.Image conversions.
func (b *PixelBuffer) Scaled(width, height int) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, ErrPixLengthMismatch
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), b.ToImage(), image.Rect(0, 0, b.width, b.height), xdraw.Src, nil)
	return FromImage(dst), nil
}
