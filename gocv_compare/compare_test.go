// Package gocv_compare contains tests that compare rasterops filters
// against gocv (OpenCV). These tests require OpenCV to be installed.
//
// Run with: cd gocv_compare && go test -v
package gocv_compare

import (
	"image"
	"testing"

	"github.com/wbrown/rasterops"
	"gocv.io/x/gocv"
)

// bufToMat converts a PixelBuffer to a gocv.Mat (BGR).
func bufToMat(buf *rasterops.PixelBuffer) gocv.Mat {
	mat := gocv.NewMatWithSize(buf.Height(), buf.Width(), gocv.MatTypeCV8UC3)

	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			p := buf.At(x, y)
			// gocv uses BGR format
			mat.SetUCharAt(y, x*3, rasterops.BlueOf(p))
			mat.SetUCharAt(y, x*3+1, rasterops.GreenOf(p))
			mat.SetUCharAt(y, x*3+2, rasterops.RedOf(p))
		}
	}
	return mat
}

// matToBuf converts a gocv.Mat (BGR) to a PixelBuffer with opaque alpha.
func matToBuf(mat gocv.Mat) *rasterops.PixelBuffer {
	height, width := mat.Rows(), mat.Cols()
	buf, _ := rasterops.NewPixelBuffer(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			vec := mat.GetVecbAt(y, x)
			buf.Set(x, y, rasterops.PackARGB(255, vec[2], vec[1], vec[0]))
		}
	}
	return buf
}

// interiorMSE computes the mean squared color-channel error between
// buffers, skipping a margin so OpenCV's border conventions do not
// enter the comparison.
func interiorMSE(a, b *rasterops.PixelBuffer, margin int) float64 {
	var sumSq float64
	var count float64

	for y := margin; y < a.Height()-margin; y++ {
		for x := margin; x < a.Width()-margin; x++ {
			pa, pb := a.At(x, y), b.At(x, y)
			dr := float64(rasterops.RedOf(pa)) - float64(rasterops.RedOf(pb))
			dg := float64(rasterops.GreenOf(pa)) - float64(rasterops.GreenOf(pb))
			db := float64(rasterops.BlueOf(pa)) - float64(rasterops.BlueOf(pb))
			sumSq += dr*dr + dg*dg + db*db
			count += 3
		}
	}
	return sumSq / count
}

func TestGaussianBlurMatchesOpenCV(t *testing.T) {
	buf := rasterops.CreateCheckerboardBuffer(64, 64, 8)

	ours := buf.Clone()
	f := rasterops.NewConvolutionFilter(rasterops.GaussianKernel5x5(), rasterops.ClampEdge, false)
	if err := f.Apply(ours, nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	src := bufToMat(buf)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.GaussianBlur(src, &dst, image.Pt(5, 5), 1.4, 1.4, gocv.BorderReplicate)

	theirs := matToBuf(dst)

	// The 5x5 kernel is a rational approximation of sigma 1.4, so allow
	// a small tolerance.
	if got := interiorMSE(ours, theirs, 3); got > 16.0 {
		t.Errorf("Gaussian blur diverges from OpenCV: MSE=%f", got)
	}
}

func TestBoxBlurMatchesOpenCV(t *testing.T) {
	buf := rasterops.CreateGradientBuffer(64, 64)

	ours := buf.Clone()
	f := rasterops.NewConvolutionFilter(rasterops.BoxKernel(3), rasterops.ClampEdge, false)
	if err := f.Apply(ours, nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	src := bufToMat(buf)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Blur(src, &dst, image.Pt(3, 3))

	theirs := matToBuf(dst)

	if got := interiorMSE(ours, theirs, 2); got > 1.0 {
		t.Errorf("Box blur diverges from OpenCV: MSE=%f", got)
	}
}
