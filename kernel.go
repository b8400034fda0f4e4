package rasterops

import "math"

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// WeightSum returns the sum of all kernel weights.
func (k *Kernel) WeightSum() float64 {
	var sum float64
	for _, row := range k.Values {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// IdentityKernel returns a 3x3 kernel that passes pixels through
// unchanged.
func IdentityKernel() *Kernel {
	return NewKernel([][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
}

// SharpeningKernel returns a mild sharpening kernel.
func SharpeningKernel() *Kernel {
	return NewKernel([][]float64{
		{0, -0.5, 0},
		{-0.5, 3, -0.5},
		{0, -0.5, 0},
	})
}

// GaussianKernel3x3 returns a 3x3 Gaussian blur kernel.
func GaussianKernel3x3() *Kernel {
	return NewKernel([][]float64{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	})
}

// GaussianKernel5x5 returns a 5x5 Gaussian blur kernel with sigma ~1.4.
func GaussianKernel5x5() *Kernel {
	// Approximation of Gaussian with sigma = 1.4
	return NewKernel([][]float64{
		{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
		{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
		{5.0 / 159, 12.0 / 159, 15.0 / 159, 12.0 / 159, 5.0 / 159},
		{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
		{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
	})
}

// BoxKernel returns a size x size kernel averaging its whole window.
func BoxKernel(size int) *Kernel {
	w := 1.0 / float64(size*size)
	values := make([][]float64, size)
	for y := range values {
		row := make([]float64, size)
		for x := range row {
			row[x] = w
		}
		values[y] = row
	}
	return NewKernel(values)
}

// gaussian1D returns the one-dimensional Gaussian factors for sigma over
// extent taps, normalized to sum 1.
func gaussian1D(sigma float64, extent int) []float64 {
	g := make([]float64, extent)
	center := float64(extent-1) / 2
	var sum float64
	for i := range g {
		d := float64(i) - center
		g[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += g[i]
	}
	for i := range g {
		g[i] /= sum
	}
	return g
}

// DifferenceOfGaussiansKernel builds a band-pass kernel from two
// isotropic Gaussians of independent standard deviations: the narrower
// Gaussian minus the wider one. Kernel extent is 1 + ceil(largerSigma)*6
// taps per axis, with the one-dimensional factors outer-producted into
// the 2D kernel.
func DifferenceOfGaussiansKernel(sigma1, sigma2 float64) *Kernel {
	narrow, wide := sigma1, sigma2
	if narrow > wide {
		narrow, wide = wide, narrow
	}
	extent := 1 + int(math.Ceil(wide))*6

	gn := gaussian1D(narrow, extent)
	gw := gaussian1D(wide, extent)

	values := make([][]float64, extent)
	for y := range values {
		row := make([]float64, extent)
		for x := range row {
			row[x] = gn[y]*gn[x] - gw[y]*gw[x]
		}
		values[y] = row
	}
	return NewKernel(values)
}
