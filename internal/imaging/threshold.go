package imaging

import (
	"image"
	"math"
)

// adaptiveThreshold binarizes the image against a locally-weighted Gaussian
// mean: a pixel stays white when it exceeds the blurred neighborhood mean
// minus the offset constant. Local means make the result robust to uneven
// lighting and shadows that defeat a global threshold.
func adaptiveThreshold(src *image.Gray, block, offset int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	kernel := gaussianKernel(block)
	r := block / 2

	// Separable blur, horizontal then vertical, replicated borders.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -r; k <= r; k++ {
				xx := clampInt(x+k, 0, w-1)
				sum += kernel[k+r] * float64(src.GrayAt(b.Min.X+xx, b.Min.Y+y).Y)
			}
			tmp[y*w+x] = sum
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var mean float64
			for k := -r; k <= r; k++ {
				yy := clampInt(y+k, 0, h-1)
				mean += kernel[k+r] * tmp[yy*w+x]
			}
			v := src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			if float64(v) > mean-float64(offset) {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

// gaussianKernel builds a normalized 1D kernel of the given odd size, with
// sigma derived from the size the same way OpenCV's getGaussianKernel does.
func gaussianKernel(size int) []float64 {
	if size%2 == 0 {
		size++
	}
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	r := size / 2
	kernel := make([]float64, size)
	var sum float64
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+r] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
