package imaging

import (
	"image"
	"math"
)

// denoise runs non-local-means denoising: every pixel becomes a weighted
// average of the pixels in its search window, weighted by how similar their
// template patches are. On a binarized page this removes residual speckle
// from thresholding without eroding glyph edges the way a plain blur would.
//
// Patch distances are computed per displacement with an integral image over
// the squared difference plane, which drops the per-pixel cost from
// O(search^2 * template^2) to O(search^2).
func denoise(src *image.Gray, strength, template, search int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	tr := template / 2
	sr := search / 2
	h2 := float64(strength * strength)

	pix := func(x, y int) float64 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return float64(src.Pix[y*src.Stride+x])
	}

	acc := make([]float64, w*h)
	wsum := make([]float64, w*h)
	integral := make([]float64, (w+1)*(h+1))
	iw := w + 1

	for dy := -sr; dy <= sr; dy++ {
		for dx := -sr; dx <= sr; dx++ {
			// Integral image of the squared difference plane for this
			// displacement; borders replicate.
			for y := 0; y < h; y++ {
				rowSum := 0.0
				for x := 0; x < w; x++ {
					d := pix(x, y) - pix(x+dx, y+dy)
					rowSum += d * d
					integral[(y+1)*iw+x+1] = integral[y*iw+x+1] + rowSum
				}
			}
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					x0 := clampInt(x-tr, 0, w)
					y0 := clampInt(y-tr, 0, h)
					x1 := clampInt(x+tr+1, 0, w)
					y1 := clampInt(y+tr+1, 0, h)
					sum := integral[y1*iw+x1] - integral[y0*iw+x1] -
						integral[y1*iw+x0] + integral[y0*iw+x0]
					// Border patches are partial; normalize by actual area.
					area := float64((x1 - x0) * (y1 - y0))
					d2 := sum / area
					wgt := math.Exp(-d2 / h2)
					acc[y*w+x] += wgt * pix(x+dx, y+dy)
					wsum[y*w+x] += wgt
				}
			}
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x] = grayOf(acc[y*w+x] / wsum[y*w+x]).Y
		}
	}
	return dst
}
