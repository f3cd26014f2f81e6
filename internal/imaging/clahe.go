package imaging

import (
	"image"
	"math"
)

// equalizeLocalContrast applies contrast-limited adaptive histogram
// equalization over a tiles x tiles grid. Each tile gets a clipped-histogram
// lookup table; pixels are mapped by bilinear interpolation between the four
// surrounding tile tables, which avoids visible tile seams.
func equalizeLocalContrast(src *image.Gray, clipLimit float64, tiles int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}
	if tiles < 1 {
		tiles = 1
	}

	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles

	luts := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tiles+tx] = tileLUT(src, x0, y0, x1, y1, clipLimit)
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// Position in tile-center space.
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := clampInt(int(math.Floor(fy)), 0, tiles-1)
		ty1 := clampInt(ty0+1, 0, tiles-1)
		wy := fy - math.Floor(fy)
		if fy < 0 {
			wy = 0
		}
		for x := 0; x < w; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := clampInt(int(math.Floor(fx)), 0, tiles-1)
			tx1 := clampInt(tx0+1, 0, tiles-1)
			wx := fx - math.Floor(fx)
			if fx < 0 {
				wx = 0
			}

			v := src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			top := (1-wx)*float64(luts[ty0*tiles+tx0][v]) + wx*float64(luts[ty0*tiles+tx1][v])
			bot := (1-wx)*float64(luts[ty1*tiles+tx0][v]) + wx*float64(luts[ty1*tiles+tx1][v])
			dst.SetGray(x, y, grayOf((1-wy)*top + wy*bot))
		}
	}
	return dst
}

// tileLUT builds the equalization table for one tile with histogram clipping.
// Clipped excess is redistributed uniformly across all bins before the CDF is
// taken, which is what bounds the contrast amplification.
func tileLUT(src *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	b := src.Bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[src.GrayAt(b.Min.X+x, b.Min.Y+y).Y]++
		}
	}
	area := (x1 - x0) * (y1 - y0)
	var lut [256]uint8
	if area == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	limit := int(clipLimit * float64(area) / 256)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i, c := range hist {
		if c > limit {
			excess += c - limit
			hist[i] = limit
		}
	}
	share := excess / 256
	rem := excess % 256
	for i := range hist {
		hist[i] += share
		if i < rem {
			hist[i]++
		}
	}

	scale := 255.0 / float64(area)
	cdf := 0
	for i, c := range hist {
		cdf += c
		lut[i] = grayOf(float64(cdf) * scale).Y
	}
	return lut
}
