// Package imaging turns an uploaded document into a clean, bounded-size,
// binarized raster suitable for OCR. The stages mirror a typical document
// scanning chain: decode (PDF pages are rasterized), downscale, grayscale,
// local contrast equalization, adaptive thresholding, denoising.
package imaging

import (
	"image"
	"image/jpeg"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/amanie-labs/docscan/internal/domain"
)

// DefaultMaxDimension bounds the long edge of the normalized raster.
const DefaultMaxDimension = 1800

const (
	claheClipLimit = 2.0
	claheTileGrid  = 8

	thresholdBlock  = 11
	thresholdOffset = 2

	denoiseStrength = 10
	denoiseTemplate = 7
	denoiseSearch   = 21

	jpegQuality = 85
)

// Normalize converts an uploaded document into a single-channel binarized
// image whose longer dimension does not exceed maxDim. The result is produced
// fresh per call and shares no memory with the input.
func Normalize(doc domain.Upload, maxDim int) (*image.Gray, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	src, err := decodeUpload(doc)
	if err != nil {
		return nil, err
	}

	rgba := toRGBA(src)
	rgba = shrinkToFit(rgba, maxDim)

	gray := toGray(rgba)
	gray = equalizeLocalContrast(gray, claheClipLimit, claheTileGrid)
	gray = adaptiveThreshold(gray, thresholdBlock, thresholdOffset)
	gray = denoise(gray, denoiseStrength, denoiseTemplate, denoiseSearch)
	return gray, nil
}

// EncodeJPEG writes img as a lossy-compressed raster to bound artifact size.
func EncodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}

// shrinkToFit downscales so the longer dimension equals maxDim, preserving
// aspect ratio. Smaller images are returned untouched; nothing is upscaled.
func shrinkToFit(src *image.RGBA, maxDim int) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxDim {
		return src
	}
	scale := float64(maxDim) / float64(long)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func toGray(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
