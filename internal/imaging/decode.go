package imaging

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/amanie-labs/docscan/internal/domain"
)

// pdfZoom matches the 2x rasterization factor used for scanned PDFs; page
// content is rendered at 144 DPI (72 * zoom).
const pdfZoom = 2

func decodeUpload(doc domain.Upload) (image.Image, error) {
	switch doc.Ext() {
	case "pdf":
		return renderFirstPage(doc.Data)
	case "png", "jpg", "jpeg", "bmp", "tiff":
		img, _, err := image.Decode(bytes.NewReader(doc.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.Filename)
	}
}

// renderFirstPage rasterizes page 1 of a PDF. Pages beyond the first are
// intentionally ignored.
func renderFirstPage(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", domain.ErrDecode, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("%w: pdf has no pages", domain.ErrDecode)
	}
	img, err := doc.ImageDPI(0, 72*pdfZoom)
	if err != nil {
		return nil, fmt.Errorf("%w: render pdf page: %v", domain.ErrDecode, err)
	}
	return img, nil
}
