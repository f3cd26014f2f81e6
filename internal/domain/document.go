package domain

import (
	"path/filepath"
	"strings"
)

// Upload is the raw document as received from the client. It is never
// mutated after ingress; the normalizer consumes it and produces a fresh
// raster per request.
type Upload struct {
	Filename string
	Data     []byte
}

// Ext returns the declared file extension, lowercased and without the dot.
func (u Upload) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Filename), "."))
}

// Fragment is one recognized line of text as emitted by the OCR engine,
// with its confidence in [0,1] and the top-left corner of its bounding box.
type Fragment struct {
	Text       string
	Confidence float64
	Left       int
	Top        int
}

// Texts flattens fragments down to their text components.
func Texts(fragments []Fragment) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, f.Text)
	}
	return out
}
