// Package ocr adapts the Tesseract engine (via gosseract) to the pipeline's
// OCR port. A gosseract client is not safe for concurrent use, so one client
// is created per invocation; the use case caps how many run at once.
package ocr

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/amanie-labs/docscan/internal/domain"
)

// Config holds the engine settings applied to every recognition run.
type Config struct {
	// Languages are Tesseract language codes; defaults to English.
	Languages []string
	// Threads caps Tesseract's CPU parallelism (OMP_THREAD_LIMIT).
	Threads int
	// Variables are extra engine variables set on each client.
	Variables map[string]string
}

type TesseractEngine struct {
	cfg Config

	// clientFactory is swappable in tests.
	clientFactory func() *gosseract.Client
}

func NewTesseractEngine(cfg Config) *TesseractEngine {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	if cfg.Threads > 0 {
		// Tesseract reads this once from the environment; there is no
		// per-client API for it.
		os.Setenv("OMP_THREAD_LIMIT", strconv.Itoa(cfg.Threads))
	}
	return &TesseractEngine{cfg: cfg, clientFactory: gosseract.NewClient}
}

// ExtractText recognizes the artifact at path and returns its text lines
// ordered top-to-bottom, then left-to-right. Lines with no recognized
// characters are dropped. No detected text yields an empty slice, not an
// error.
func (e *TesseractEngine) ExtractText(ctx context.Context, path string) ([]domain.Fragment, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImage(path); err != nil {
		return nil, fmt.Errorf("%w: set image: %v", domain.ErrProcessing, err)
	}
	if err := c.SetLanguage(e.cfg.Languages...); err != nil {
		return nil, fmt.Errorf("%w: set languages: %v", domain.ErrProcessing, err)
	}
	// Auto segmentation with orientation and script detection.
	if err := c.SetPageSegMode(gosseract.PSM_AUTO_OSD); err != nil {
		return nil, fmt.Errorf("%w: set page seg mode: %v", domain.ErrProcessing, err)
	}
	for k, v := range e.cfg.Variables {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return nil, fmt.Errorf("%w: set variable %s: %v", domain.ErrProcessing, k, err)
		}
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("%w: recognize: %v", domain.ErrProcessing, err)
	}
	return flattenLines(boxes), nil
}

// flattenLines converts raw line boxes into ordered fragments. Tesseract's
// iteration order follows block order, which is not guaranteed top-to-bottom
// on multi-column scans, so lines are sorted by bounding-box position to keep
// output reproducible.
func flattenLines(boxes []gosseract.BoundingBox) []domain.Fragment {
	fragments := make([]domain.Fragment, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		fragments = append(fragments, domain.Fragment{
			Text:       text,
			Confidence: box.Confidence / 100,
			Left:       box.Box.Min.X,
			Top:        box.Box.Min.Y,
		})
	}
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].Top != fragments[j].Top {
			return fragments[i].Top < fragments[j].Top
		}
		return fragments[i].Left < fragments[j].Left
	})
	return fragments
}
