package usecase

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/amanie-labs/docscan/internal/domain"
	"github.com/amanie-labs/docscan/internal/imaging"
	"github.com/amanie-labs/docscan/internal/pkg/deadline"
	"github.com/amanie-labs/docscan/internal/ports"
)

// allowedTypes is the upload extension gate, enforced before any work runs.
var allowedTypes = map[string]struct{}{
	"pdf": {}, "png": {}, "jpg": {}, "jpeg": {}, "bmp": {}, "tiff": {},
}

const artifactStamp = "20060102_150405"

// Config tunes the pipeline; zero values fall back to defaults.
type Config struct {
	WorkDir        string
	MaxDimension   int
	OCRTimeout     time.Duration
	OCRConcurrency int
}

// Pipeline orchestrates normalize -> persist artifact -> bounded OCR ->
// validate. It owns the temporary artifact's lifecycle end to end.
type Pipeline struct {
	ocr       ports.OCRPort
	validator ports.ValidatorPort

	workDir    string
	maxDim     int
	ocrTimeout time.Duration
	ocrSem     chan struct{} // limit OCR concurrency
	log        zerolog.Logger
	now        func() time.Time
}

func NewPipeline(ocr ports.OCRPort, validator ports.ValidatorPort, cfg Config, log zerolog.Logger) *Pipeline {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "uploads"
	}
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = imaging.DefaultMaxDimension
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 60 * time.Second
	}
	if cfg.OCRConcurrency <= 0 {
		cfg.OCRConcurrency = 3
	}
	return &Pipeline{
		ocr:        ocr,
		validator:  validator,
		workDir:    cfg.WorkDir,
		maxDim:     cfg.MaxDimension,
		ocrTimeout: cfg.OCRTimeout,
		ocrSem:     make(chan struct{}, cfg.OCRConcurrency),
		log:        log,
		now:        time.Now,
	}
}

// Process runs one document through the pipeline. A single attempt, no
// retries; the temporary artifact is removed on every exit path.
func (p *Pipeline) Process(ctx context.Context, upload domain.Upload) (*domain.PipelineResult, error) {
	ext := upload.Ext()
	if _, ok := allowedTypes[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, upload.Filename)
	}

	img, err := imaging.Normalize(upload, p.maxDim)
	if err != nil {
		return nil, err
	}

	stamp := p.now().Format(artifactStamp)
	artifact := filepath.Join(p.workDir, stamp+"_processed.jpg")
	if err := p.writeArtifact(artifact, img); err != nil {
		return nil, err
	}
	defer p.removeArtifact(artifact)

	p.ocrSem <- struct{}{}
	defer func() { <-p.ocrSem }()

	fragments, err := deadline.Run(func() ([]domain.Fragment, error) {
		return p.ocr.ExtractText(ctx, artifact)
	}, p.ocrTimeout)
	if err != nil {
		return nil, err
	}

	texts := domain.Texts(fragments)

	var validation domain.ValidationResult
	if len(texts) > 0 {
		validation = p.validator.Validate(ctx, texts)
	} else {
		validation = domain.NoTextValidation()
	}

	p.log.Info().
		Str("timestamp", stamp).
		Str("file_type", ext).
		Int("lines", len(texts)).
		Msg("document processed")

	return &domain.PipelineResult{
		Text:                texts,
		Validation:          validation,
		Timestamp:           stamp,
		FileType:            ext,
		ProcessingCompleted: true,
	}, nil
}

func (p *Pipeline) writeArtifact(path string, img *image.Gray) error {
	if err := os.MkdirAll(p.workDir, 0o755); err != nil {
		return fmt.Errorf("%w: create work dir: %v", domain.ErrProcessing, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create artifact: %v", domain.ErrProcessing, err)
	}
	if err := imaging.EncodeJPEG(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%w: encode artifact: %v", domain.ErrProcessing, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: close artifact: %v", domain.ErrProcessing, err)
	}
	return nil
}

func (p *Pipeline) removeArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.log.Error().Err(err).Str("artifact", path).Msg("artifact cleanup failed")
	}
}

// SweepWorkDir creates the work directory if absent and clears any leftover
// artifacts, typically at process startup.
func (p *Pipeline) SweepWorkDir() error {
	if err := os.MkdirAll(p.workDir, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(p.workDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(p.workDir, e.Name())); err != nil {
			p.log.Error().Err(err).Str("file", e.Name()).Msg("startup sweep failed")
		}
	}
	return nil
}
