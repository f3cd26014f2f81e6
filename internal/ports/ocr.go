package ports

import (
	"context"

	"github.com/amanie-labs/docscan/internal/domain"
)

type OCRPort interface {
	// ExtractText runs recognition on the artifact at path and returns the
	// recognized lines in reading order. An empty slice means the engine
	// detected no text; that is not an error.
	ExtractText(ctx context.Context, path string) ([]domain.Fragment, error)
}
