package ports

import (
	"context"

	"github.com/amanie-labs/docscan/internal/domain"
)

type ValidatorPort interface {
	// Validate asks the language model to run its verification protocol over
	// the extracted fragments. It never fails hard: adapter or network errors
	// come back as an error-shaped result payload.
	Validate(ctx context.Context, fragments []string) domain.ValidationResult
}
