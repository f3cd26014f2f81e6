package domain

import "errors"

// Pipeline error taxonomy. Callers classify with errors.Is; adapters wrap
// these with %w and attach detail.
var (
	// ErrUnsupportedFormat covers uploads whose extension or content is
	// neither a recognized raster type nor a PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDecode covers payloads that cannot be decoded as declared.
	ErrDecode = errors.New("document could not be decoded")

	// ErrDeadlineExceeded is reported when the OCR deadline fired before the
	// work completed. The timeout is cooperative, not preemptive.
	ErrDeadlineExceeded = errors.New("processing deadline exceeded")

	// ErrProcessing is the catch-all for unexpected adapter failures.
	ErrProcessing = errors.New("document processing failed")
)
