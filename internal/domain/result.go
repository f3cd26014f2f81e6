package domain

import "encoding/json"

// ValidationResult is the opaque payload returned by the validation model.
// It is either the model's own content (JSON if the model produced JSON, a
// JSON string otherwise) or an error-shaped object when the adapter failed.
type ValidationResult json.RawMessage

// MarshalJSON emits the stored payload verbatim.
func (v ValidationResult) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// UnmarshalJSON stores the payload verbatim.
func (v *ValidationResult) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

// RawValidation wraps model output: valid JSON is kept as-is, anything else
// becomes a JSON string.
func RawValidation(content string) ValidationResult {
	if json.Valid([]byte(content)) {
		return ValidationResult(content)
	}
	quoted, _ := json.Marshal(content)
	return ValidationResult(quoted)
}

// FailedValidation shapes an adapter failure as a result payload so that
// validation errors never abort an otherwise successful OCR pass.
func FailedValidation(details string) ValidationResult {
	payload, _ := json.Marshal(map[string]string{
		"error":   "Validation failed",
		"details": details,
	})
	return ValidationResult(payload)
}

// NoTextValidation is the synthesized payload used when OCR detected no text
// at all; the validation model is not consulted in that case.
func NoTextValidation() ValidationResult {
	payload, _ := json.Marshal(map[string]string{
		"error":      "No text detected",
		"suggestion": "Please try with a clearer document",
	})
	return ValidationResult(payload)
}

// PipelineResult is the immutable unit returned to the caller for one
// processed document.
type PipelineResult struct {
	Text                []string         `json:"text"`
	Validation          ValidationResult `json:"validation"`
	Timestamp           string           `json:"timestamp"`
	FileType            string           `json:"file_type"`
	ProcessingCompleted bool             `json:"processing_completed"`
}
