package domain

import (
	"encoding/json"
	"testing"
)

func TestRawValidationKeepsJSON(t *testing.T) {
	got := RawValidation(`{"confidence": 0.9}`)
	var m map[string]float64
	if err := json.Unmarshal(got, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["confidence"] != 0.9 {
		t.Fatalf("payload lost: %v", m)
	}
}

func TestRawValidationWrapsPlainText(t *testing.T) {
	got := RawValidation("looks fine")
	var s string
	if err := json.Unmarshal(got, &s); err != nil {
		t.Fatalf("plain text should become a JSON string: %v", err)
	}
	if s != "looks fine" {
		t.Fatalf("got %q", s)
	}
}

func TestPipelineResultMarshalsValidationInline(t *testing.T) {
	res := PipelineResult{
		Text:                []string{"a"},
		Validation:          RawValidation(`{"status":"valid"}`),
		Timestamp:           "20250101_000000",
		FileType:            "pdf",
		ProcessingCompleted: true,
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var round struct {
		Validation struct {
			Status string `json:"status"`
		} `json:"validation"`
	}
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round.Validation.Status != "valid" {
		t.Fatalf("validation not embedded as JSON: %s", data)
	}
}

func TestNoTextValidationShape(t *testing.T) {
	var payload map[string]string
	if err := json.Unmarshal(NoTextValidation(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["error"] != "No text detected" {
		t.Fatalf("error = %q", payload["error"])
	}
	if payload["suggestion"] == "" {
		t.Fatal("suggestion must be user-facing and non-empty")
	}
}

func TestUploadExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"scan.PDF", "pdf"},
		{"photo.jpeg", "jpeg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := (Upload{Filename: tt.filename}).Ext(); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
