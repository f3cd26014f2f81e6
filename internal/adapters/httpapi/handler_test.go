package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanie-labs/docscan/internal/domain"
)

type stubPipeline struct {
	result *domain.PipelineResult
	err    error
	upload domain.Upload
	calls  int
}

func (s *stubPipeline) Process(ctx context.Context, upload domain.Upload) (*domain.PipelineResult, error) {
	s.calls++
	s.upload = upload
	return s.result, s.err
}

func multipartUpload(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func postUpload(t *testing.T, h *Handler, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, field, filename, data)
	req := httptest.NewRequest(http.MethodPost, "/ocr", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestProcessDocumentSuccess(t *testing.T) {
	stub := &stubPipeline{result: &domain.PipelineResult{
		Text:                []string{"hello", "world"},
		Validation:          domain.RawValidation(`{"status":"valid"}`),
		Timestamp:           "20250101_120000",
		FileType:            "png",
		ProcessingCompleted: true,
	}}
	h := NewHandler(stub, zerolog.Nop())

	rec := postUpload(t, h, "image", "scan.png", []byte("fake-png-bytes"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "scan.png", stub.upload.Filename)
	assert.Equal(t, []byte("fake-png-bytes"), stub.upload.Data)

	var body struct {
		Text                []string        `json:"text"`
		Validation          json.RawMessage `json:"validation"`
		Timestamp           string          `json:"timestamp"`
		FileType            string          `json:"file_type"`
		ProcessingCompleted bool            `json:"processing_completed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"hello", "world"}, body.Text)
	assert.JSONEq(t, `{"status":"valid"}`, string(body.Validation))
	assert.Equal(t, "20250101_120000", body.Timestamp)
	assert.Equal(t, "png", body.FileType)
	assert.True(t, body.ProcessingCompleted)
}

func TestProcessDocumentMissingFile(t *testing.T) {
	h := NewHandler(&stubPipeline{}, zerolog.Nop())

	rec := postUpload(t, h, "wrong-field", "scan.png", []byte("x"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No file uploaded", body["error"])
}

func TestProcessDocumentOversizedUpload(t *testing.T) {
	stub := &stubPipeline{}
	h := NewHandler(stub, zerolog.Nop())

	rec := postUpload(t, h, "image", "big.png", make([]byte, MaxUploadBytes+1))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, stub.calls, "pipeline must not run for oversized uploads")
}

func TestProcessDocumentErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "unsupported format",
			err:        domain.ErrUnsupportedFormat,
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "Invalid file type",
		},
		{
			name:       "decode failure",
			err:        domain.ErrDecode,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  domain.ErrDecode.Error(),
		},
		{
			name:       "timeout",
			err:        domain.ErrDeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "Processing timeout. Please try with a clearer document or smaller file.",
		},
		{
			name:       "processing failure",
			err:        domain.ErrProcessing,
			wantStatus: http.StatusInternalServerError,
			wantError:  domain.ErrProcessing.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubPipeline{err: tt.err}, zerolog.Nop())
			rec := postUpload(t, h, "image", "scan.png", []byte("x"))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestHomeServesUploadPage(t *testing.T) {
	h := NewHandler(&stubPipeline{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "uploadForm")
}

func TestHealthz(t *testing.T) {
	h := NewHandler(&stubPipeline{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
