// Package httpapi is the thin web front door: one multipart upload endpoint
// in front of the processing pipeline, plus a static upload page and a
// liveness probe.
package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amanie-labs/docscan/internal/domain"
)

// MaxUploadBytes caps the request body before the pipeline runs.
const MaxUploadBytes = 10 << 20

//go:embed index.html
var indexPage []byte

// Processor is the pipeline surface the handler needs.
type Processor interface {
	Process(ctx context.Context, upload domain.Upload) (*domain.PipelineResult, error)
}

type Handler struct {
	pipeline Processor
	log      zerolog.Logger
}

func NewHandler(pipeline Processor, log zerolog.Logger) *Handler {
	return &Handler{pipeline: pipeline, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", h.home)
	r.Get("/healthz", h.health)
	r.Post("/ocr", h.processDocument)
	return r
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) processDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge,
			"File size must be less than 10MB", "")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded", "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read upload", "")
		return
	}

	result, err := h.pipeline.Process(r.Context(), domain.Upload{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		h.renderPipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) renderPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, "Invalid file type", "")
	case errors.Is(err, domain.ErrDecode):
		writeError(w, http.StatusUnprocessableEntity, err.Error(),
			"Please try again with a different document")
	case errors.Is(err, domain.ErrDeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout,
			"Processing timeout. Please try with a clearer document or smaller file.", "")
	default:
		writeError(w, http.StatusInternalServerError, err.Error(),
			"Please try again with a different document")
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

type errorBody struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, suggestion string) {
	writeJSON(w, status, errorBody{Error: msg, Suggestion: suggestion})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
