package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/amanie-labs/docscan/internal/adapters/httpapi"
	"github.com/amanie-labs/docscan/internal/adapters/llm"
	"github.com/amanie-labs/docscan/internal/adapters/ocr"
	"github.com/amanie-labs/docscan/internal/config"
	"github.com/amanie-labs/docscan/internal/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "docscan").Logger()

	// Adapters (infrastructure): constructed once at startup, injected below.
	engine := ocr.NewTesseractEngine(ocr.Config{Threads: cfg.OCRThreads})
	validator := llm.NewValidator(llm.Config{
		APIKey:    cfg.LLMAPIKey,
		BaseURL:   cfg.LLMBaseURL,
		Model:     cfg.LLMModel,
		MaxTokens: cfg.LLMMaxTokens,
	}, logger.With().Str("component", "llm").Logger())

	// Application service (use cases)
	pipeline := usecase.NewPipeline(engine, validator, usecase.Config{
		WorkDir:        cfg.WorkDir,
		MaxDimension:   cfg.MaxDimension,
		OCRTimeout:     cfg.OCRTimeout,
		OCRConcurrency: cfg.OCRConcurrency,
	}, logger.With().Str("component", "pipeline").Logger())

	if err := pipeline.SweepWorkDir(); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.WorkDir).Msg("work dir unusable")
	}

	// Web front door
	handler := httpapi.NewHandler(pipeline, logger.With().Str("component", "http").Logger())
	srv := &http.Server{Addr: cfg.Addr, Handler: handler.Routes()}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("docscan listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("serve error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
