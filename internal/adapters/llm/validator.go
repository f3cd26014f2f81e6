// Package llm calls a remote chat-completions model to run the 13-step
// plausibility validation over extracted text. Failures here are soft: a
// broken model or network must not abort an otherwise successful OCR pass,
// so every error path degrades to an error-shaped result payload.
package llm

import (
	"context"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/amanie-labs/docscan/internal/domain"
)

const (
	defaultModel     = openai.GPT4oMini
	defaultMaxTokens = 1000
)

// Config selects the validation model endpoint.
type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint; empty means the OpenAI default.
	// Any OpenAI-compatible server works.
	BaseURL string
	Model   string
	// MaxTokens caps the model's output length.
	MaxTokens int
}

type Validator struct {
	model     string
	maxTokens int
	client    *openai.Client
	log       zerolog.Logger
}

func NewValidator(cfg Config, log zerolog.Logger) *Validator {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Validator{
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    openai.NewClientWithConfig(clientCfg),
		log:       log,
	}
}

// Validate sends the fragments through the verification checklist and returns
// the model's response content unmodified. The model's claims are not
// re-validated locally.
func (v *Validator) Validate(ctx context.Context, fragments []string) domain.ValidationResult {
	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     v.model,
		MaxTokens: v.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(fragments)},
		},
	})
	if err != nil {
		v.log.Error().Err(err).Msg("validation request failed")
		return domain.FailedValidation(err.Error())
	}
	if len(resp.Choices) == 0 {
		v.log.Error().Str("model", v.model).Msg("validation response had no choices")
		return domain.FailedValidation("model returned no choices")
	}
	return domain.RawValidation(resp.Choices[0].Message.Content)
}
