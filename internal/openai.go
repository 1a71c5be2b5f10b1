package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.uber.org/zap"
)

// insufficientQuotaCode is the error code OpenAI sends with 429 when billing quota is spent
const insufficientQuotaCode = "insufficient_quota"

// AISettings holds the generation parameters for title variations
type AISettings struct {
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// AI generates title variations through an OpenAI-compatible chat endpoint.
// It holds no credential; the key is supplied per call.
type AI struct {
	settings AISettings
	prompts  *PromptManager
	logger   *zap.Logger
	metrics  *Metrics
}

// NewAI creates a title-variation adapter
func NewAI(settings AISettings, prompts *PromptManager, logger *zap.Logger, metrics *Metrics) *AI {
	if prompts == nil {
		prompts = NewPromptManager("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AI{
		settings: settings,
		prompts:  prompts,
		logger:   logger,
		metrics:  metrics,
	}
}

// SetPromptManager replaces the prompt manager
func (ai *AI) SetPromptManager(pm *PromptManager) {
	ai.prompts = pm
}

// TitleVariations asks the model for rewrites of sourceTitle and normalizes the reply
func (ai *AI) TitleVariations(ctx context.Context, sourceTitle, apiKey string) (variations []TitleVariation, err error) {
	start := time.Now()
	defer func() {
		ai.metrics.ObserveRequest(adapterTitles, err, time.Since(start))
		if err == nil {
			ai.metrics.ObserveVariations(len(variations))
		}
	}()

	if apiKey == "" {
		return nil, newError(KindMissingCredential, "OpenAI API key is required - set it in config.toml or OPENAI_API_KEY environment variable", nil)
	}

	systemPrompt, err := ai.prompts.SystemPrompt()
	if err != nil {
		return nil, err
	}
	userPrompt, err := ai.prompts.UserPrompt(sourceTitle)
	if err != nil {
		return nil, err
	}

	if ai.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.settings.Timeout)
		defer cancel()
	}

	client := openai.NewClient(ai.clientOptions(apiKey)...)

	ai.logger.Debug("Calling OpenAI for title variations",
		zap.String("title", sourceTitle),
		zap.String("model", ai.settings.Model))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(ai.settings.Model),
		Temperature: openai.Float(ai.settings.Temperature),
		MaxTokens:   openai.Int(ai.settings.MaxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		classified := classifyOpenAIError(err)
		ai.logger.Warn("OpenAI API call failed",
			zap.Stringer("kind", classified.Kind),
			zap.Error(err))
		return nil, classified
	}

	if len(resp.Choices) == 0 {
		return nil, newError(KindUpstreamError, "no response choices from OpenAI", nil)
	}

	content := resp.Choices[0].Message.Content
	ai.logger.Debug("OpenAI response received", zap.Int("content_length", len(content)))

	variations, path, err := parseVariations(content)
	if err != nil {
		ai.logger.Warn("Failed to parse OpenAI response",
			zap.Stringer("kind", KindOf(err)),
			zap.String("content", Excerpt(content)))
		return nil, err
	}

	ai.logger.Debug("Title variations parsed",
		zap.String("parse_path", string(path)),
		zap.Int("count", len(variations)))

	return variations, nil
}

func (ai *AI) clientOptions(apiKey string) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if ai.settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(ai.settings.BaseURL))
	}
	return opts
}

// classifyOpenAIError maps an API or transport error onto the error taxonomy
func classifyOpenAIError(err error) *Error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return newError(KindNetworkFailure, "", err)
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindInvalidOrExhaustedCredential, "OpenAI API key is invalid or not authorized", err)
	case http.StatusTooManyRequests:
		if apiErr.Code == insufficientQuotaCode {
			return newError(KindInvalidOrExhaustedCredential, "OpenAI API quota is exhausted - check your plan and billing details", err)
		}
		return newError(KindRateLimited, "", err)
	}

	message := apiErr.Message
	if message == "" {
		message = fmt.Sprintf("OpenAI request failed (status %d)", apiErr.StatusCode)
	}
	return newError(KindUpstreamError, message, err)
}
