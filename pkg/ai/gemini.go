package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// geminiClient calls the Gemini API through google.golang.org/genai.
type geminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &geminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger.Named("GeminiClient"),
	}, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string, params GenerationParams) (string, UsageInfo, error) {
	usage := UsageInfo{}
	if err := checkPrompt(userPrompt); err != nil {
		observeFailure(ProviderGemini, c.model, "error")
		return "", usage, err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: float32Ptr(params.Temperature),
		TopP:        float32Ptr(params.TopP),
	}
	if params.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*params.MaxTokens)
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(requestCtx, c.model, genai.Text(userPrompt), cfg)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("Gemini API returned an error", zap.Duration("duration", duration), zap.Error(err))
		observeFailure(ProviderGemini, c.model, "error")
		return "", usage, classifyGeminiError(err)
	}

	text := resp.Text()
	if text == "" {
		observeFailure(ProviderGemini, c.model, "error_empty_response")
		return "", usage, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	if md := resp.UsageMetadata; md != nil && md.TotalTokenCount > 0 {
		usage = UsageInfo{
			PromptTokens:     int(md.PromptTokenCount),
			CompletionTokens: int(md.CandidatesTokenCount),
			TotalTokens:      int(md.TotalTokenCount),
		}
	} else {
		usage = estimateUsage(c.model, systemPrompt, userPrompt, text)
	}
	observeSuccess(ProviderGemini, c.model, duration, usage)

	c.logger.Info("Gemini response received",
		zap.Duration("duration", duration),
		zap.Int("response_length", len(text)),
		zap.Int("total_tokens", usage.TotalTokens))
	return text, usage, nil
}

// classifyGeminiError maps genai API errors. RESOURCE_EXHAUSTED is how the
// Gemini API reports both rate limits and per-minute quota.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return classifyStatus(apiErrPtr.Code, err)
	}
	if strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return classifyStatus(http.StatusTooManyRequests, err)
	}
	return fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
}
