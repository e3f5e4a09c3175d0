package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

var (
	// ErrAIGenerationFailed wraps every provider failure.
	ErrAIGenerationFailed = errors.New("ai text generation failed")
	// ErrNotConfigured is returned before any network attempt when credentials are missing.
	ErrNotConfigured = errors.New("ai provider is not configured")
	// ErrRateLimited marks a transient 429 failure; WithRetry retries it.
	ErrRateLimited = errors.New("ai provider rate limit exceeded")
	// ErrProviderPermanent marks failures that retrying cannot fix (auth, quota, bad request).
	ErrProviderPermanent = errors.New("ai provider rejected the request")
)

// GenerationParams are optional sampling settings. Nil means provider default.
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
}

// UsageInfo holds token counts of one call. Estimated is set when the
// provider returned no usage and tiktoken filled it in.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Estimated        bool
}

// TextGenerator produces a free-text completion.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, params GenerationParams) (string, UsageInfo, error)
}

// Config selects and configures the provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// Configured reports whether a call can be attempted. Ollama needs no key.
func (c Config) Configured() bool {
	if strings.EqualFold(c.Provider, ProviderOllama) {
		return c.BaseURL != ""
	}
	return c.APIKey != ""
}

// NewClient builds the TextGenerator for cfg.Provider. Missing credentials do
// not fail construction: the returned client refuses calls with ErrNotConfigured.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (TextGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if !cfg.Configured() {
		logger.Warn("AI provider credentials missing, generation calls will be refused",
			zap.String("provider", cfg.Provider))
		return &unconfiguredClient{provider: cfg.Provider}, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		logger.Info("Using AI client implementation: Gemini", zap.String("model", cfg.Model))
		return newGeminiClient(ctx, cfg, logger)
	case ProviderOpenAI:
		logger.Info("Using AI client implementation: OpenAI", zap.String("model", cfg.Model), zap.String("base_url", cfg.BaseURL))
		return newOpenAIClient(cfg, logger), nil
	case ProviderOllama:
		logger.Info("Using AI client implementation: Ollama", zap.String("model", cfg.Model), zap.String("base_url", cfg.BaseURL))
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI client type: '%s'", cfg.Provider)
	}
}

type unconfiguredClient struct {
	provider string
}

func (c *unconfiguredClient) GenerateText(context.Context, string, string, GenerationParams) (string, UsageInfo, error) {
	return "", UsageInfo{}, fmt.Errorf("%w: provider %q has no API key", ErrNotConfigured, c.provider)
}

func checkPrompt(userPrompt string) error {
	if strings.TrimSpace(userPrompt) == "" {
		return fmt.Errorf("%w: prompt is empty", ErrAIGenerationFailed)
	}
	return nil
}

// classifyStatus wraps err with ErrRateLimited or ErrProviderPermanent by HTTP status.
func classifyStatus(status int, err error) error {
	switch {
	case status == 429:
		return fmt.Errorf("%w: %w: %v", ErrAIGenerationFailed, ErrRateLimited, err)
	case status == 400 || status == 401 || status == 403 || status == 404:
		return fmt.Errorf("%w: %w: %v", ErrAIGenerationFailed, ErrProviderPermanent, err)
	default:
		return fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
}

func float32Ptr(f64 *float64) *float32 {
	if f64 == nil {
		return nil
	}
	f32 := float32(*f64)
	return &f32
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
