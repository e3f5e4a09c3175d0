package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ugc-studio/internal/prompts"
	"ugc-studio/pkg/ai"
)

// Generator sends prompts to the text provider under the retry policy.
// All AI-backed services share one instance.
type Generator struct {
	client ai.TextGenerator
	retry  ai.RetryPolicy
	params ai.GenerationParams
	logger *zap.Logger
}

func NewGenerator(client ai.TextGenerator, retry ai.RetryPolicy, params ai.GenerationParams, logger *zap.Logger) *Generator {
	if retry.Logger == nil {
		retry.Logger = logger
	}
	return &Generator{client: client, retry: retry, params: params, logger: logger}
}

// Generate returns the completion for prompt. op names the call in logs.
func (g *Generator) Generate(ctx context.Context, op, prompt string) (string, error) {
	text, err := ai.WithRetry(ctx, g.retry, func(ctx context.Context) (string, error) {
		text, usage, err := g.client.GenerateText(ctx, prompts.SystemPrompt, prompt, g.params)
		if err != nil {
			return "", err
		}
		g.logger.Debug("Completion received",
			zap.String("op", op),
			zap.Int("total_tokens", usage.TotalTokens),
			zap.Bool("estimated", usage.Estimated))
		return text, nil
	})
	if err != nil {
		g.logger.Error("Text generation failed", zap.String("op", op), zap.Error(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return text, nil
}
