package media

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"ugc-studio/internal/model"
)

const GeminiProvider = "gemini-imagen"

// GeminiImageGenerator calls the Imagen models through the Gemini API.
type GeminiImageGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiImageGenerator returns a generator that refuses every call with
// model.ErrNotConfigured when apiKey is empty.
func NewGeminiImageGenerator(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger *zap.Logger) (*GeminiImageGenerator, error) {
	g := &GeminiImageGenerator{
		model:   modelName,
		timeout: timeout,
		logger:  logger.Named("GeminiImageGenerator"),
	}
	if apiKey == "" {
		g.logger.Warn("Image generation API key missing, image calls will be refused")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiImageGenerator) Generate(ctx context.Context, prompt, aspectRatio string) (ImageResult, error) {
	if g.client == nil {
		return ImageResult{}, fmt.Errorf("%w: image API key is empty", model.ErrNotConfigured)
	}

	requestCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateImages(requestCtx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		g.logger.Error("Imagen call failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return ImageResult{}, fmt.Errorf("%w: %v", ErrImageGenerationFailed, err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return ImageResult{}, fmt.Errorf("%w: API returned no image", ErrImageGenerationFailed)
	}

	img := resp.GeneratedImages[0].Image
	contentType := img.MIMEType
	if contentType == "" {
		contentType = http.DetectContentType(img.ImageBytes)
	}
	g.logger.Info("Image generated",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("size_bytes", len(img.ImageBytes)))
	return ImageResult{Data: img.ImageBytes, ContentType: contentType, Provider: GeminiProvider}, nil
}
