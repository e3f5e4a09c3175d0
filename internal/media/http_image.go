package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"ugc-studio/internal/model"
)

const HTTPProvider = "http"

// httpImageRequest is the body posted to the image endpoint.
type httpImageRequest struct {
	Prompt string `json:"prompt"`
	Ratio  string `json:"ratio"`
}

// HTTPImageGenerator posts {prompt, ratio} to <baseURL>/generate and reads
// the image from the response body.
type HTTPImageGenerator struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPImageGenerator(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *HTTPImageGenerator {
	return &HTTPImageGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("HTTPImageGenerator"),
	}
}

func (g *HTTPImageGenerator) Generate(ctx context.Context, prompt, aspectRatio string) (ImageResult, error) {
	if g.baseURL == "" {
		return ImageResult{}, fmt.Errorf("%w: image API URL (IMAGE_API_URL) is empty", model.ErrNotConfigured)
	}
	log := g.logger.With(zap.String("api_url", g.baseURL), zap.String("ratio", aspectRatio))

	body, err := json.Marshal(httpImageRequest{Prompt: prompt, Ratio: aspectRatio})
	if err != nil {
		return ImageResult{}, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	endpointURL := g.baseURL + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return ImageResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/*")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	log.Debug("Sending request to image API")
	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("Image API request failed", zap.Error(err))
		return ImageResult{}, fmt.Errorf("%w: http request failed: %v", ErrImageGenerationFailed, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Error("Image API returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", data))
		return ImageResult{}, fmt.Errorf("%w: API returned status %d: %s", ErrImageGenerationFailed, resp.StatusCode, string(data))
	}
	if readErr != nil {
		return ImageResult{}, fmt.Errorf("%w: failed to read response body: %v", ErrImageGenerationFailed, readErr)
	}
	if len(data) == 0 {
		return ImageResult{}, fmt.Errorf("%w: API returned empty data", ErrImageGenerationFailed)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	log.Info("Image data received", zap.Int("size_bytes", len(data)), zap.String("content_type", contentType))
	return ImageResult{Data: data, ContentType: contentType, Provider: HTTPProvider}, nil
}
