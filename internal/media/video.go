package media

import (
	"context"

	"go.uber.org/zap"
)

const (
	StubVideoProvider    = "veo-3.1"
	PlaceholderVideoURL  = "https://placeholder.com/video.mp4"
	PlaceholderThumbnail = "https://placeholder.com/thumbnail.jpg"
)

// StubVideoGenerator stands in for the video provider: it logs the request and
// returns placeholder URLs without any network call.
type StubVideoGenerator struct {
	defaultDuration string
	logger          *zap.Logger
}

func NewStubVideoGenerator(defaultDuration string, logger *zap.Logger) *StubVideoGenerator {
	return &StubVideoGenerator{defaultDuration: defaultDuration, logger: logger.Named("StubVideoGenerator")}
}

func (g *StubVideoGenerator) Generate(ctx context.Context, prompt string, req VideoRequest) (VideoResult, error) {
	if err := ctx.Err(); err != nil {
		return VideoResult{}, err
	}
	duration := req.Duration
	if duration == "" {
		duration = g.defaultDuration
	}
	g.logger.Info("[STUB] Would generate video",
		zap.Int("prompt_length", len(prompt)),
		zap.String("duration", duration),
		zap.Bool("has_reference_image", req.ReferenceImageURL != ""))
	return VideoResult{
		VideoURL:     PlaceholderVideoURL,
		ThumbnailURL: PlaceholderThumbnail,
		Duration:     duration,
		Provider:     StubVideoProvider,
	}, nil
}
