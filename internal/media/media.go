// Package media generates shot and character images and videos and stores
// the resulting files.
package media

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrImageGenerationFailed wraps failures of the image provider.
	ErrImageGenerationFailed = errors.New("image generation failed")
	// ErrImageSaveFailed wraps failures of the media store.
	ErrImageSaveFailed = errors.New("image save failed")
)

// ImageResult is the raw output of an image provider.
type ImageResult struct {
	Data        []byte
	ContentType string
	Provider    string
}

// ImageGenerator turns a prompt into image bytes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, aspectRatio string) (ImageResult, error)
}

// Store persists generated files and returns their public URL.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// VideoRequest parameterizes a video generation call.
type VideoRequest struct {
	Duration          string
	ReferenceImageURL string
}

// VideoResult is what a video provider returns.
type VideoResult struct {
	VideoURL     string
	ThumbnailURL string
	Duration     string
	Provider     string
}

// VideoGenerator turns a prompt into a hosted video.
type VideoGenerator interface {
	Generate(ctx context.Context, prompt string, req VideoRequest) (VideoResult, error)
}

// ExtensionFor maps an image content type to a file extension.
func ExtensionFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
