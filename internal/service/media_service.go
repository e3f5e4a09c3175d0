package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ugc-studio/internal/breakdown"
	"ugc-studio/internal/media"
	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
)

// ImageOptions tune a shot or character image call. Empty AspectRatio uses
// the configured default.
type ImageOptions struct {
	AspectRatio string `json:"aspectRatio"`
}

// VideoOptions tune a shot video call. Without ReferenceImageURL the shot's
// generated image, if any, is used.
type VideoOptions struct {
	Duration          string `json:"duration"`
	ReferenceImageURL string `json:"referenceImageUrl"`
}

type MediaService interface {
	GenerateShotImage(ctx context.Context, scriptID string, index int, opts ImageOptions) (*model.GeneratedMedia, error)
	GenerateCharacterImage(ctx context.Context, scriptID string, index int, opts ImageOptions) (*model.GeneratedMedia, error)
	GenerateShotVideo(ctx context.Context, scriptID string, index int, opts VideoOptions) (*model.GeneratedMedia, error)
	ListForScript(ctx context.Context, scriptID string) ([]model.GeneratedMedia, error)
}

// MediaDefaults come from the media configuration.
type MediaDefaults struct {
	AspectRatio   string
	VideoDuration string
}

type mediaServiceImpl struct {
	store    repository.Store
	scripts  ScriptService
	images   media.ImageGenerator
	videos   media.VideoGenerator
	files    media.Store
	defaults MediaDefaults
	logger   *zap.Logger
}

func NewMediaService(
	store repository.Store,
	scripts ScriptService,
	images media.ImageGenerator,
	videos media.VideoGenerator,
	files media.Store,
	defaults MediaDefaults,
	logger *zap.Logger,
) MediaService {
	return &mediaServiceImpl{
		store:    store,
		scripts:  scripts,
		images:   images,
		videos:   videos,
		files:    files,
		defaults: defaults,
		logger:   logger.Named("MediaService"),
	}
}

func (s *mediaServiceImpl) shots(ctx context.Context, scriptID string) (breakdown.Result, error) {
	result, err := s.scripts.Breakdown(ctx, scriptID)
	if err != nil {
		return result, err
	}
	if !result.Found() {
		return result, fmt.Errorf("%w: %s", model.ErrNoShots, result.Reason)
	}
	return result, nil
}

func (s *mediaServiceImpl) GenerateShotImage(ctx context.Context, scriptID string, index int, opts ImageOptions) (*model.GeneratedMedia, error) {
	result, err := s.shots(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(result.Shots) {
		return nil, fmt.Errorf("%w: shot %d of %d", model.ErrNotFound, index, len(result.Shots))
	}
	return s.generateImage(ctx, scriptID, model.MediaTypeScene, index, result.Shots[index].Content, opts)
}

func (s *mediaServiceImpl) GenerateCharacterImage(ctx context.Context, scriptID string, index int, opts ImageOptions) (*model.GeneratedMedia, error) {
	result, err := s.shots(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(result.Characters) {
		return nil, fmt.Errorf("%w: character %d of %d", model.ErrNotFound, index, len(result.Characters))
	}
	return s.generateImage(ctx, scriptID, model.MediaTypeCharacter, index, result.Characters[index].Description, opts)
}

func (s *mediaServiceImpl) generateImage(ctx context.Context, scriptID string, kind model.MediaType, index int, description string, opts ImageOptions) (*model.GeneratedMedia, error) {
	prompt := prompts.InfluencerImage(description)
	ratio := opts.AspectRatio
	if ratio == "" {
		ratio = s.defaults.AspectRatio
	}

	start := time.Now()
	image, err := s.images.Generate(ctx, prompt, ratio)
	if err != nil {
		mediaGeneratedTotal.WithLabelValues(string(kind), "error").Inc()
		s.logger.Error("Image generation failed", zap.String("script_id", scriptID), zap.String("type", string(kind)), zap.Int("index", index), zap.Error(err))
		return nil, err
	}

	name := fmt.Sprintf("scripts/%s/%s-%d-%s%s", scriptID, kind, index, uuid.NewString(), media.ExtensionFor(image.ContentType))
	url, err := s.files.Put(ctx, name, image.ContentType, image.Data)
	if err != nil {
		mediaGeneratedTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, fmt.Errorf("%w: %v", media.ErrImageSaveFailed, err)
	}

	record := &model.GeneratedMedia{
		ScriptID: scriptID,
		Type:     kind,
		Index:    index,
		ImageURL: url,
		Prompt:   prompt,
		Provider: image.Provider,
	}
	if err := s.store.CreateMedia(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save media record: %w", err)
	}
	mediaGeneratedTotal.WithLabelValues(string(kind), "success").Inc()
	s.logger.Info("Image generated",
		zap.String("script_id", scriptID),
		zap.String("type", string(kind)),
		zap.Int("index", index),
		zap.String("url", url),
		zap.Duration("duration", time.Since(start)))
	return record, nil
}

func (s *mediaServiceImpl) GenerateShotVideo(ctx context.Context, scriptID string, index int, opts VideoOptions) (*model.GeneratedMedia, error) {
	result, err := s.shots(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(result.Shots) {
		return nil, fmt.Errorf("%w: shot %d of %d", model.ErrNotFound, index, len(result.Shots))
	}
	shot := result.Shots[index]

	ref := opts.ReferenceImageURL
	if ref == "" && shot.ImageURL != nil {
		ref = *shot.ImageURL
	}
	duration := opts.Duration
	if duration == "" {
		duration = s.defaults.VideoDuration
	}
	prompt := prompts.VideoFrame(shot.Content, prompts.VideoOptions{Duration: duration, ReferenceImageURL: ref})

	video, err := s.videos.Generate(ctx, prompt, media.VideoRequest{Duration: duration, ReferenceImageURL: ref})
	if err != nil {
		mediaGeneratedTotal.WithLabelValues("video", "error").Inc()
		s.logger.Error("Video generation failed", zap.String("script_id", scriptID), zap.Int("index", index), zap.Error(err))
		return nil, err
	}

	record := &model.GeneratedMedia{
		ScriptID:     scriptID,
		Type:         model.MediaTypeScene,
		Index:        index,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Prompt:       prompt,
		Provider:     video.Provider,
	}
	if err := s.store.CreateMedia(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save media record: %w", err)
	}
	mediaGeneratedTotal.WithLabelValues("video", "success").Inc()
	return record, nil
}

func (s *mediaServiceImpl) ListForScript(ctx context.Context, scriptID string) ([]model.GeneratedMedia, error) {
	if _, err := s.store.GetScript(ctx, scriptID); err != nil {
		return nil, err
	}
	return s.store.ListMedia(ctx, scriptID)
}
