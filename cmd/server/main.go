package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"ugc-studio/internal/api"
	"ugc-studio/internal/breakdown"
	"ugc-studio/internal/config"
	"ugc-studio/internal/logger"
	"ugc-studio/internal/media"
	"ugc-studio/internal/repository"
	"ugc-studio/internal/service"
	"ugc-studio/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting ugc-studio server...")
	cfg.LogSummary(appLogger)

	ctx := context.Background()

	var app *firebase.App
	if cfg.Firebase.Configured() {
		app, err = repository.NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			appLogger.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
	}

	store, err := repository.Open(ctx, app, cfg.Firebase, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Error("Error closing storage", zap.Error(err))
		}
	}()

	files, mediaDir, err := newMediaStore(ctx, cfg, app, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media store", zap.Error(err))
	}
	images, err := newImageGenerator(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize image generator", zap.Error(err))
	}
	videos := media.NewStubVideoGenerator(cfg.Media.VideoDuration, appLogger)

	client, err := ai.NewClient(ctx, cfg.AI.ClientConfig(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	generator := service.NewGenerator(client, cfg.AI.RetryPolicy(), cfg.AI.GenerationParams(), appLogger)
	extractor := breakdown.New()

	brandService := service.NewBrandService(store, appLogger)
	analysisService := service.NewAnalysisService(store, generator, appLogger)
	ideaService := service.NewIdeaService(store, generator, appLogger)
	scriptService := service.NewScriptService(store, generator, extractor, appLogger)
	mediaService := service.NewMediaService(store, scriptService, images, videos, files,
		service.MediaDefaults{AspectRatio: cfg.Media.DefaultAspectRatio, VideoDuration: cfg.Media.VideoDuration},
		appLogger)
	pipelineService := service.NewPipelineService(store, analysisService, ideaService, scriptService,
		service.PipelineOptions{IdeaCount: cfg.Pipeline.IdeaCount, ScriptCount: cfg.Pipeline.ScriptCount},
		appLogger)

	handler := api.NewHandler(api.Services{
		Brands:    brandService,
		Analysis:  analysisService,
		Ideas:     ideaService,
		Scripts:   scriptService,
		Media:     mediaService,
		Pipeline:  pipelineService,
		Extractor: extractor,
	}, cfg.Server.CORSAllowedOrigins, appLogger)

	router := api.NewRouter(handler, api.RouterConfig{
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		MediaDir:       mediaDir,
		EnableMetrics:  true,
		Debug:          cfg.AppEnv == "development",
	}, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newMediaStore returns the configured store and, for the local store, the
// directory the router serves under /media.
func newMediaStore(ctx context.Context, cfg *config.Config, app *firebase.App, logger *zap.Logger) (media.Store, string, error) {
	switch strings.ToLower(cfg.Media.Store) {
	case "firebase":
		if app == nil || cfg.Firebase.StorageBucket == "" {
			return nil, "", errors.New("MEDIA_STORE=firebase requires FIREBASE_PROJECT_ID and FIREBASE_STORAGE_BUCKET")
		}
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create storage client: %w", err)
		}
		return media.NewFirebaseStore(client, cfg.Firebase.StorageBucket, logger), "", nil
	case "local", "":
		store, err := media.NewLocalStore(cfg.Media.ImageSavePath, cfg.Media.ImagePublicBaseURL, logger)
		if err != nil {
			return nil, "", err
		}
		return store, cfg.Media.ImageSavePath, nil
	default:
		return nil, "", fmt.Errorf("unknown media store %q", cfg.Media.Store)
	}
}

func newImageGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (media.ImageGenerator, error) {
	switch strings.ToLower(cfg.Media.ImageProvider) {
	case "http":
		return media.NewHTTPImageGenerator(cfg.Media.ImageAPIURL, cfg.Media.ImageAPIKey, cfg.Media.ImageTimeout, logger), nil
	case "gemini", "":
		key := cfg.Media.ImageAPIKey
		if key == "" {
			key = cfg.AI.APIKey
		}
		return media.NewGeminiImageGenerator(ctx, key, cfg.Media.ImageModel, cfg.Media.ImageTimeout, logger)
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.Media.ImageProvider)
	}
}
