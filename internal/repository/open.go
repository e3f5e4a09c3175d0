package repository

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"ugc-studio/internal/config"
	"ugc-studio/internal/model"
)

const (
	FallbackNone   = "none"
	FallbackMemory = "memory"
)

// Open picks the backend: Firestore when app is set, otherwise the configured
// fallback. With no fallback every call fails with model.ErrNotConfigured.
func Open(ctx context.Context, app *firebase.App, cfg config.FirebaseConfig, logger *zap.Logger) (Store, error) {
	if app != nil {
		store, err := NewFirestoreStore(ctx, app, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Firestore storage", zap.String("project_id", cfg.ProjectID))
		return store, nil
	}

	switch strings.ToLower(cfg.StorageFallback) {
	case FallbackMemory:
		logger.Warn("Firestore is not configured, keeping data in memory; it is lost on restart")
		return NewMemoryStore(), nil
	case FallbackNone, "":
		logger.Warn("Firestore is not configured, storage calls will be refused")
		return unconfiguredStore{}, nil
	default:
		return nil, fmt.Errorf("unknown storage fallback %q", cfg.StorageFallback)
	}
}

// unconfiguredStore refuses every call.
type unconfiguredStore struct{}

func errNotConfigured() error {
	return fmt.Errorf("%w: Firestore (FIREBASE_PROJECT_ID) is not set", model.ErrNotConfigured)
}

func (unconfiguredStore) Close() error {
	return nil
}

func (unconfiguredStore) CreateBrand(context.Context, *model.Brand) error {
	return errNotConfigured()
}
func (unconfiguredStore) GetBrand(context.Context, string) (*model.Brand, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) ListBrands(context.Context) ([]model.Brand, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) UpdateBrand(context.Context, string, Fields) error {
	return errNotConfigured()
}
func (unconfiguredStore) DeleteBrand(context.Context, string) error {
	return errNotConfigured()
}

func (unconfiguredStore) SaveAnalysis(context.Context, *model.BrandAnalysis) error {
	return errNotConfigured()
}
func (unconfiguredStore) GetAnalysis(context.Context, string) (*model.BrandAnalysis, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) DeleteAnalysis(context.Context, string) error {
	return errNotConfigured()
}

func (unconfiguredStore) CreateIdea(context.Context, *model.Idea) error {
	return errNotConfigured()
}
func (unconfiguredStore) GetIdea(context.Context, string) (*model.Idea, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) ListIdeas(context.Context, string) ([]model.Idea, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) UpdateIdea(context.Context, string, Fields) error {
	return errNotConfigured()
}
func (unconfiguredStore) DeleteIdea(context.Context, string) error {
	return errNotConfigured()
}

func (unconfiguredStore) CreateScript(context.Context, *model.Script) error {
	return errNotConfigured()
}
func (unconfiguredStore) GetScript(context.Context, string) (*model.Script, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) ListScripts(context.Context, string) ([]model.Script, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) UpdateScript(context.Context, string, Fields) error {
	return errNotConfigured()
}
func (unconfiguredStore) DeleteScript(context.Context, string) error {
	return errNotConfigured()
}

func (unconfiguredStore) CreateMedia(context.Context, *model.GeneratedMedia) error {
	return errNotConfigured()
}
func (unconfiguredStore) ListMedia(context.Context, string) ([]model.GeneratedMedia, error) {
	return nil, errNotConfigured()
}
func (unconfiguredStore) DeleteMedia(context.Context, string) error {
	return errNotConfigured()
}
