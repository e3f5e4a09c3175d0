package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ugc-studio/internal/model"
	"ugc-studio/internal/repository"
)

// DeleteOptions controls BrandService.Delete. Without Cascade the brand's
// ideas, scripts and analysis are left in place.
type DeleteOptions struct {
	Cascade bool
}

type BrandService interface {
	Create(ctx context.Context, brand *model.Brand) (*model.Brand, error)
	Get(ctx context.Context, id string) (*model.Brand, error)
	List(ctx context.Context) ([]model.Brand, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Brand, error)
	Delete(ctx context.Context, id string, opts DeleteOptions) error
}

type brandServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

func NewBrandService(store repository.Store, logger *zap.Logger) BrandService {
	return &brandServiceImpl{store: store, logger: logger.Named("BrandService")}
}

func (s *brandServiceImpl) Create(ctx context.Context, brand *model.Brand) (*model.Brand, error) {
	if brand == nil || strings.TrimSpace(brand.Name) == "" {
		return nil, fmt.Errorf("%w: brand_name is required", model.ErrInvalidInput)
	}
	if err := s.store.CreateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	s.logger.Info("Brand created", zap.String("brand_id", brand.ID), zap.String("brand_name", brand.Name))
	return brand, nil
}

func (s *brandServiceImpl) Get(ctx context.Context, id string) (*model.Brand, error) {
	return s.store.GetBrand(ctx, id)
}

func (s *brandServiceImpl) List(ctx context.Context) ([]model.Brand, error) {
	return s.store.ListBrands(ctx)
}

func (s *brandServiceImpl) Update(ctx context.Context, id string, patch map[string]any) (*model.Brand, error) {
	fields, err := normalizeFields(patch, brandFields)
	if err != nil {
		return nil, err
	}
	if name, ok := fields["brand_name"]; ok && strings.TrimSpace(name.(string)) == "" {
		return nil, fmt.Errorf("%w: brand_name cannot be empty", model.ErrInvalidInput)
	}
	if err := s.store.UpdateBrand(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.GetBrand(ctx, id)
}

func (s *brandServiceImpl) Delete(ctx context.Context, id string, opts DeleteOptions) error {
	if _, err := s.store.GetBrand(ctx, id); err != nil {
		return err
	}

	var errs []error
	if opts.Cascade {
		errs = s.deleteOwned(ctx, id)
	}
	if err := s.store.DeleteBrand(ctx, id); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("Brand delete finished with errors", zap.String("brand_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete brand %s: %w", id, err)
	}
	s.logger.Info("Brand deleted", zap.String("brand_id", id), zap.Bool("cascade", opts.Cascade))
	return nil
}

// deleteOwned removes everything that references the brand. Each delete is
// independent; failures are collected and the rest still run.
func (s *brandServiceImpl) deleteOwned(ctx context.Context, brandID string) []error {
	var errs []error

	if err := s.store.DeleteAnalysis(ctx, brandID); err != nil && !repository.IsNotFound(err) {
		errs = append(errs, err)
	}

	ideas, err := s.store.ListIdeas(ctx, brandID)
	if err != nil {
		errs = append(errs, err)
	}
	for _, idea := range ideas {
		if err := s.store.DeleteIdea(ctx, idea.ID); err != nil && !repository.IsNotFound(err) {
			errs = append(errs, err)
		}
	}

	scripts, err := s.store.ListScripts(ctx, brandID)
	if err != nil {
		errs = append(errs, err)
	}
	for _, script := range scripts {
		errs = append(errs, deleteScriptMedia(ctx, s.store, script.ID)...)
		if err := s.store.DeleteScript(ctx, script.ID); err != nil && !repository.IsNotFound(err) {
			errs = append(errs, err)
		}
	}

	s.logger.Debug("Cascade delete done",
		zap.String("brand_id", brandID),
		zap.Int("ideas", len(ideas)),
		zap.Int("scripts", len(scripts)),
		zap.Int("errors", len(errs)))
	return errs
}

func deleteScriptMedia(ctx context.Context, store repository.Store, scriptID string) []error {
	media, err := store.ListMedia(ctx, scriptID)
	if err != nil {
		return []error{err}
	}
	var errs []error
	for _, m := range media {
		if err := store.DeleteMedia(ctx, m.ID); err != nil && !repository.IsNotFound(err) {
			errs = append(errs, err)
		}
	}
	return errs
}
