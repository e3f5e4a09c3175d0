package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"ugc-studio/internal/breakdown"
	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
)

// GenerateScriptRequest names the concept source. IdeaID wins over Concept
// when both are set; BrandID defaults to the idea's brand.
type GenerateScriptRequest struct {
	BrandID string `json:"brandId"`
	IdeaID  string `json:"ideaId"`
	Concept string `json:"concept"`
}

// DraftScriptRequest asks for a script built without an AI call, either from
// a named template or from the concept.
type DraftScriptRequest struct {
	BrandID  string `json:"brandId"`
	Concept  string `json:"concept"`
	Template string `json:"template"`
	Seed     *int64 `json:"seed,omitempty"`
}

type ScriptService interface {
	// Generate writes a script with the text model. The script is not saved.
	Generate(ctx context.Context, req GenerateScriptRequest) (*model.Script, error)
	// GenerateFor is Generate with the inputs already loaded.
	GenerateFor(ctx context.Context, concept string, brand *model.Brand, idea *model.Idea) (*model.Script, error)
	Draft(ctx context.Context, req DraftScriptRequest) (*model.Script, error)
	Save(ctx context.Context, script *model.Script) (*model.Script, error)
	Get(ctx context.Context, id string) (*model.Script, error)
	List(ctx context.Context, brandID string) ([]model.Script, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Script, error)
	SetRanking(ctx context.Context, id string, ranking int) (*model.Script, error)
	Delete(ctx context.Context, id string) error
	// Breakdown extracts shots and characters from a stored script and
	// attaches the media generated for them.
	Breakdown(ctx context.Context, scriptID string) (breakdown.Result, error)
}

type scriptServiceImpl struct {
	store     repository.Store
	generator *Generator
	extractor *breakdown.Extractor
	now       func() time.Time
	logger    *zap.Logger
}

func NewScriptService(store repository.Store, generator *Generator, extractor *breakdown.Extractor, logger *zap.Logger) ScriptService {
	if extractor == nil {
		extractor = breakdown.New()
	}
	return &scriptServiceImpl{
		store:     store,
		generator: generator,
		extractor: extractor,
		now:       time.Now,
		logger:    logger.Named("ScriptService"),
	}
}

func (s *scriptServiceImpl) Generate(ctx context.Context, req GenerateScriptRequest) (*model.Script, error) {
	var idea *model.Idea
	concept := strings.TrimSpace(req.Concept)
	brandID := req.BrandID

	if req.IdeaID != "" {
		var err error
		idea, err = s.store.GetIdea(ctx, req.IdeaID)
		if err != nil {
			return nil, err
		}
		concept = prompts.IdeaConcept(*idea)
		if brandID == "" {
			brandID = idea.BrandID
		}
	}
	if concept == "" {
		return nil, fmt.Errorf("%w: concept or ideaId is required", model.ErrInvalidInput)
	}

	var brand *model.Brand
	if brandID != "" {
		var err error
		brand, err = s.store.GetBrand(ctx, brandID)
		if err != nil {
			return nil, err
		}
	}
	return s.GenerateFor(ctx, concept, brand, idea)
}

func (s *scriptServiceImpl) GenerateFor(ctx context.Context, concept string, brand *model.Brand, idea *model.Idea) (*model.Script, error) {
	content, err := s.generator.Generate(ctx, "script generation", prompts.Script(concept, brand, idea))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	script := &model.Script{
		Concept:         concept,
		Content:         content,
		GeneratedWithAI: true,
		Enabled:         true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if brand != nil {
		script.BrandID = brand.ID
	}
	if idea != nil {
		script.IdeaID = idea.ID
		script.IdeaTitle = idea.Title
	}
	s.logger.Info("Script generated",
		zap.String("brand_id", script.BrandID),
		zap.String("idea_id", script.IdeaID),
		zap.Int("length", len(content)))
	return script, nil
}

func (s *scriptServiceImpl) Draft(_ context.Context, req DraftScriptRequest) (*model.Script, error) {
	var body, concept string
	if req.Template != "" {
		tpl, ok := prompts.FindTemplate(req.Template)
		if !ok {
			return nil, fmt.Errorf("%w: unknown template %q", model.ErrInvalidInput, req.Template)
		}
		body, concept = prompts.TemplateScript(tpl), tpl.Concept
	} else {
		concept = strings.TrimSpace(req.Concept)
		if concept == "" {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidInput, prompts.EmptyConceptMessage)
		}
		var rng *rand.Rand
		if req.Seed != nil {
			rng = rand.New(rand.NewSource(*req.Seed))
		}
		body = prompts.OfflineScript(concept, rng)
	}

	now := s.now().UTC()
	return &model.Script{
		BrandID:   req.BrandID,
		Concept:   concept,
		Content:   prompts.VideoPromptHeader + "\n" + body,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *scriptServiceImpl) Save(ctx context.Context, script *model.Script) (*model.Script, error) {
	if script == nil || strings.TrimSpace(script.Content) == "" {
		return nil, fmt.Errorf("%w: script content is required", model.ErrInvalidInput)
	}
	if script.BrandID == "" {
		return nil, model.ErrBrandRequired
	}
	if err := validateRanking(script.Ranking); err != nil {
		return nil, err
	}
	if err := s.store.CreateScript(ctx, script); err != nil {
		return nil, fmt.Errorf("failed to save script: %w", err)
	}
	s.logger.Info("Script saved", zap.String("script_id", script.ID), zap.String("brand_id", script.BrandID))
	return script, nil
}

func (s *scriptServiceImpl) Get(ctx context.Context, id string) (*model.Script, error) {
	return s.store.GetScript(ctx, id)
}

func (s *scriptServiceImpl) List(ctx context.Context, brandID string) ([]model.Script, error) {
	return s.store.ListScripts(ctx, brandID)
}

func (s *scriptServiceImpl) Update(ctx context.Context, id string, patch map[string]any) (*model.Script, error) {
	fields, err := normalizeFields(patch, scriptFields)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateScript(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.GetScript(ctx, id)
}

func (s *scriptServiceImpl) SetRanking(ctx context.Context, id string, ranking int) (*model.Script, error) {
	if err := validateRanking(ranking); err != nil {
		return nil, err
	}
	if err := s.store.UpdateScript(ctx, id, repository.Fields{"ranking": ranking}); err != nil {
		return nil, err
	}
	return s.store.GetScript(ctx, id)
}

func (s *scriptServiceImpl) Delete(ctx context.Context, id string) error {
	return s.store.DeleteScript(ctx, id)
}

func (s *scriptServiceImpl) Breakdown(ctx context.Context, scriptID string) (breakdown.Result, error) {
	script, err := s.store.GetScript(ctx, scriptID)
	if err != nil {
		return breakdown.Result{}, err
	}
	result := s.extractor.Extract(script.Content)
	if !result.Found() {
		return result, nil
	}
	media, err := s.store.ListMedia(ctx, scriptID)
	if err != nil {
		return breakdown.Result{}, fmt.Errorf("failed to load media for script %s: %w", scriptID, err)
	}
	return result.Attach(media), nil
}
