package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
	"ugc-studio/pkg/ai"
)

const (
	fallbackHook           = "Generated hook"
	fallbackViralPotential = "medium"
)

type IdeaService interface {
	// Generate asks the model for ideas for a stored brand. The ideas are not saved.
	Generate(ctx context.Context, brandID string, opts prompts.IdeaOptions) ([]model.Idea, error)
	// GenerateForBrand is Generate for a brand that may not be stored. A nil
	// brand produces general ideas.
	GenerateForBrand(ctx context.Context, brand *model.Brand, opts prompts.IdeaOptions) ([]model.Idea, error)
	// SaveMany stores ideas under brandID. Ideas that already carry an id keep it.
	SaveMany(ctx context.Context, brandID string, ideas []model.Idea) ([]model.Idea, error)
	Get(ctx context.Context, id string) (*model.Idea, error)
	List(ctx context.Context, brandID string) ([]model.Idea, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Idea, error)
	SetRanking(ctx context.Context, id string, ranking int) (*model.Idea, error)
	Delete(ctx context.Context, id string) error
}

type ideaServiceImpl struct {
	store     repository.Store
	generator *Generator
	now       func() time.Time
	logger    *zap.Logger
}

func NewIdeaService(store repository.Store, generator *Generator, logger *zap.Logger) IdeaService {
	return &ideaServiceImpl{store: store, generator: generator, now: time.Now, logger: logger.Named("IdeaService")}
}

type ideaPayload struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Hook           string `json:"hook"`
	ViralPotential string `json:"viralPotential"`
	ViralTrend     string `json:"viralTrend"`
	Type           string `json:"type"`
	AIInfluencer   string `json:"aiInfluencer"`
	Frame1         string `json:"frame1"`
	Frame2         string `json:"frame2"`
	Frame3         string `json:"frame3"`
}

func (s *ideaServiceImpl) Generate(ctx context.Context, brandID string, opts prompts.IdeaOptions) ([]model.Idea, error) {
	brand, err := s.store.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return s.GenerateForBrand(ctx, brand, opts)
}

func (s *ideaServiceImpl) GenerateForBrand(ctx context.Context, brand *model.Brand, opts prompts.IdeaOptions) ([]model.Idea, error) {
	if opts.Count <= 0 {
		opts.Count = prompts.DefaultIdeaCount
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	if opts.Type != "" && opts.Type != model.IdeaTypeGeneral && opts.Type != model.IdeaTypeUGC {
		return nil, fmt.Errorf("%w: unknown idea type %q", model.ErrInvalidInput, opts.Type)
	}

	text, err := s.generator.Generate(ctx, "idea generation", prompts.Ideas(brand, opts))
	if err != nil {
		return nil, err
	}

	ideas := parseIdeas(text, opts.Count)
	now := opts.Now.UTC()
	for i := range ideas {
		// provisional id: scripts reference it, SaveMany keeps it
		ideas[i].ID = uuid.NewString()
		if brand != nil {
			ideas[i].BrandID = brand.ID
		}
		if ideas[i].Type == "" {
			ideas[i].Type = defaultIdeaType(opts.Type)
		}
		ideas[i].Enabled = true
		ideas[i].CreatedAt, ideas[i].UpdatedAt = now, now
	}
	s.logger.Info("Ideas generated",
		zap.Int("count", len(ideas)),
		zap.Bool("viral_research", opts.ViralResearch),
		zap.String("type", string(opts.Type)))
	return ideas, nil
}

func defaultIdeaType(t model.IdeaType) model.IdeaType {
	if t == "" {
		return model.IdeaTypeGeneral
	}
	return t
}

// parseIdeas decodes the JSON array. Without one, every non-empty line up to
// count becomes the description of a placeholder idea.
func parseIdeas(text string, count int) []model.Idea {
	parsed := ai.ParseJSON[[]ideaPayload](text, '[')
	if parsed.Structured {
		ideas := make([]model.Idea, 0, len(parsed.Value))
		for _, p := range parsed.Value {
			ideas = append(ideas, model.Idea{
				Title:          p.Title,
				Description:    p.Description,
				Hook:           p.Hook,
				ViralPotential: p.ViralPotential,
				ViralTrend:     p.ViralTrend,
				Type:           model.IdeaType(strings.ToUpper(p.Type)),
				AIInfluencer:   p.AIInfluencer,
				Frame1:         p.Frame1,
				Frame2:         p.Frame2,
				Frame3:         p.Frame3,
			})
		}
		return ideas
	}

	ideas := make([]model.Idea, 0, count)
	for _, line := range strings.Split(parsed.Raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(ideas) == count {
			break
		}
		ideas = append(ideas, model.Idea{
			Title:          fmt.Sprintf("Idea %d", len(ideas)+1),
			Description:    line,
			Hook:           fallbackHook,
			ViralPotential: fallbackViralPotential,
		})
	}
	return ideas
}

func (s *ideaServiceImpl) SaveMany(ctx context.Context, brandID string, ideas []model.Idea) ([]model.Idea, error) {
	if brandID == "" {
		return nil, model.ErrBrandRequired
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("%w: no ideas to save", model.ErrInvalidInput)
	}
	for i := range ideas {
		if strings.TrimSpace(ideas[i].Title) == "" {
			return nil, fmt.Errorf("%w: idea %d has no title", model.ErrInvalidInput, i)
		}
		if err := validateRanking(ideas[i].Ranking); err != nil {
			return nil, err
		}
	}

	saved := make([]model.Idea, 0, len(ideas))
	for _, idea := range ideas {
		idea.BrandID = brandID
		idea.Type = defaultIdeaType(idea.Type)
		if err := s.store.CreateIdea(ctx, &idea); err != nil {
			return saved, fmt.Errorf("failed to save idea %q: %w", idea.Title, err)
		}
		saved = append(saved, idea)
	}
	s.logger.Info("Ideas saved", zap.String("brand_id", brandID), zap.Int("count", len(saved)))
	return saved, nil
}

func (s *ideaServiceImpl) Get(ctx context.Context, id string) (*model.Idea, error) {
	return s.store.GetIdea(ctx, id)
}

func (s *ideaServiceImpl) List(ctx context.Context, brandID string) ([]model.Idea, error) {
	return s.store.ListIdeas(ctx, brandID)
}

func (s *ideaServiceImpl) Update(ctx context.Context, id string, patch map[string]any) (*model.Idea, error) {
	fields, err := normalizeFields(patch, ideaFields)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateIdea(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.GetIdea(ctx, id)
}

func (s *ideaServiceImpl) SetRanking(ctx context.Context, id string, ranking int) (*model.Idea, error) {
	if err := validateRanking(ranking); err != nil {
		return nil, err
	}
	if err := s.store.UpdateIdea(ctx, id, repository.Fields{"ranking": ranking}); err != nil {
		return nil, err
	}
	return s.store.GetIdea(ctx, id)
}

func (s *ideaServiceImpl) Delete(ctx context.Context, id string) error {
	return s.store.DeleteIdea(ctx, id)
}
