package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
	"ugc-studio/pkg/ai"
)

type AnalysisService interface {
	// Enhance generates and stores the analysis of a stored brand.
	Enhance(ctx context.Context, brandID string) (*model.BrandAnalysis, error)
	// Analyze generates an analysis without storing it.
	Analyze(ctx context.Context, brand model.Brand) (*model.BrandAnalysis, error)
	Get(ctx context.Context, brandID string) (*model.BrandAnalysis, error)
}

type analysisServiceImpl struct {
	store     repository.Store
	generator *Generator
	logger    *zap.Logger
}

func NewAnalysisService(store repository.Store, generator *Generator, logger *zap.Logger) AnalysisService {
	return &analysisServiceImpl{store: store, generator: generator, logger: logger.Named("AnalysisService")}
}

// analysisPayload is the JSON object the research prompt asks for.
type analysisPayload struct {
	ValueAnalysis            string   `json:"valueAnalysis"`
	AudienceInsights         string   `json:"audienceInsights"`
	PainPointRecommendations string   `json:"painPointRecommendations"`
	BrandPositioning         string   `json:"brandPositioning"`
	UGCOpportunities         []string `json:"ugcOpportunities"`
}

func (s *analysisServiceImpl) Enhance(ctx context.Context, brandID string) (*model.BrandAnalysis, error) {
	brand, err := s.store.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	analysis, err := s.Analyze(ctx, *brand)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save brand analysis: %w", err)
	}
	return analysis, nil
}

func (s *analysisServiceImpl) Analyze(ctx context.Context, brand model.Brand) (*model.BrandAnalysis, error) {
	if !brand.HasResearch() {
		return nil, fmt.Errorf("%w: uvp, audience and pain_points are required for research", model.ErrInvalidInput)
	}
	text, err := s.generator.Generate(ctx, "brand research", prompts.BrandResearch(brand))
	if err != nil {
		return nil, err
	}
	analysis := parseAnalysis(text)
	analysis.BrandID = brand.ID
	if !analysis.Structured {
		s.logger.Warn("Analysis response had no usable JSON, keeping raw text", zap.String("brand_id", brand.ID))
	}
	return analysis, nil
}

func (s *analysisServiceImpl) Get(ctx context.Context, brandID string) (*model.BrandAnalysis, error) {
	return s.store.GetAnalysis(ctx, brandID)
}

// parseAnalysis decodes the completion. Without JSON the whole text becomes
// ValueAnalysis and the other fields stay empty.
func parseAnalysis(text string) *model.BrandAnalysis {
	parsed := ai.ParseJSON[analysisPayload](text, '{')
	if !parsed.Structured {
		return &model.BrandAnalysis{
			ValueAnalysis:    parsed.Raw,
			UGCOpportunities: []string{},
		}
	}
	p := parsed.Value
	if p.UGCOpportunities == nil {
		p.UGCOpportunities = []string{}
	}
	return &model.BrandAnalysis{
		ValueAnalysis:            p.ValueAnalysis,
		AudienceInsights:         p.AudienceInsights,
		PainPointRecommendations: p.PainPointRecommendations,
		BrandPositioning:         p.BrandPositioning,
		UGCOpportunities:         p.UGCOpportunities,
		Structured:               true,
	}
}
