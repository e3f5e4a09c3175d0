package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ugc-studio/internal/breakdown"
	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
)

func TestBrandService_CreateRequiresName(t *testing.T) {
	f := newFixture(t)
	svc := NewBrandService(f.store, zap.NewNop())

	_, err := svc.Create(context.Background(), &model.Brand{UVP: "x"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	b, err := svc.Create(context.Background(), &model.Brand{Name: "Glowly"})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)

	updated, err := svc.Update(context.Background(), b.ID, map[string]any{"brand_voice": "playful"})
	require.NoError(t, err)
	assert.Equal(t, "playful", updated.BrandVoice)

	_, err = svc.Update(context.Background(), b.ID, map[string]any{"brand_name": "  "})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestBrandService_DeleteKeepsOwnedDocumentsByDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewBrandService(f.store, zap.NewNop())
	b := f.brand(t)
	require.NoError(t, f.store.CreateIdea(ctx, &model.Idea{BrandID: b.ID, Title: "x"}))

	require.NoError(t, svc.Delete(ctx, b.ID, DeleteOptions{}))

	ideas, err := f.store.ListIdeas(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, ideas, 1)
	require.ErrorIs(t, svc.Delete(ctx, b.ID, DeleteOptions{}), model.ErrNotFound)
}

func TestBrandService_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewBrandService(f.store, zap.NewNop())
	b := f.brand(t)
	other := &model.Brand{Name: "Other"}
	require.NoError(t, f.store.CreateBrand(ctx, other))

	require.NoError(t, f.store.SaveAnalysis(ctx, &model.BrandAnalysis{BrandID: b.ID}))
	require.NoError(t, f.store.CreateIdea(ctx, &model.Idea{BrandID: b.ID, Title: "mine"}))
	require.NoError(t, f.store.CreateIdea(ctx, &model.Idea{BrandID: other.ID, Title: "theirs"}))
	script := &model.Script{BrandID: b.ID, Content: "c"}
	require.NoError(t, f.store.CreateScript(ctx, script))
	require.NoError(t, f.store.CreateMedia(ctx, &model.GeneratedMedia{ScriptID: script.ID, Type: model.MediaTypeScene}))

	require.NoError(t, svc.Delete(ctx, b.ID, DeleteOptions{Cascade: true}))

	_, err := f.store.GetAnalysis(ctx, b.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	ideas, _ := f.store.ListIdeas(ctx, "")
	require.Len(t, ideas, 1)
	assert.Equal(t, "theirs", ideas[0].Title)
	scripts, _ := f.store.ListScripts(ctx, b.ID)
	assert.Empty(t, scripts)
	media, _ := f.store.ListMedia(ctx, script.ID)
	assert.Empty(t, media)
}

func TestAnalysisService_EnhanceStructured(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalysisService(f.store, f.gen, zap.NewNop())
	b := f.brand(t)
	f.expect("Unique value proposition (UVP): Vitamin C serum", "```json\n{\"valueAnalysis\": \"Strong UVP\", \"brandPositioning\": \"Premium\", \"ugcOpportunities\": [\"GRWM\", \"Before/After\"]}\n```")

	analysis, err := svc.Enhance(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, analysis.Structured)
	assert.Equal(t, "Strong UVP", analysis.ValueAnalysis)
	assert.Equal(t, []string{"GRWM", "Before/After"}, analysis.UGCOpportunities)

	stored, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premium", stored.BrandPositioning)
	assert.Equal(t, b.ID, stored.BrandID)
}

func TestAnalysisService_FallbackKeepsRawText(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalysisService(f.store, f.gen, zap.NewNop())
	b := f.brand(t)
	raw := "The brand has a clear promise but no proof points."
	f.expect("Brand name: Glowly", raw)

	analysis, err := svc.Enhance(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, analysis.Structured)
	assert.Equal(t, raw, analysis.ValueAnalysis)
	assert.Empty(t, analysis.AudienceInsights)
	assert.Empty(t, analysis.PainPointRecommendations)
	assert.Empty(t, analysis.BrandPositioning)
	assert.NotNil(t, analysis.UGCOpportunities)
	assert.Empty(t, analysis.UGCOpportunities)
}

func TestAnalysisService_RequiresResearchFields(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalysisService(f.store, f.gen, zap.NewNop())

	_, err := svc.Analyze(context.Background(), model.Brand{Name: "Empty"})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	f.client.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.Enhance(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestIdeaService_GenerateParsesAndDefaults(t *testing.T) {
	f := newFixture(t)
	svc := NewIdeaService(f.store, f.gen, zap.NewNop())
	b := f.brand(t)
	f.expect("Generate 3 creative, viral ideas", ideasJSON)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ideas, err := svc.Generate(context.Background(), b.ID, prompts.IdeaOptions{Count: 3, Now: now})
	require.NoError(t, err)
	require.Len(t, ideas, 3)

	assert.Equal(t, "Morning glow", ideas[0].Title)
	assert.Equal(t, "Wait for it...", ideas[0].Hook)
	assert.Equal(t, model.IdeaTypeGeneral, ideas[0].Type)
	assert.Equal(t, model.IdeaTypeUGC, ideas[2].Type)
	assert.Equal(t, "Bathroom selfie", ideas[2].Frame1)
	for _, idea := range ideas {
		assert.Equal(t, b.ID, idea.BrandID)
		assert.True(t, idea.Enabled)
		assert.NotEmpty(t, idea.ID)
		assert.Equal(t, now, idea.CreatedAt)
	}
	assert.NotEqual(t, ideas[0].ID, ideas[1].ID)

	stored, err := svc.List(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestIdeaService_GenerateFallbackLines(t *testing.T) {
	f := newFixture(t)
	svc := NewIdeaService(f.store, f.gen, zap.NewNop())
	f.expect("Generate general UGC content ideas.", "First idea line\n\n  Second idea line  \nThird\nFourth")

	ideas, err := svc.GenerateForBrand(context.Background(), nil, prompts.IdeaOptions{Count: 2})
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "Idea 1", ideas[0].Title)
	assert.Equal(t, "First idea line", ideas[0].Description)
	assert.Equal(t, "Idea 2", ideas[1].Title)
	assert.Equal(t, "Second idea line", ideas[1].Description)
	assert.Equal(t, fallbackHook, ideas[1].Hook)
	assert.Equal(t, fallbackViralPotential, ideas[1].ViralPotential)
	assert.Empty(t, ideas[0].BrandID)
}

func TestIdeaService_SaveAndRank(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewIdeaService(f.store, f.gen, zap.NewNop())
	b := f.brand(t)

	_, err := svc.SaveMany(ctx, "", []model.Idea{{Title: "x"}})
	require.ErrorIs(t, err, model.ErrBrandRequired)
	_, err = svc.SaveMany(ctx, b.ID, []model.Idea{{Title: ""}})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	saved, err := svc.SaveMany(ctx, b.ID, []model.Idea{{Title: "One", Enabled: true}, {Title: "Two", Enabled: true}})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].ID)
	assert.Equal(t, model.IdeaTypeGeneral, saved[0].Type)

	kept, err := svc.SaveMany(ctx, b.ID, []model.Idea{{ID: "generated-1", Title: "Kept id"}})
	require.NoError(t, err)
	assert.Equal(t, "generated-1", kept[0].ID)
	fetched, err := svc.Get(ctx, "generated-1")
	require.NoError(t, err)
	assert.Equal(t, "Kept id", fetched.Title)
	_, err = svc.SaveMany(ctx, b.ID, []model.Idea{{ID: "generated-1", Title: "Again"}})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	ranked, err := svc.SetRanking(ctx, saved[0].ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, ranked.Ranking)

	_, err = svc.SetRanking(ctx, saved[0].ID, 6)
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = svc.SetRanking(ctx, "missing", 1)
	require.ErrorIs(t, err, model.ErrNotFound)

	toggled, err := svc.Update(ctx, saved[1].ID, map[string]any{"enabled": false})
	require.NoError(t, err)
	assert.False(t, toggled.Enabled)

	require.NoError(t, svc.Delete(ctx, saved[1].ID))
	list, err := svc.List(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestScriptService_GenerateFromIdea(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewScriptService(f.store, f.gen, nil, zap.NewNop())
	b := f.brand(t)
	idea := &model.Idea{BrandID: b.ID, Title: "POV", Description: "Your skin after a week", Hook: "POV:", Type: model.IdeaTypeUGC,
		AIInfluencer: "Meet Aura", Frame1: "Bathroom selfie", Frame2: "Close-up", Frame3: "Smile"}
	require.NoError(t, f.store.CreateIdea(ctx, idea))
	f.expect("FRAME 1 (5-10 seconds): Bathroom selfie", scriptWithShots)

	script, err := svc.Generate(ctx, GenerateScriptRequest{IdeaID: idea.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, script.BrandID)
	assert.Equal(t, idea.ID, script.IdeaID)
	assert.Equal(t, "POV", script.IdeaTitle)
	assert.Equal(t, prompts.IdeaConcept(*idea), script.Concept)
	assert.True(t, script.GeneratedWithAI)
	assert.True(t, script.Enabled)
	assert.Empty(t, script.ID)
}

func TestScriptService_GenerateFromConceptWithoutBrand(t *testing.T) {
	f := newFixture(t)
	svc := NewScriptService(f.store, f.gen, nil, zap.NewNop())
	f.expect("3-ACT STRUCTURE", "text")

	script, err := svc.Generate(context.Background(), GenerateScriptRequest{Concept: "Unboxing a serum"})
	require.NoError(t, err)
	assert.Empty(t, script.BrandID)
	assert.Equal(t, "Unboxing a serum", script.Concept)

	_, err = svc.Generate(context.Background(), GenerateScriptRequest{Concept: "  "})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestScriptService_DraftAndBreakdown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewScriptService(f.store, f.gen, nil, zap.NewNop())
	b := f.brand(t)

	draft, err := svc.Draft(ctx, DraftScriptRequest{BrandID: b.ID, Template: "Unboxing Template"})
	require.NoError(t, err)
	assert.False(t, draft.GeneratedWithAI)

	seed := int64(7)
	offline, err := svc.Draft(ctx, DraftScriptRequest{Concept: "A woman tries the serum", Seed: &seed})
	require.NoError(t, err)
	assert.Contains(t, offline.Content, "A woman tries the serum")
	assert.True(t, breakdown.Extract(offline.Content).Found())

	short, err := svc.Draft(ctx, DraftScriptRequest{Template: "product demo"})
	require.NoError(t, err)
	assert.True(t, breakdown.Extract(short.Content).Found())

	_, err = svc.Draft(ctx, DraftScriptRequest{Template: "nope"})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = svc.Draft(ctx, DraftScriptRequest{})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	saved, err := svc.Save(ctx, draft)
	require.NoError(t, err)

	res, err := svc.Breakdown(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.NotEmpty(t, res.Shots)

	require.NoError(t, f.store.CreateMedia(ctx, &model.GeneratedMedia{ScriptID: saved.ID, Type: model.MediaTypeScene, Index: 0, ImageURL: "https://cdn/x.png"}))
	res, err = svc.Breakdown(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Shots[0].ImageURL)
	assert.Equal(t, "https://cdn/x.png", *res.Shots[0].ImageURL)
}

func TestScriptService_SaveValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewScriptService(f.store, f.gen, nil, zap.NewNop())

	_, err := svc.Save(ctx, &model.Script{BrandID: "b1"})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = svc.Save(ctx, &model.Script{Content: "x"})
	require.ErrorIs(t, err, model.ErrBrandRequired)

	saved, err := svc.Save(ctx, &model.Script{BrandID: "b1", Content: "x", Enabled: true})
	require.NoError(t, err)

	ranked, err := svc.SetRanking(ctx, saved.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ranked.Ranking)

	edited, err := svc.Update(ctx, saved.ID, map[string]any{"content": "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)

	_, err = svc.Update(ctx, saved.ID, map[string]any{"generatedWithAI": true})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, saved.ID))
	_, err = svc.Get(ctx, saved.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}
