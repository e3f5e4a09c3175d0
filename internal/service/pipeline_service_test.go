package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/pkg/ai"
)

func newPipeline(f *fixture, opts PipelineOptions) PipelineService {
	log := zap.NewNop()
	return NewPipelineService(f.store,
		NewAnalysisService(f.store, f.gen, log),
		NewIdeaService(f.store, f.gen, log),
		NewScriptService(f.store, f.gen, nil, log),
		opts, log)
}

func TestPipelineService_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	f := newFixture(t)
	b := f.brand(t)
	svc := newPipeline(f, PipelineOptions{IdeaCount: 3, ScriptCount: 2})

	f.expect("Brand name: Glowly", `{"valueAnalysis": "Strong"}`).Once()
	f.expect("Generate 3 creative, viral ideas", ideasJSON).Once()
	f.expect("Video concept: Morning glow", "script one").Once()
	f.expect("Video concept: Before and after", "script two").Once()

	var steps []Step
	result, err := svc.Run(ctx, b.ID, func(s Step) { steps = append(steps, s) })
	require.NoError(t, err)

	assert.False(t, result.AnalysisReused)
	assert.Equal(t, "Strong", result.Analysis.ValueAnalysis)
	require.Len(t, result.Ideas, 3)
	require.Len(t, result.Scripts, 2)
	assert.Equal(t, "script one", result.Scripts[0].Content)
	assert.Equal(t, "Morning glow", result.Scripts[0].IdeaTitle)
	assert.Equal(t, "Morning glow\n\nA GRWM with the serum", result.Scripts[0].Concept)
	assert.Equal(t, "script two", result.Scripts[1].Content)
	assert.Equal(t, b.ID, result.Scripts[1].BrandID)
	for i, script := range result.Scripts {
		require.NotEmpty(t, result.Ideas[i].ID)
		assert.Equal(t, result.Ideas[i].ID, script.IdeaID)
	}

	// analysis is stored, ideas and scripts are not
	_, err = f.store.GetAnalysis(ctx, b.ID)
	require.NoError(t, err)
	ideas, _ := f.store.ListIdeas(ctx, b.ID)
	assert.Empty(t, ideas)

	require.Len(t, steps, 8)
	for i, s := range steps {
		assert.Equal(t, i/2+1, s.Number)
		if i%2 == 0 {
			assert.Equal(t, StepRunning, s.Status)
		} else {
			assert.Equal(t, StepCompleted, s.Status)
		}
	}
	assert.Equal(t, "Create Scripts", steps[7].Name)
}

func TestPipelineService_ReusesStoredAnalysis(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	f := newFixture(t)
	b := f.brand(t)
	require.NoError(t, f.store.SaveAnalysis(ctx, &model.BrandAnalysis{BrandID: b.ID, ValueAnalysis: "cached"}))
	svc := newPipeline(f, PipelineOptions{IdeaCount: 3, ScriptCount: 0})

	f.expect("Generate 3 creative, viral ideas", ideasJSON).Once()

	result, err := svc.Run(ctx, b.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.AnalysisReused)
	assert.Equal(t, "cached", result.Analysis.ValueAnalysis)
	assert.Empty(t, result.Scripts)
	assert.NotNil(t, result.Scripts)
}

func TestPipelineService_ScriptFailureStopsRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	f := newFixture(t)
	b := f.brand(t)
	require.NoError(t, f.store.SaveAnalysis(ctx, &model.BrandAnalysis{BrandID: b.ID}))
	svc := newPipeline(f, PipelineOptions{IdeaCount: 3, ScriptCount: 3})

	permanent := errors.Join(ai.ErrAIGenerationFailed, ai.ErrProviderPermanent)
	f.expect("Generate 3 creative, viral ideas", ideasJSON).Once()
	f.client.On("GenerateText", mock.Anything, prompts.SystemPrompt, promptContaining("Video concept:"), mock.Anything).
		Return("", ai.UsageInfo{}, permanent).Maybe()

	var last Step
	_, err := svc.Run(ctx, b.ID, func(s Step) { last = s })
	require.ErrorIs(t, err, ai.ErrProviderPermanent)
	assert.Equal(t, StepScripts, last.Number)
	assert.Equal(t, StepFailed, last.Status)
	assert.NotEmpty(t, last.Error)
}

func TestPipelineService_UnknownBrand(t *testing.T) {
	f := newFixture(t)
	svc := newPipeline(f, PipelineOptions{})

	var last Step
	_, err := svc.Run(context.Background(), "missing", func(s Step) { last = s })
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, StepBrandResearch, last.Number)
	assert.Equal(t, StepFailed, last.Status)

	_, err = svc.Run(context.Background(), "", nil)
	require.ErrorIs(t, err, model.ErrBrandRequired)
}
