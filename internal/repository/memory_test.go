package repository

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ugc-studio/internal/config"
	"ugc-studio/internal/model"
)

// tickingClock returns timestamps one second apart.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore() *MemoryStore {
	s := NewMemoryStore()
	s.SetClock(tickingClock())
	return s
}

func TestMemoryStore_BrandCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	brand := &model.Brand{Name: "Glowly", UVP: "serum"}
	require.NoError(t, s.CreateBrand(ctx, brand))
	require.NotEmpty(t, brand.ID)
	assert.False(t, brand.CreatedAt.IsZero())

	got, err := s.GetBrand(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Glowly", got.Name)

	require.NoError(t, s.UpdateBrand(ctx, brand.ID, Fields{"brand_voice": "playful", "uvp": "better serum"}))
	got, err = s.GetBrand(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "playful", got.BrandVoice)
	assert.Equal(t, "better serum", got.UVP)
	assert.Equal(t, brand.ID, got.ID)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.NoError(t, s.DeleteBrand(ctx, brand.ID))
	_, err = s.GetBrand(ctx, brand.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, s.DeleteBrand(ctx, brand.ID), model.ErrNotFound)
	require.ErrorIs(t, s.UpdateBrand(ctx, "missing", Fields{"uvp": "x"}), model.ErrNotFound)
}

func TestMemoryStore_ListsNewestFirstAndFilterByBrand(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, s.CreateIdea(ctx, &model.Idea{BrandID: "b1", Title: title, Enabled: true}))
	}
	require.NoError(t, s.CreateIdea(ctx, &model.Idea{BrandID: "b2", Title: "other"}))

	ideas, err := s.ListIdeas(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{ideas[0].Title, ideas[1].Title, ideas[2].Title})

	all, err := s.ListIdeas(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "other", all[0].Title)
}

func TestMemoryStore_UpdateIdeaRankingAndEnabled(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	idea := &model.Idea{BrandID: "b1", Title: "POV", Enabled: true}
	require.NoError(t, s.CreateIdea(ctx, idea))

	require.NoError(t, s.UpdateIdea(ctx, idea.ID, Fields{"ranking": 4, "enabled": false}))
	got, err := s.GetIdea(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Ranking)
	assert.False(t, got.Enabled)

	err = s.UpdateIdea(ctx, idea.ID, Fields{"ranking": "high"})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestMemoryStore_Scripts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	script := &model.Script{BrandID: "b1", Concept: "c", Content: "text", GeneratedWithAI: true, Enabled: true}
	require.NoError(t, s.CreateScript(ctx, script))
	require.NoError(t, s.UpdateScript(ctx, script.ID, Fields{"content": "edited"}))

	got, err := s.GetScript(ctx, script.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.True(t, got.GeneratedWithAI)

	list, err := s.ListScripts(ctx, "b2")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	require.NoError(t, s.DeleteScript(ctx, script.ID))
	_, err = s.GetScript(ctx, script.ID)
	assert.True(t, IsNotFound(err))
}

func TestMemoryStore_AnalysisUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.ErrorIs(t, s.SaveAnalysis(ctx, &model.BrandAnalysis{}), model.ErrInvalidInput)

	first := &model.BrandAnalysis{BrandID: "b1", ValueAnalysis: "v1", UGCOpportunities: []string{"a"}}
	require.NoError(t, s.SaveAnalysis(ctx, first))
	created := first.CreatedAt

	second := &model.BrandAnalysis{BrandID: "b1", ValueAnalysis: "v2", CreatedAt: created}
	require.NoError(t, s.SaveAnalysis(ctx, second))

	got, err := s.GetAnalysis(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.ValueAnalysis)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created))

	require.NoError(t, s.DeleteAnalysis(ctx, "b1"))
	_, err = s.GetAnalysis(ctx, "b1")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoryStore_MediaOrderedByIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	for _, idx := range []int{2, 0, 1, 0} {
		require.NoError(t, s.CreateMedia(ctx, &model.GeneratedMedia{ScriptID: "s1", Type: model.MediaTypeScene, Index: idx, ImageURL: "u"}))
	}
	require.NoError(t, s.CreateMedia(ctx, &model.GeneratedMedia{ScriptID: "s2", Index: 0}))
	require.ErrorIs(t, s.CreateMedia(ctx, &model.GeneratedMedia{}), model.ErrInvalidInput)

	media, err := s.ListMedia(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, media, 4)
	assert.Equal(t, []int{0, 0, 1, 2}, []int{media[0].Index, media[1].Index, media[2].Index, media[3].Index})
	assert.True(t, media[0].CreatedAt.Before(media[1].CreatedAt))

	require.NoError(t, s.DeleteMedia(ctx, media[0].ID))
	media, err = s.ListMedia(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, media, 3)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idea := &model.Idea{BrandID: "b1"}
			assert.NoError(t, s.CreateIdea(ctx, idea))
			assert.NoError(t, s.UpdateIdea(ctx, idea.ID, Fields{"ranking": 1}))
			_, err := s.ListIdeas(ctx, "b1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ideas, err := s.ListIdeas(ctx, "b1")
	require.NoError(t, err)
	assert.Len(t, ideas, 20)
}

func TestApplyFields_KeepsUnknownFieldsOut(t *testing.T) {
	b := model.Brand{ID: "b1", Name: "x"}
	out, err := applyFields(b, Fields{"nonexistent": 1}, time.Unix(0, 0).UTC())
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "nonexistent")
	assert.Equal(t, "b1", out.ID)
}

func TestOpen_Fallbacks(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, nil, config.FirebaseConfig{StorageFallback: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(ctx, nil, config.FirebaseConfig{StorageFallback: "none"}, zap.NewNop())
	require.NoError(t, err)
	_, err = store.ListBrands(ctx)
	require.ErrorIs(t, err, model.ErrNotConfigured)
	require.ErrorIs(t, store.CreateIdea(ctx, &model.Idea{}), model.ErrNotConfigured)
	assert.NoError(t, store.Close())

	_, err = Open(ctx, nil, config.FirebaseConfig{StorageFallback: "redis"}, zap.NewNop())
	require.Error(t, err)
}
