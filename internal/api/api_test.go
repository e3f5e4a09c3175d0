package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ugc-studio/internal/breakdown"
	"ugc-studio/internal/media"
	"ugc-studio/internal/mocks"
	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
	"ugc-studio/internal/service"
	"ugc-studio/pkg/ai"
)

const scriptBody = `**Video Generation Prompt:**
A young woman films a selfie in her sunlit bathroom, holding the serum bottle close to the lens.
[cut]
Close-up of her hands pressing two drops onto her cheeks, slight camera shake, natural light.`

type testEnv struct {
	store  *repository.MemoryStore
	client *mocks.MockTextGenerator
	images *mocks.MockImageGenerator
	files  *mocks.MockMediaStore
	srv    http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	store := repository.NewMemoryStore()
	client := mocks.NewMockTextGenerator(t)
	images := mocks.NewMockImageGenerator(t)
	files := mocks.NewMockMediaStore(t)

	noSleep := func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	gen := service.NewGenerator(client, ai.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second, Sleep: noSleep}, ai.GenerationParams{}, log)
	extractor := breakdown.New()

	analysis := service.NewAnalysisService(store, gen, log)
	ideas := service.NewIdeaService(store, gen, log)
	scripts := service.NewScriptService(store, gen, extractor, log)
	h := NewHandler(Services{
		Brands:    service.NewBrandService(store, log),
		Analysis:  analysis,
		Ideas:     ideas,
		Scripts:   scripts,
		Media:     service.NewMediaService(store, scripts, images, media.NewStubVideoGenerator("5-10", log), files, service.MediaDefaults{AspectRatio: "9:16", VideoDuration: "5-10"}, log),
		Pipeline:  service.NewPipelineService(store, analysis, ideas, scripts, service.PipelineOptions{IdeaCount: 2, ScriptCount: 1}, log),
		Extractor: extractor,
	}, nil, log)

	return &testEnv{
		store:  store,
		client: client,
		images: images,
		files:  files,
		srv:    NewRouter(h, RouterConfig{BasePath: "/api/v1"}, log),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (e *testEnv) createBrand(t *testing.T) model.Brand {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/brands", map[string]any{
		"brand_name": "Glowly", "uvp": "Vitamin C serum", "audience": "Women 25-35", "pain_points": "Dull skin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Brand](t, rec)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBrandEndpoints(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/brands", map[string]any{"uvp": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[APIError](t, rec).Error, "brand_name")

	brand := e.createBrand(t)
	assert.NotEmpty(t, brand.ID)

	rec = e.do(t, http.MethodPatch, "/api/v1/brands/"+brand.ID, map[string]any{"brand_voice": "playful"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playful", decode[model.Brand](t, rec).BrandVoice)

	rec = e.do(t, http.MethodPatch, "/api/v1/brands/"+brand.ID, map[string]any{"id": "other"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/brands", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Brand](t, rec), 1)

	rec = e.do(t, http.MethodDelete, "/api/v1/brands/"+brand.ID+"?cascade=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/v1/brands/"+brand.ID+"?cascade=true", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/v1/brands/"+brand.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		times  int
		status int
	}{
		{"not configured", errors.Join(ai.ErrAIGenerationFailed, ai.ErrNotConfigured), 1, http.StatusServiceUnavailable},
		{"rate limited after retries", errors.Join(ai.ErrAIGenerationFailed, ai.ErrRateLimited), 3, http.StatusTooManyRequests},
		{"permanent", errors.Join(ai.ErrAIGenerationFailed, ai.ErrProviderPermanent), 1, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			brand := e.createBrand(t)
			e.client.On("GenerateText", mock.Anything, prompts.SystemPrompt, mock.Anything, mock.Anything).
				Return("", ai.UsageInfo{}, tt.err).Times(tt.times)

			rec := e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/analysis", nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestAnalysisFallbackReturnsRawText(t *testing.T) {
	e := newTestEnv(t)
	brand := e.createBrand(t)
	e.client.On("GenerateText", mock.Anything, prompts.SystemPrompt, mock.Anything, mock.Anything).
		Return("no json here", ai.UsageInfo{}, nil).Once()

	rec := e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["structured"])
	assert.Equal(t, "no json here", body["valueAnalysis"])
	assert.Equal(t, []any{}, body["ugcOpportunities"])

	rec = e.do(t, http.MethodGet, "/api/v1/brands/"+brand.ID+"/analysis", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdeaEndpoints(t *testing.T) {
	e := newTestEnv(t)
	brand := e.createBrand(t)

	rec := e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/ideas", map[string]any{
		"ideas": []map[string]any{{"title": "Morning glow"}, {"title": "POV", "enabled": false, "type": "UGC"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	saved := decode[[]model.Idea](t, rec)
	require.Len(t, saved, 2)
	assert.True(t, saved[0].Enabled)
	assert.False(t, saved[1].Enabled)

	rec = e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/ideas", map[string]any{"ideas": []map[string]any{{"title": "x", "type": "VIRAL"}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/ideas", map[string]any{"ideas": []map[string]any{{"title": "x", "id": "not-a-uuid"}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	const generatedID = "3f6c2d8e-1b4a-4c7e-9f0a-2d5b8e1c7a90"
	rec = e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/ideas", map[string]any{"ideas": []map[string]any{{"title": "From pipeline", "id": generatedID}}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, generatedID, decode[[]model.Idea](t, rec)[0].ID)

	rec = e.do(t, http.MethodPut, "/api/v1/ideas/"+saved[0].ID+"/ranking", map[string]any{"ranking": 6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.do(t, http.MethodPut, "/api/v1/ideas/"+saved[0].ID+"/ranking", map[string]any{"ranking": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = e.do(t, http.MethodPut, "/api/v1/ideas/"+saved[0].ID+"/ranking", map[string]any{"ranking": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode[model.Idea](t, rec).Ranking)

	rec = e.do(t, http.MethodPatch, "/api/v1/ideas/"+saved[1].ID, map[string]any{"enabled": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.Idea](t, rec).Enabled)

	rec = e.do(t, http.MethodGet, "/api/v1/brands/"+brand.ID+"/ideas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Idea](t, rec), 3)

	rec = e.do(t, http.MethodDelete, "/api/v1/ideas/"+saved[1].ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/v1/ideas/"+saved[1].ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateIdeas(t *testing.T) {
	e := newTestEnv(t)
	brand := e.createBrand(t)
	e.client.On("GenerateText", mock.Anything, prompts.SystemPrompt, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Generate 2 ideas based on the VIRAL TRENDS")
	}), mock.Anything).Return(`[{"title":"GRWM","description":"d","hook":"h","viralPotential":"high","viralTrend":"GRWM"}]`, ai.UsageInfo{}, nil).Once()

	rec := e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/ideas/generate", map[string]any{"count": 2, "viralResearch": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ideas := decode[[]model.Idea](t, rec)
	require.Len(t, ideas, 1)
	assert.Equal(t, "GRWM", ideas[0].ViralTrend)
	assert.Equal(t, brand.ID, ideas[0].BrandID)

	rec = e.do(t, http.MethodPost, "/api/v1/brands/"+brand.ID+"/ideas/generate", map[string]any{"type": "OTHER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScriptEndpointsAndMedia(t *testing.T) {
	e := newTestEnv(t)
	brand := e.createBrand(t)

	rec := e.do(t, http.MethodPost, "/api/v1/scripts", map[string]any{"brandId": brand.ID, "content": "plain text, no prompt section"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plain := decode[model.Script](t, rec)
	assert.True(t, plain.Enabled)

	rec = e.do(t, http.MethodGet, "/api/v1/scripts/"+plain.ID+"/breakdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[map[string]any](t, rec)
	assert.Equal(t, "not_found", result["status"])
	assert.Equal(t, []any{}, result["shots"])

	rec = e.do(t, http.MethodPost, "/api/v1/scripts/"+plain.ID+"/shots/0/image", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/scripts", map[string]any{"brandId": brand.ID, "content": scriptBody, "generatedWithAI": true})
	require.Equal(t, http.StatusCreated, rec.Code)
	script := decode[model.Script](t, rec)

	rec = e.do(t, http.MethodPost, "/api/v1/scripts/"+script.ID+"/shots/x/image", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e.images.On("Generate", mock.Anything, mock.Anything, "9:16").
		Return(media.ImageResult{Data: []byte("jpg"), ContentType: "image/jpeg", Provider: "http"}, nil).Once()
	e.files.On("Put", mock.Anything, mock.Anything, "image/jpeg", []byte("jpg")).
		Return("http://localhost:8080/media/scene-0.jpg", nil).Once()

	rec = e.do(t, http.MethodPost, "/api/v1/scripts/"+script.ID+"/shots/0/image", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/v1/scripts/"+script.ID+"/shots/1/video", map[string]any{"duration": "10"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	video := decode[model.GeneratedMedia](t, rec)
	assert.NotEmpty(t, video.VideoURL)

	rec = e.do(t, http.MethodGet, "/api/v1/scripts/"+script.ID+"/breakdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	attached := decode[struct {
		Shots []model.Shot `json:"shots"`
	}](t, rec)
	require.Len(t, attached.Shots, 2)
	require.NotNil(t, attached.Shots[0].ImageURL)
	assert.Equal(t, "http://localhost:8080/media/scene-0.jpg", *attached.Shots[0].ImageURL)
	require.NotNil(t, attached.Shots[1].VideoURL)

	rec = e.do(t, http.MethodGet, "/api/v1/scripts/"+script.ID+"/media", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.GeneratedMedia](t, rec), 2)

	rec = e.do(t, http.MethodGet, "/api/v1/scripts?brandId="+brand.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Script](t, rec), 2)

	rec = e.do(t, http.MethodPut, "/api/v1/scripts/"+script.ID+"/ranking", map[string]any{"ranking": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[model.Script](t, rec).Ranking)
}

func TestDraftAndBreakdownText(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/scripts/draft", map[string]any{"template": "product demo template"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	draft := decode[model.Script](t, rec)
	assert.False(t, draft.GeneratedWithAI)

	rec = e.do(t, http.MethodPost, "/api/v1/breakdown", map[string]any{"text": draft.Content})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[map[string]any](t, rec)
	assert.Equal(t, "found", result["status"])
	assert.NotEmpty(t, result["shots"])

	rec = e.do(t, http.MethodPost, "/api/v1/scripts/draft", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]prompts.Template](t, rec), len(prompts.Templates))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(model.ErrNotConfigured))
	assert.Equal(t, http.StatusNotFound, statusFor(model.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(model.ErrBrandRequired))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(model.ErrNoShots))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.Join(media.ErrImageSaveFailed, errors.New("disk full"))))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestPipelineStream(t *testing.T) {
	e := newTestEnv(t)
	brand := e.createBrand(t)
	require.NoError(t, e.store.SaveAnalysis(context.Background(), &model.BrandAnalysis{BrandID: brand.ID, ValueAnalysis: "cached"}))

	e.client.On("GenerateText", mock.Anything, prompts.SystemPrompt, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "creative, viral ideas")
	}), mock.Anything).Return(`[{"title":"One","description":"d"},{"title":"Two","description":"d"}]`, ai.UsageInfo{}, nil).Once()
	e.client.On("GenerateText", mock.Anything, prompts.SystemPrompt, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Video concept: One")
	}), mock.Anything).Return(scriptBody, ai.UsageInfo{}, nil).Once()

	server := httptest.NewServer(e.srv)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/pipeline/" + brand.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var events []map[string]any
	for {
		var event map[string]any
		if err := conn.ReadJSON(&event); err != nil {
			break
		}
		events = append(events, event)
	}

	require.Len(t, events, 9)
	for _, event := range events[:8] {
		assert.Equal(t, "step", event["type"])
	}
	last := events[8]
	require.Equal(t, "result", last["type"])
	result := last["result"].(map[string]any)
	assert.Equal(t, true, result["analysisReused"])
	assert.Len(t, result["ideas"], 2)
	assert.Len(t, result["scripts"], 1)
}

func TestPipelineStream_ErrorEvent(t *testing.T) {
	e := newTestEnv(t)
	server := httptest.NewServer(e.srv)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/pipeline/missing"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var events []map[string]any
	for {
		var event map[string]any
		if err := conn.ReadJSON(&event); err != nil {
			break
		}
		events = append(events, event)
	}
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "error", last["type"])
	assert.EqualValues(t, http.StatusNotFound, last["status"])
}
