package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ugc-studio/internal/model"
)

// MemoryStore keeps every collection in process memory. It is the fallback
// when Firestore is not configured and the store used by tests.
type MemoryStore struct {
	mu       sync.RWMutex
	brands   map[string]model.Brand
	analysis map[string]model.BrandAnalysis
	ideas    map[string]model.Idea
	scripts  map[string]model.Script
	media    map[string]model.GeneratedMedia
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		brands:   make(map[string]model.Brand),
		analysis: make(map[string]model.BrandAnalysis),
		ideas:    make(map[string]model.Idea),
		scripts:  make(map[string]model.Script),
		media:    make(map[string]model.GeneratedMedia),
		now:      time.Now,
	}
}

// SetClock replaces the time source. Tests use it to get distinct, ordered timestamps.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Close() error { return nil }

func notFound(collection, id string) error {
	return fmt.Errorf("%w: %s/%s", model.ErrNotFound, collection, id)
}

// applyFields merges fields into v through its JSON form. Stored field names
// and JSON names are the same for every entity.
func applyFields[T any](v T, fields Fields, updatedAt time.Time) (T, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return v, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return v, err
	}
	for k, val := range fields {
		doc[k] = val
	}
	doc["updatedAt"] = updatedAt
	raw, err = json.Marshal(doc)
	if err != nil {
		return v, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return out, nil
}

// --- brands ---

func (s *MemoryStore) CreateBrand(_ context.Context, brand *model.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	brand.ID = uuid.NewString()
	brand.CreatedAt, brand.UpdatedAt = now, now
	s.brands[brand.ID] = *brand
	return nil
}

func (s *MemoryStore) GetBrand(_ context.Context, id string) (*model.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[id]
	if !ok {
		return nil, notFound(CollectionBrands, id)
	}
	return &b, nil
}

func (s *MemoryStore) ListBrands(_ context.Context) ([]model.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		out = append(out, b)
	}
	newestFirst(out, func(b model.Brand) time.Time { return b.CreatedAt })
	return out, nil
}

func (s *MemoryStore) UpdateBrand(_ context.Context, id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.brands[id]
	if !ok {
		return notFound(CollectionBrands, id)
	}
	updated, err := applyFields(b, fields, s.now().UTC())
	if err != nil {
		return err
	}
	s.brands[id] = updated
	return nil
}

func (s *MemoryStore) DeleteBrand(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.brands[id]; !ok {
		return notFound(CollectionBrands, id)
	}
	delete(s.brands, id)
	return nil
}

// --- analysis ---

func (s *MemoryStore) SaveAnalysis(_ context.Context, analysis *model.BrandAnalysis) error {
	if analysis.BrandID == "" {
		return fmt.Errorf("%w: analysis without brand id", model.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = now
	}
	analysis.UpdatedAt = now
	stored := *analysis
	stored.UGCOpportunities = append([]string(nil), analysis.UGCOpportunities...)
	s.analysis[analysis.BrandID] = stored
	return nil
}

func (s *MemoryStore) GetAnalysis(_ context.Context, brandID string) (*model.BrandAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analysis[brandID]
	if !ok {
		return nil, notFound(CollectionAnalysis, brandID)
	}
	a.UGCOpportunities = append([]string(nil), a.UGCOpportunities...)
	return &a, nil
}

func (s *MemoryStore) DeleteAnalysis(_ context.Context, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analysis[brandID]; !ok {
		return notFound(CollectionAnalysis, brandID)
	}
	delete(s.analysis, brandID)
	return nil
}

// --- ideas ---

func (s *MemoryStore) CreateIdea(_ context.Context, idea *model.Idea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	} else if _, ok := s.ideas[idea.ID]; ok {
		return fmt.Errorf("%w: %s/%s already exists", model.ErrInvalidInput, CollectionIdeas, idea.ID)
	}
	now := s.now().UTC()
	idea.CreatedAt, idea.UpdatedAt = now, now
	s.ideas[idea.ID] = *idea
	return nil
}

func (s *MemoryStore) GetIdea(_ context.Context, id string) (*model.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.ideas[id]
	if !ok {
		return nil, notFound(CollectionIdeas, id)
	}
	return &i, nil
}

func (s *MemoryStore) ListIdeas(_ context.Context, brandID string) ([]model.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Idea, 0)
	for _, i := range s.ideas {
		if brandID == "" || i.BrandID == brandID {
			out = append(out, i)
		}
	}
	newestFirst(out, func(i model.Idea) time.Time { return i.CreatedAt })
	return out, nil
}

func (s *MemoryStore) UpdateIdea(_ context.Context, id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.ideas[id]
	if !ok {
		return notFound(CollectionIdeas, id)
	}
	updated, err := applyFields(i, fields, s.now().UTC())
	if err != nil {
		return err
	}
	s.ideas[id] = updated
	return nil
}

func (s *MemoryStore) DeleteIdea(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ideas[id]; !ok {
		return notFound(CollectionIdeas, id)
	}
	delete(s.ideas, id)
	return nil
}

// --- scripts ---

func (s *MemoryStore) CreateScript(_ context.Context, script *model.Script) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	script.ID = uuid.NewString()
	script.CreatedAt, script.UpdatedAt = now, now
	s.scripts[script.ID] = *script
	return nil
}

func (s *MemoryStore) GetScript(_ context.Context, id string) (*model.Script, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scripts[id]
	if !ok {
		return nil, notFound(CollectionScripts, id)
	}
	return &sc, nil
}

func (s *MemoryStore) ListScripts(_ context.Context, brandID string) ([]model.Script, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Script, 0)
	for _, sc := range s.scripts {
		if brandID == "" || sc.BrandID == brandID {
			out = append(out, sc)
		}
	}
	newestFirst(out, func(sc model.Script) time.Time { return sc.CreatedAt })
	return out, nil
}

func (s *MemoryStore) UpdateScript(_ context.Context, id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.scripts[id]
	if !ok {
		return notFound(CollectionScripts, id)
	}
	updated, err := applyFields(sc, fields, s.now().UTC())
	if err != nil {
		return err
	}
	s.scripts[id] = updated
	return nil
}

func (s *MemoryStore) DeleteScript(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scripts[id]; !ok {
		return notFound(CollectionScripts, id)
	}
	delete(s.scripts, id)
	return nil
}

// --- media ---

func (s *MemoryStore) CreateMedia(_ context.Context, media *model.GeneratedMedia) error {
	if media.ScriptID == "" {
		return fmt.Errorf("%w: media without script id", model.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	media.ID = uuid.NewString()
	media.CreatedAt = s.now().UTC()
	s.media[media.ID] = *media
	return nil
}

func (s *MemoryStore) ListMedia(_ context.Context, scriptID string) ([]model.GeneratedMedia, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.GeneratedMedia, 0)
	for _, m := range s.media {
		if m.ScriptID == scriptID {
			out = append(out, m)
		}
	}
	SortMedia(out)
	return out, nil
}

func (s *MemoryStore) DeleteMedia(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.media[id]; !ok {
		return notFound(CollectionMedia, id)
	}
	delete(s.media, id)
	return nil
}
