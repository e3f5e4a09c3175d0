// Package repository persists brands, analyses, ideas, scripts and generated
// media. Every entity is created with a single call (the repository assigns
// the id and timestamps), updated by partial field maps and deleted by id.
package repository

import (
	"context"

	"ugc-studio/internal/model"
)

// Collection names, shared with the web client.
const (
	CollectionBrands   = "brands"
	CollectionAnalysis = "brandAnalysis"
	CollectionIdeas    = "ideas"
	CollectionScripts  = "scripts"
	CollectionMedia    = "generatedMedia"
)

// Fields is a partial update keyed by stored field name (e.g. "ranking", "brand_voice").
type Fields map[string]any

type BrandRepository interface {
	CreateBrand(ctx context.Context, brand *model.Brand) error
	GetBrand(ctx context.Context, id string) (*model.Brand, error)
	// ListBrands returns brands newest first.
	ListBrands(ctx context.Context) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, id string, fields Fields) error
	DeleteBrand(ctx context.Context, id string) error
}

type AnalysisRepository interface {
	// SaveAnalysis creates or replaces the analysis of analysis.BrandID.
	SaveAnalysis(ctx context.Context, analysis *model.BrandAnalysis) error
	GetAnalysis(ctx context.Context, brandID string) (*model.BrandAnalysis, error)
	DeleteAnalysis(ctx context.Context, brandID string) error
}

type IdeaRepository interface {
	CreateIdea(ctx context.Context, idea *model.Idea) error
	GetIdea(ctx context.Context, id string) (*model.Idea, error)
	// ListIdeas returns ideas newest first. An empty brandID lists every idea.
	ListIdeas(ctx context.Context, brandID string) ([]model.Idea, error)
	UpdateIdea(ctx context.Context, id string, fields Fields) error
	DeleteIdea(ctx context.Context, id string) error
}

type ScriptRepository interface {
	CreateScript(ctx context.Context, script *model.Script) error
	GetScript(ctx context.Context, id string) (*model.Script, error)
	// ListScripts returns scripts newest first. An empty brandID lists every script.
	ListScripts(ctx context.Context, brandID string) ([]model.Script, error)
	UpdateScript(ctx context.Context, id string, fields Fields) error
	DeleteScript(ctx context.Context, id string) error
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *model.GeneratedMedia) error
	// ListMedia returns the media of a script ordered by shot index, oldest first within an index.
	ListMedia(ctx context.Context, scriptID string) ([]model.GeneratedMedia, error)
	DeleteMedia(ctx context.Context, id string) error
}

// Store groups all repositories behind one backend.
type Store interface {
	BrandRepository
	AnalysisRepository
	IdeaRepository
	ScriptRepository
	MediaRepository
	Close() error
}
