package model

import "time"

type IdeaType string

const (
	IdeaTypeGeneral IdeaType = "GENERAL"
	IdeaTypeUGC     IdeaType = "UGC"
)

const (
	MinRanking = 0
	MaxRanking = 5
)

// Idea is a short-form video concept generated for a brand.
type Idea struct {
	ID             string    `json:"id" firestore:"-"`
	BrandID        string    `json:"brandId" firestore:"brandId"`
	Title          string    `json:"title" firestore:"title"`
	Description    string    `json:"description" firestore:"description"`
	Hook           string    `json:"hook" firestore:"hook"`
	ViralPotential string    `json:"viralPotential" firestore:"viralPotential"`
	ViralTrend     string    `json:"viralTrend,omitempty" firestore:"viralTrend,omitempty"`
	Type           IdeaType  `json:"type,omitempty" firestore:"type,omitempty"`
	AIInfluencer   string    `json:"aiInfluencer,omitempty" firestore:"aiInfluencer,omitempty"`
	Frame1         string    `json:"frame1,omitempty" firestore:"frame1,omitempty"`
	Frame2         string    `json:"frame2,omitempty" firestore:"frame2,omitempty"`
	Frame3         string    `json:"frame3,omitempty" firestore:"frame3,omitempty"`
	Ranking        int       `json:"ranking" firestore:"ranking"`
	Enabled        bool      `json:"enabled" firestore:"enabled"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// HasFrames reports whether the idea carries the UGC three-frame structure.
func (i *Idea) HasFrames() bool {
	return i != nil && i.Type == IdeaTypeUGC && i.Frame1 != ""
}

// Script is generated long-form text for a concept, optionally derived from an idea.
type Script struct {
	ID              string    `json:"id" firestore:"-"`
	BrandID         string    `json:"brandId" firestore:"brandId"`
	IdeaID          string    `json:"ideaId,omitempty" firestore:"ideaId,omitempty"`
	IdeaTitle       string    `json:"ideaTitle,omitempty" firestore:"ideaTitle,omitempty"`
	Concept         string    `json:"concept" firestore:"concept"`
	Content         string    `json:"content" firestore:"content"`
	GeneratedWithAI bool      `json:"generatedWithAI" firestore:"generatedWithAI"`
	Ranking         int       `json:"ranking" firestore:"ranking"`
	Enabled         bool      `json:"enabled" firestore:"enabled"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updatedAt"`
}
