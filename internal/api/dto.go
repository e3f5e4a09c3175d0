package api

import (
	"ugc-studio/internal/model"
)

type rankingRequest struct {
	Ranking *int `json:"ranking" binding:"required,min=0,max=5"`
}

type generateIdeasRequest struct {
	Count         int            `json:"count" binding:"omitempty,min=1,max=20"`
	ViralResearch bool           `json:"viralResearch"`
	Type          model.IdeaType `json:"type" binding:"omitempty,oneof=GENERAL UGC"`
}

// ideaInput is an idea as posted by the client. Enabled defaults to true.
type ideaInput struct {
	Title          string         `json:"title" binding:"required"`
	Description    string         `json:"description"`
	Hook           string         `json:"hook"`
	ViralPotential string         `json:"viralPotential"`
	ViralTrend     string         `json:"viralTrend"`
	Type           model.IdeaType `json:"type" binding:"omitempty,oneof=GENERAL UGC"`
	AIInfluencer   string         `json:"aiInfluencer"`
	Frame1         string         `json:"frame1"`
	Frame2         string         `json:"frame2"`
	Frame3         string         `json:"frame3"`
	Ranking        int            `json:"ranking" binding:"min=0,max=5"`
	Enabled        *bool          `json:"enabled"`

	// ID keeps the provisional id of a generated idea.
	ID string `json:"id" binding:"omitempty,uuid"`
}

func (in ideaInput) toModel() model.Idea {
	return model.Idea{
		ID:             in.ID,
		Title:          in.Title,
		Description:    in.Description,
		Hook:           in.Hook,
		ViralPotential: in.ViralPotential,
		ViralTrend:     in.ViralTrend,
		Type:           in.Type,
		AIInfluencer:   in.AIInfluencer,
		Frame1:         in.Frame1,
		Frame2:         in.Frame2,
		Frame3:         in.Frame3,
		Ranking:        in.Ranking,
		Enabled:        in.Enabled == nil || *in.Enabled,
	}
}

type saveIdeasRequest struct {
	Ideas []ideaInput `json:"ideas" binding:"required,min=1,dive"`
}

type scriptInput struct {
	BrandID         string `json:"brandId" binding:"required"`
	IdeaID          string `json:"ideaId"`
	IdeaTitle       string `json:"ideaTitle"`
	Concept         string `json:"concept"`
	Content         string `json:"content" binding:"required"`
	GeneratedWithAI bool   `json:"generatedWithAI"`
	Ranking         int    `json:"ranking" binding:"min=0,max=5"`
	Enabled         *bool  `json:"enabled"`
}

func (in scriptInput) toModel() *model.Script {
	return &model.Script{
		BrandID:         in.BrandID,
		IdeaID:          in.IdeaID,
		IdeaTitle:       in.IdeaTitle,
		Concept:         in.Concept,
		Content:         in.Content,
		GeneratedWithAI: in.GeneratedWithAI,
		Ranking:         in.Ranking,
		Enabled:         in.Enabled == nil || *in.Enabled,
	}
}

type breakdownRequest struct {
	Text string `json:"text"`
}

// pipelineEvent is one websocket message of a pipeline stream.
type pipelineEvent struct {
	Type   string `json:"type"` // step | result | error
	Step   any    `json:"step,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
}
