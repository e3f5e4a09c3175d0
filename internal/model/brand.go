package model

import "time"

// Brand is the user-supplied marketing profile that parameterizes all generation calls.
// JSON and Firestore field names match the documents written by the web client.
type Brand struct {
	ID             string    `json:"id" firestore:"-" yaml:"id,omitempty"`
	Name           string    `json:"brand_name" firestore:"brand_name" yaml:"brand_name"`
	Domain         string    `json:"brand_domain" firestore:"brand_domain" yaml:"brand_domain"`
	Category       string    `json:"category" firestore:"category" yaml:"category"`
	UVP            string    `json:"uvp" firestore:"uvp" yaml:"uvp"`
	Audience       string    `json:"audience" firestore:"audience" yaml:"audience"`
	PainPoints     string    `json:"pain_points" firestore:"pain_points" yaml:"pain_points"`
	Competitors    string    `json:"competitors" firestore:"competitors" yaml:"competitors"`
	BrandVoice     string    `json:"brand_voice" firestore:"brand_voice" yaml:"brand_voice"`
	MarketingGoals string    `json:"marketing_goals" firestore:"marketing_goals" yaml:"marketing_goals"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt" yaml:"-"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt" yaml:"-"`
}

// HasResearch reports whether the fields the analysis prompt depends on are filled.
func (b *Brand) HasResearch() bool {
	return b != nil && b.UVP != "" && b.Audience != "" && b.PainPoints != ""
}

// BrandAnalysis is the AI-enhanced research stored per brand (document id = brand id).
type BrandAnalysis struct {
	BrandID                  string    `json:"brandId" firestore:"brandId"`
	ValueAnalysis            string    `json:"valueAnalysis" firestore:"valueAnalysis"`
	AudienceInsights         string    `json:"audienceInsights" firestore:"audienceInsights"`
	PainPointRecommendations string    `json:"painPointRecommendations" firestore:"painPointRecommendations"`
	BrandPositioning         string    `json:"brandPositioning" firestore:"brandPositioning"`
	UGCOpportunities         []string  `json:"ugcOpportunities" firestore:"ugcOpportunities"`
	Structured               bool      `json:"structured" firestore:"structured"` // false when ValueAnalysis holds the raw completion
	CreatedAt                time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt" firestore:"updatedAt"`
}
