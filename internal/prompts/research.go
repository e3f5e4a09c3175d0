package prompts

import (
	"fmt"
	"strings"

	"ugc-studio/internal/model"
)

// AnalysisKeys are the JSON keys the research prompt asks for.
var AnalysisKeys = []string{
	"valueAnalysis",
	"audienceInsights",
	"painPointRecommendations",
	"brandPositioning",
	"ugcOpportunities",
}

// BrandResearch builds the brand-research enhancement prompt.
func BrandResearch(b model.Brand) string {
	var sb strings.Builder

	sb.WriteString("You are an expert in market research, branding and digital marketing specialised in UGC.\n\n")
	sb.WriteString("Analyse the following brand information:\n\n")

	sb.WriteString("=== BASICS ===\n")
	fmt.Fprintf(&sb, "Brand name: %s\n", or(b.Name, notSpecified))
	fmt.Fprintf(&sb, "Website/domain: %s\n", or(b.Domain, notSpecified))
	fmt.Fprintf(&sb, "Category: %s\n\n", or(b.Category, notSpecified))

	sb.WriteString("=== VALUE PROPOSITION AND AUDIENCE ===\n")
	fmt.Fprintf(&sb, "Unique value proposition (UVP): %s\n", b.UVP)
	fmt.Fprintf(&sb, "Target audience: %s\n\n", b.Audience)

	sb.WriteString("=== PAIN POINTS ===\n")
	fmt.Fprintf(&sb, "Pain points and solutions: %s\n\n", b.PainPoints)

	sb.WriteString("=== COMPETITIVE CONTEXT ===\n")
	fmt.Fprintf(&sb, "Competitors: %s\n", or(b.Competitors, notSpecified))
	fmt.Fprintf(&sb, "Brand voice: %s\n", or(b.BrandVoice, notSpecified))
	fmt.Fprintf(&sb, "Marketing goals: %s\n\n", or(b.MarketingGoals, notSpecified))

	sb.WriteString("Provide a complete analysis with:\n")
	sb.WriteString("1. **Value proposition analysis**: strength of the UVP, key differentiators and positioning against competitors\n")
	sb.WriteString("2. **Audience insights**: psychographic profile, behaviours, motivations and preferred channels\n")
	sb.WriteString("3. **Pain point recommendations**: specific strategies to communicate the solutions\n")
	sb.WriteString("4. **Brand positioning**: ideal market position and key messages\n")
	sb.WriteString("5. **UGC content opportunities**: 5-7 specific UGC content ideas that would resonate with the audience\n\n")

	sb.WriteString("Return the answer as JSON with the following keys:\n")
	sb.WriteString(`{
  "valueAnalysis": "Detailed analysis, 2-3 paragraphs...",
  "audienceInsights": "Deep insights, 2-3 paragraphs...",
  "painPointRecommendations": "Strategic recommendations, 2-3 paragraphs...",
  "brandPositioning": "Suggested positioning, 2-3 paragraphs...",
  "ugcOpportunities": ["Specific, actionable idea 1", "Idea 2...", "Idea 3...", "Idea 4...", "Idea 5..."]
}`)
	sb.WriteString("\n")
	return sb.String()
}
