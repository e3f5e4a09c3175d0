package prompts

import (
	"fmt"
	"strings"
	"time"

	"ugc-studio/internal/model"
)

const (
	DefaultIdeaCount = 5
	// ViralWindow is how far back the viral-trend research looks.
	ViralWindow = 30 * 24 * time.Hour
)

// IdeaOptions parameterize the idea-list prompt.
type IdeaOptions struct {
	Count         int
	ViralResearch bool
	Type          model.IdeaType
	// Now anchors the viral research window. Zero means time.Now().
	Now time.Time
}

func (o IdeaOptions) count() int {
	if o.Count <= 0 {
		return DefaultIdeaCount
	}
	return o.Count
}

// ViralSince returns the first day of the viral research window as YYYY-MM-DD.
func (o IdeaOptions) ViralSince() string {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC().Add(-ViralWindow).Format("2006-01-02")
}

// Ideas builds the idea-list prompt. A nil brand asks for general UGC ideas.
func Ideas(b *model.Brand, opts IdeaOptions) string {
	var sb strings.Builder
	ugc := opts.Type == model.IdeaTypeUGC

	sb.WriteString("You are an expert in content marketing and short-form video for TikTok and Instagram Reels, with access to the latest viral trends.\n\n")
	writeIdeaBrandContext(&sb, b)
	sb.WriteString("\n")
	if ugc {
		sb.WriteString(ugcIdeaContext)
	} else {
		writeGeneralIdeaContext(&sb, b)
	}
	if opts.ViralResearch {
		fmt.Fprintf(&sb, viralResearchContext, opts.ViralSince())
	}

	sb.WriteString("\n")
	if opts.ViralResearch {
		fmt.Fprintf(&sb, "Generate %d ideas based on the VIRAL TRENDS of the last 30 days for videos that:\n", opts.count())
	} else {
		fmt.Fprintf(&sb, "Generate %d creative, viral ideas for videos that:\n", opts.count())
	}
	sb.WriteString("1. Feel authentic and genuine (not like ads)\n")
	sb.WriteString("2. Drive engagement and comments\n")
	sb.WriteString("3. Solve real audience problems\n")
	sb.WriteString("4. Are easy to produce with a smartphone\n")
	if opts.ViralResearch {
		sb.WriteString("5. Have HIGH viral potential using formats and hooks that work RIGHT NOW\n")
		sb.WriteString("6. State which viral trend they use and why it is relevant\n")
	} else {
		sb.WriteString("5. Have HIGH viral potential\n")
	}
	if ugc {
		sb.WriteString("7. INCLUDE the AI influencer description and the 3 video frames\n")
	}

	sb.WriteString("\nReturn the ideas as a JSON array of objects:\n[\n  {\n")
	sb.WriteString(`    "title": "Short, catchy title",` + "\n")
	if opts.ViralResearch {
		sb.WriteString(`    "description": "Short description of the idea + the viral trend it uses",` + "\n")
	} else {
		sb.WriteString(`    "description": "Short description of the idea",` + "\n")
	}
	sb.WriteString(`    "hook": "The hook for the first 3 seconds",` + "\n")
	sb.WriteString(`    "viralPotential": "high/medium/low"`)
	if opts.ViralResearch {
		sb.WriteString(",\n" + `    "viralTrend": "Name of the viral trend used (e.g. GRWM, Before/After, POV)"`)
	}
	if ugc {
		sb.WriteString(",\n" + ugcIdeaFields)
	}
	sb.WriteString("\n  }\n]\n")

	if ugc {
		sb.WriteString("\nIMPORTANT FOR UGC IDEAS:\n")
		sb.WriteString("- aiInfluencer must be a FULL paragraph of 100+ words in the \"Meet Aura\" style\n")
		sb.WriteString("- Each frame must have 60-100+ words with ALL cinematographic elements\n")
		sb.WriteString("- Use rich, specific visual language, as a director of photography writing a storyboard\n")
	}
	return sb.String()
}

func writeIdeaBrandContext(sb *strings.Builder, b *model.Brand) {
	if b == nil {
		sb.WriteString("Generate general UGC content ideas.\n")
		return
	}
	sb.WriteString("Brand context:\n")
	writeLine(sb, "Name", or(b.Name, notSpecified))
	writeLine(sb, "Website", or(b.Domain, notSpecified))
	writeLine(sb, "Category", or(b.Category, notSpecified))
	writeLine(sb, "Value proposition", b.UVP)
	writeLine(sb, "Audience", b.Audience)
	writeLine(sb, "Pain points", b.PainPoints)
	writeLine(sb, "Brand voice", or(b.BrandVoice, defaultVoice))
	writeLine(sb, "Competitors", or(b.Competitors, notSpecified))
}

func writeGeneralIdeaContext(sb *strings.Builder, b *model.Brand) {
	audience := "age, gender, location"
	if b != nil {
		audience = b.Audience
	}
	sb.WriteString("IDEA TYPE: GENERAL / VIRAL\n\n")
	sb.WriteString("You follow a UGC protocol that combines brand research, trend analysis and the 5-component video framework.\n\n")
	sb.WriteString("BRAND RESEARCH:\n")
	sb.WriteString("1. Unique value proposition: key differentiator, main problem solved, why choose it over competitors.\n")
	fmt.Fprintf(sb, "2. Target audience: demographics (%s), psychographics, buying behaviour and preferred networks.\n", audience)
	sb.WriteString("3. Pain point mapping: the specific pain point each idea addresses and how the product solves it.\n")
	sb.WriteString("4. Tone: authentic, helpful, community-minded; the \"smart friend\" who helps make better decisions.\n\n")
	sb.WriteString("NARRATIVE STRUCTURE (15 seconds per idea):\n")
	sb.WriteString("1. Hook (0-3s): immediate attention (\"I can't believe what I just found...\", \"Nobody is talking about this...\", \"Wait for it...\")\n")
	sb.WriteString("2. Problem (3-6s): a relevant pain point\n")
	sb.WriteString("3. Solution (6-12s): the product as the solution, with a clear benefit\n")
	sb.WriteString("4. CTA (12-15s): a clear call to action\n\n")
	sb.WriteString("FORMATS: Before and After, Comparison, Problem/Solution, POV, Testimonial, Hack/Secret Tip, Unboxing, GRWM, Day in the Life, Behind-the-Scenes.\n\n")
	sb.WriteString("Every concept must be filmable with the 5 video components: SUBJECT + ACTION, SHOT TYPE, ENVIRONMENT, KEY VISUALS, FINAL RESULT.\n")
	sb.WriteString("Authenticity keywords: handheld, selfie-mode, slight camera shake, natural lighting, unscripted, genuine reaction, relatable.\n")
}

const ugcIdeaContext = `IDEA TYPE: UGC WITH AI INFLUENCER

You are a creative director specialised in UGC videos for D2C brands.

STEP 1: BRAND FIT RESEARCH
Based on the brand context, work out which influencer resonates with this audience (age, demographics, lifestyle), which values and visual aesthetic fit the product category, and which personality would make the recommendation credible.

STEP 2: CREATE THE AI INFLUENCER WITH AN EXTREMELY DETAILED DESCRIPTION
Include specific age and heritage, hair, distinctive facial features, fashion sense with concrete garments and signature accessories, personality traits and values, and why this person is THE ideal ambassador for this product.

STEP 3: A 3-FRAME VIDEO CONCEPT WITH CINEMATOGRAPHIC DETAIL
FRAME 1: Face cam introduction (5-10 seconds). Setting, shot type, lighting, influencer details, what they say, product presence.
FRAME 2: Using the product (5-10 seconds). Setting and transition, camera movement, step-by-step action, lighting, product as hero, emotional beat.
FRAME 3: Product in an appealing setting (5-10 seconds). Exact setting, composition, surrounding props, lighting and reflections, colour palette, lifestyle association, camera movement.

GOLDEN RULES:
- Each frame reads like a cinematographic storyboard description
- Do NOT mention text overlays or on-screen text
- The product is visible in all 3 frames
- Total video: 15-30 seconds, vertical 9:16
- Style: authentic UGC, highly aesthetic
`

const viralResearchContext = `
VIRAL TREND RESEARCH (last 30 days since %s):

1. Formats that are working: GRWM with natural product placement, authentic Before & After, narrative POV, Day in the life, Duets and Stitches, 15-30 second mini vlogs with a "wow" moment.
2. Recent viral hooks: "Nobody is talking about...", "This changed my routine...", "Wait for it...", "I tried [trend] and here's what happened".
3. Technical elements: motion or strong contrast in the first 0.3 seconds, on-screen keywords, trending audio, 7-21 seconds for retention, vertical 9:16.
4. Current themes: mindful consumption, hacks that solve specific pain points, unpolished behind-the-scenes, real testimonials, plot twists.

Use these trends as inspiration for ideas that feel current and not forced, and name the trend each idea uses and why it will work.
`

const ugcIdeaFields = `    "type": "UGC",
    "aiInfluencer": "A RICH PARAGRAPH describing the AI influencer: Meet [Name], a [age]-year-old [profession] of [heritage], known for [aesthetic]. With [physical description], ... making her/him the perfect ambassador for [product].",
    "frame1": "DETAILED CINEMATOGRAPHIC DESCRIPTION of Frame 1: setting, shot, lighting, influencer, dialogue/theme, product. At least 3-4 sentences.",
    "frame2": "DETAILED CINEMATOGRAPHIC DESCRIPTION of Frame 2: setting, shot, action, lighting, product as hero, emotional beat. At least 3-4 sentences.",
    "frame3": "DETAILED CINEMATOGRAPHIC DESCRIPTION of Frame 3: setting, composition, props, lighting, colour palette, lifestyle association, camera. At least 3-4 sentences."`
