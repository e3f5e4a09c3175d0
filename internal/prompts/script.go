package prompts

import (
	"fmt"
	"strings"

	"ugc-studio/internal/model"
)

// VideoPromptHeader opens the video-prompt section that the shot breakdown reads.
const VideoPromptHeader = "**Video Generation Prompt:**"

// Script builds the script prompt for concept. Ideas of type UGC that carry
// frames get the three-frame influencer variant, everything else the
// three-act variant.
func Script(concept string, b *model.Brand, idea *model.Idea) string {
	var sb strings.Builder
	if idea.HasFrames() {
		sb.WriteString("You are an expert in writing text-to-video prompts for authentic UGC content with AI influencers.\n\n")
	} else {
		sb.WriteString("You are an expert in writing text-to-video prompts for authentic UGC content.\n\n")
	}
	writeScriptBrandContext(&sb, b)
	fmt.Fprintf(&sb, "Video concept: %s\n\n", concept)

	if idea.HasFrames() {
		writeUGCScript(&sb, idea)
	} else {
		writeThreeActScript(&sb)
	}
	return sb.String()
}

func writeScriptBrandContext(sb *strings.Builder, b *model.Brand) {
	if b == nil {
		return
	}
	sb.WriteString("Brand information:\n")
	writeLine(sb, "Name", or(b.Name, "The brand"))
	writeLine(sb, "Website", or(b.Domain, notSpecified))
	writeLine(sb, "Category", or(b.Category, notSpecified))
	writeLine(sb, "Value proposition", or(b.UVP, notSpecified))
	writeLine(sb, "Audience", or(b.Audience, defaultAudience))
	writeLine(sb, "Pain points", or(b.PainPoints, notSpecified))
	writeLine(sb, "Brand voice", or(b.BrandVoice, "Authentic and conversational"))
	sb.WriteString("\n")
}

func writeUGCScript(sb *strings.Builder, idea *model.Idea) {
	sb.WriteString("=== AI INFLUENCER ===\n")
	sb.WriteString(or(idea.AIInfluencer, "Authentic, relatable influencer"))
	sb.WriteString("\n\n=== VIDEO STRUCTURE (3 FRAMES) ===\n\n")
	fmt.Fprintf(sb, "FRAME 1 (5-10 seconds): %s\n", idea.Frame1)
	fmt.Fprintf(sb, "FRAME 2 (5-10 seconds): %s\n", idea.Frame2)
	fmt.Fprintf(sb, "FRAME 3 (5-10 seconds): %s\n\n", idea.Frame3)

	sb.WriteString("YOUR TASK:\n")
	sb.WriteString("Write a DETAILED video prompt that produces this UGC video with the AI influencer, following EXACTLY the 3-frame structure.\n\n")
	sb.WriteString("For each FRAME specify:\n")
	sb.WriteString("1. DETAILED VISUALS: influencer appearance, framing (selfie-mode, close-up, medium shot, wide shot), specific location, lighting, product placement.\n")
	sb.WriteString("2. ACTION AND MOVEMENT: gestures and expressions, camera movement (authentic handheld shake, static, slight pan, zoom), interaction with the product.\n")
	sb.WriteString("3. UGC STYLE: ultra-realistic smartphone footage, slightly shaky camera, no filters, vertical 9:16.\n\n")
	sb.WriteString("RULES:\n")
	sb.WriteString("- No text overlays or on-screen text\n")
	sb.WriteString("- The product MUST be visible in all 3 frames\n")
	sb.WriteString("- Total duration: 15-30 seconds\n")
	sb.WriteString("- Keep visual continuity between frames; the influencer looks the same in Frame 1 and 2\n\n")
	sb.WriteString("Output format:\n")
	fmt.Fprintf(sb, "Start the prompt with the line %s and write it as continuous, flowing text, separating the 3 frames with [CUT TO:] and describing each scene in cinematographic detail.\n", VideoPromptHeader)
}

func writeThreeActScript(sb *strings.Builder) {
	sb.WriteString("Write a detailed script that includes:\n\n")
	sb.WriteString("1. A 3-ACT STRUCTURE:\n")
	sb.WriteString("   - HOOK (3 seconds): immediate attention\n")
	sb.WriteString("   - ACTION: demonstration of the product or concept\n")
	sb.WriteString("   - REACTION: authentic reaction and call to action\n\n")
	sb.WriteString("2. TECHNICAL SPECS for each shot:\n")
	sb.WriteString("   - Shot type (selfie-mode, close-up, medium shot, wide shot)\n")
	sb.WriteString("   - Camera movement (handheld shake, static, dolly, pan)\n")
	sb.WriteString("   - Environment (living room, kitchen, outdoor)\n")
	sb.WriteString("   - Lighting (natural light, golden hour, soft lighting)\n")
	sb.WriteString("   - UGC details (shaky camera, unscripted feel, authentic reactions)\n\n")
	sb.WriteString("3. FINAL STYLE:\n")
	sb.WriteString("   - Ultra-realistic, conversational UGC style, as if filmed on a smartphone, unfiltered\n\n")
	fmt.Fprintf(sb, "Then write the complete video prompt under the line %s as continuous text, separating every shot with [cut].\n", VideoPromptHeader)
}
