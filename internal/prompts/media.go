package prompts

import (
	"fmt"
	"strings"
)

// DefaultVideoDuration is used when VideoOptions.Duration is empty.
const DefaultVideoDuration = "5-10"

// VideoOptions tune the video-frame prompt.
type VideoOptions struct {
	Duration string
	// ReferenceImageURL is the influencer image the video must stay consistent with.
	ReferenceImageURL string
}

// InfluencerImage optimizes a character or scene description for image generation.
func InfluencerImage(description string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A candid, authentic UGC-style photo of a %s.\n", strings.TrimSuffix(strings.TrimSpace(description), "."))
	sb.WriteString("The photo should feel like a spontaneous, unfiltered moment captured on a high-end smartphone, ")
	sb.WriteString("with realistic skin texture and a natural, relaxed pose.\n")
	sb.WriteString("Shot with natural lighting, slight depth of field, 9:16 vertical format for social media.\n")
	sb.WriteString("Ultra-realistic, Instagram influencer aesthetic, professional but authentic.")
	return sb.String()
}

// VideoFrame optimizes a shot description for video generation.
func VideoFrame(description string, opts VideoOptions) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(description))
	sb.WriteString("\n\n")
	sb.WriteString("Style: Ultra-realistic UGC video content, filmed on smartphone in vertical 9:16 format.\n")
	sb.WriteString("Camera: Handheld with subtle shake for authenticity, natural movements.\n")
	sb.WriteString("Lighting: Soft, natural lighting that feels real and unfiltered.\n")
	sb.WriteString("Quality: High-end smartphone footage quality, not overly produced.\n")
	fmt.Fprintf(&sb, "Duration: %s seconds.", or(opts.Duration, DefaultVideoDuration))
	if opts.ReferenceImageURL != "" {
		sb.WriteString("\n\nContinuity with influencer appearance: maintain consistency with provided reference image.")
	}
	return sb.String()
}
