// Package prompts builds the request text sent to the text generator.
// Builders are pure: the same input always yields the same prompt.
package prompts

import (
	"fmt"
	"strings"

	"ugc-studio/internal/model"
)

// SystemPrompt is sent with every generation call.
const SystemPrompt = "You are a senior content-marketing strategist and creative director specialised in authentic UGC (user generated content) for TikTok, Instagram Reels and YouTube Shorts. Follow the requested output format exactly."

const (
	notSpecified    = "Not specified"
	defaultVoice    = "Authentic and approachable"
	defaultAudience = "General audience"
)

// or returns value, or fallback when value is blank.
func or(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func writeLine(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "- %s: %s\n", label, value)
}

// IdeaConcept turns an idea into the concept text a script is generated from.
func IdeaConcept(idea model.Idea) string {
	return fmt.Sprintf("%s\n\n%s\n\nHook: %s", idea.Title, idea.Description, idea.Hook)
}
