package model

import "time"

type MediaType string

const (
	MediaTypeCharacter MediaType = "character"
	MediaTypeScene     MediaType = "scene"
)

// GeneratedMedia is an image or video produced for one shot or character of a script.
type GeneratedMedia struct {
	ID           string    `json:"id" firestore:"-"`
	ScriptID     string    `json:"scriptId" firestore:"scriptId"`
	Type         MediaType `json:"type" firestore:"type"`
	Index        int       `json:"shotIndex" firestore:"shotIndex"`
	ImageURL     string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty" firestore:"videoUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" firestore:"thumbnailUrl,omitempty"`
	Prompt       string    `json:"prompt" firestore:"prompt"`
	Provider     string    `json:"provider" firestore:"provider"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

// Shot is one filmable scene extracted from a script's video prompt section.
type Shot struct {
	Index        int     `json:"index"`
	Content      string  `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

// Character is a recurring person detected in a script, generated once and reused across shots.
type Character struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}
