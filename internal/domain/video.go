// Package domain contains the core entities and the ranking logic.
// This package has no external dependencies (only stdlib).
package domain

import (
	"strings"
	"time"
)

// Format partitions the catalog into two disjoint pools.
type Format string

const (
	FormatShort Format = "short"
	FormatLong  Format = "long"
)

// Video represents a single catalog item available for ranking.
// Topics should never be empty; an item without topics can still be
// ranked but never receives a topic-match bonus.
type Video struct {
	// Primary identifiers
	ID         string `json:"id"` // Internal UUID
	SourceID   string `json:"source_id"`
	ExternalID string `json:"external_id"` // ID from the upstream source

	// Display metadata
	Title         string `json:"title"`
	CreatorID     string `json:"creator_id"`
	CreatorName   string `json:"creator_name"`
	CreatorAvatar string `json:"creator_avatar,omitempty"`

	// Catalog attributes
	DurationSeconds int      `json:"duration_seconds"`
	Topics          []string `json:"topics"`
	ShortForm       bool     `json:"short_form"`
	ExamRelevant    bool     `json:"exam_relevant"`

	// Engagement metrics
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`

	// Timestamps
	UploadedAt time.Time `json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewVideo creates a new Video with initialized timestamps.
func NewVideo(sourceID, externalID, title string) *Video {
	now := time.Now().UTC()
	return &Video{
		SourceID:   sourceID,
		ExternalID: externalID,
		Title:      title,
		Topics:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
		UploadedAt: now,
	}
}

// Format returns the pool this video belongs to.
func (v *Video) Format() Format {
	if v.ShortForm {
		return FormatShort
	}
	return FormatLong
}

// HasTopic reports whether the video carries the given topic.
// Matching is case-insensitive.
func (v *Video) HasTopic(topic string) bool {
	topic = strings.ToLower(topic)
	for _, t := range v.Topics {
		if strings.ToLower(t) == topic {
			return true
		}
	}
	return false
}

// DaysSinceUpload returns the number of whole days between the upload
// date and now. A future upload date counts as 0 days old.
func (v *Video) DaysSinceUpload(now time.Time) int {
	days := now.Sub(v.UploadedAt).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days)
}
