package studio

import (
	"time"

	"learnfeed-service/internal/domain"
)

// Response represents the JSON response from the studio.
type Response struct {
	Videos     []VideoItem `json:"videos"`
	Pagination Pagination  `json:"pagination"`
}

// VideoItem represents a single video from the studio.
type VideoItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Creator         Creator  `json:"creator"`
	DurationSeconds int      `json:"duration_seconds"`
	Topics          []string `json:"topics"`
	ShortForm       bool     `json:"short_form"`
	ExamRelevant    bool     `json:"exam_relevant"`
	Stats           Stats    `json:"stats"`
	UploadedAt      string   `json:"uploaded_at"`
}

// Creator holds the publishing creator's identity.
type Creator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Stats holds engagement metrics.
type Stats struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// Pagination holds pagination info.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ToDomain converts VideoItem to domain.Video.
func (v *VideoItem) ToDomain(sourceID string) *domain.Video {
	uploadedAt, _ := time.Parse(time.RFC3339, v.UploadedAt)

	return &domain.Video{
		SourceID:        sourceID,
		ExternalID:      v.ID,
		Title:           v.Title,
		CreatorID:       v.Creator.ID,
		CreatorName:     v.Creator.Name,
		CreatorAvatar:   v.Creator.Avatar,
		DurationSeconds: v.DurationSeconds,
		Topics:          v.Topics,
		ShortForm:       v.ShortForm,
		ExamRelevant:    v.ExamRelevant,
		Views:           v.Stats.Views,
		Likes:           v.Stats.Likes,
		Comments:        v.Stats.Comments,
		UploadedAt:      uploadedAt,
	}
}
