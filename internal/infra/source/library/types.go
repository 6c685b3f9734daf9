package library

import (
	"encoding/xml"
	"time"

	"learnfeed-service/internal/domain"
)

// Catalog represents the XML catalog feed from the partner library.
type Catalog struct {
	XMLName xml.Name `xml:"catalog"`
	Videos  Videos   `xml:"videos"`
	Meta    Meta     `xml:"meta"`
}

// Videos wraps the list of videos.
type Videos struct {
	Videos []VideoItem `xml:"video"`
}

// VideoItem represents a single video from the partner library.
type VideoItem struct {
	ID         string   `xml:"id"`
	Title      string   `xml:"title"`
	Teacher    Teacher  `xml:"teacher"`
	Duration   int      `xml:"duration_seconds"`
	Format     string   `xml:"format"`
	ExamPrep   bool     `xml:"exam_prep"`
	Stats      Stats    `xml:"stats"`
	UploadDate string   `xml:"upload_date"`
	Subjects   Subjects `xml:"subjects"`
}

// Teacher holds the publishing teacher's identity.
type Teacher struct {
	ID     string `xml:"id"`
	Name   string `xml:"name"`
	Avatar string `xml:"avatar"`
}

// Stats holds engagement metrics.
type Stats struct {
	Views    int `xml:"views"`
	Likes    int `xml:"likes"`
	Comments int `xml:"comments"`
}

// Subjects wraps the list of subject tags.
type Subjects struct {
	Subject []string `xml:"subject"`
}

// Meta holds pagination info.
type Meta struct {
	TotalCount   int `xml:"total_count"`
	CurrentPage  int `xml:"current_page"`
	ItemsPerPage int `xml:"items_per_page"`
}

// ToDomain converts VideoItem to domain.Video.
func (v *VideoItem) ToDomain(sourceID string) *domain.Video {
	// Upload dates arrive as plain dates (format: 2024-03-15)
	uploadedAt, _ := time.Parse("2006-01-02", v.UploadDate)

	return &domain.Video{
		SourceID:        sourceID,
		ExternalID:      v.ID,
		Title:           v.Title,
		CreatorID:       v.Teacher.ID,
		CreatorName:     v.Teacher.Name,
		CreatorAvatar:   v.Teacher.Avatar,
		DurationSeconds: v.Duration,
		Topics:          v.Subjects.Subject,
		ShortForm:       v.Format == "short",
		ExamRelevant:    v.ExamPrep,
		Views:           v.Stats.Views,
		Likes:           v.Stats.Likes,
		Comments:        v.Stats.Comments,
		UploadedAt:      uploadedAt,
	}
}
