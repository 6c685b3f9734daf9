package postgres

import (
	"time"

	"learnfeed-service/internal/domain"

	"github.com/lib/pq"
)

// VideoModel is the GORM model for the videos table.
type VideoModel struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceID   string `gorm:"type:varchar(50);not null;index:idx_source_external,unique"`
	ExternalID string `gorm:"type:varchar(100);not null;index:idx_source_external,unique"`

	Title         string `gorm:"type:varchar(500);not null"`
	CreatorID     string `gorm:"type:varchar(100);not null;index"`
	CreatorName   string `gorm:"type:varchar(200);not null"`
	CreatorAvatar string `gorm:"type:varchar(500)"`

	DurationSeconds int            `gorm:"default:0"`
	Topics          pq.StringArray `gorm:"type:text[]"`
	ShortForm       bool           `gorm:"not null;default:false;index"`
	ExamRelevant    bool           `gorm:"not null;default:false"`

	Views    int `gorm:"default:0"`
	Likes    int `gorm:"default:0"`
	Comments int `gorm:"default:0"`

	UploadedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for VideoModel.
func (VideoModel) TableName() string {
	return "videos"
}

// ToDomain converts VideoModel to domain.Video.
func (m *VideoModel) ToDomain() *domain.Video {
	return &domain.Video{
		ID:              m.ID,
		SourceID:        m.SourceID,
		ExternalID:      m.ExternalID,
		Title:           m.Title,
		CreatorID:       m.CreatorID,
		CreatorName:     m.CreatorName,
		CreatorAvatar:   m.CreatorAvatar,
		DurationSeconds: m.DurationSeconds,
		Topics:          m.Topics,
		ShortForm:       m.ShortForm,
		ExamRelevant:    m.ExamRelevant,
		Views:           m.Views,
		Likes:           m.Likes,
		Comments:        m.Comments,
		UploadedAt:      m.UploadedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain creates a VideoModel from domain.Video.
func FromDomain(v *domain.Video) *VideoModel {
	return &VideoModel{
		ID:              v.ID,
		SourceID:        v.SourceID,
		ExternalID:      v.ExternalID,
		Title:           v.Title,
		CreatorID:       v.CreatorID,
		CreatorName:     v.CreatorName,
		CreatorAvatar:   v.CreatorAvatar,
		DurationSeconds: v.DurationSeconds,
		Topics:          v.Topics,
		ShortForm:       v.ShortForm,
		ExamRelevant:    v.ExamRelevant,
		Views:           v.Views,
		Likes:           v.Likes,
		Comments:        v.Comments,
		UploadedAt:      v.UploadedAt,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// FromDomainSlice converts a slice of domain.Video to VideoModels.
func FromDomainSlice(videos []*domain.Video) []*VideoModel {
	models := make([]*VideoModel, len(videos))
	for i, v := range videos {
		models[i] = FromDomain(v)
	}
	return models
}

// WatchEventModel is the GORM model for the watch_events table.
type WatchEventModel struct {
	ID             int64          `gorm:"primaryKey;autoIncrement"`
	UserID         string         `gorm:"type:varchar(100);not null;index"`
	VideoID        string         `gorm:"type:varchar(100);not null"`
	WatchedSeconds int            `gorm:"default:0"`
	Topics         pq.StringArray `gorm:"type:text[]"`
	WatchedAt      time.Time      `gorm:"not null;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

// TableName returns the table name for WatchEventModel.
func (WatchEventModel) TableName() string {
	return "watch_events"
}

// SearchQueryModel is the GORM model for the search_queries table.
type SearchQueryModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     string    `gorm:"type:varchar(100);not null;index"`
	Text       string    `gorm:"type:varchar(200);not null"`
	SearchedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for SearchQueryModel.
func (SearchQueryModel) TableName() string {
	return "search_queries"
}

// LikeModel is the GORM model for the likes table.
type LikeModel struct {
	UserID    string    `gorm:"type:varchar(100);primaryKey"`
	VideoID   string    `gorm:"type:varchar(100);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for LikeModel.
func (LikeModel) TableName() string {
	return "likes"
}

// FollowModel is the GORM model for the follows table.
type FollowModel struct {
	UserID    string    `gorm:"type:varchar(100);primaryKey"`
	CreatorID string    `gorm:"type:varchar(100);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for FollowModel.
func (FollowModel) TableName() string {
	return "follows"
}

// LearnerProfileModel is the GORM model for the learner_profiles table.
// It carries the scalar and list-valued signals that are set rather
// than appended: requested topics, syllabus topics, and the exam date.
type LearnerProfileModel struct {
	UserID          string         `gorm:"type:varchar(100);primaryKey"`
	RequestedTopics pq.StringArray `gorm:"type:text[]"`
	SyllabusTopics  pq.StringArray `gorm:"type:text[]"`
	ExamDate        *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for LearnerProfileModel.
func (LearnerProfileModel) TableName() string {
	return "learner_profiles"
}
