// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"time"

	"learnfeed-service/internal/domain"
)

// FeedRequest represents the query parameters for the personalized feed.
type FeedRequest struct {
	UserID string `query:"user_id" validate:"required,max=100"`
	Format string `query:"format" validate:"omitempty,oneof=short long"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ToFeedParams converts FeedRequest to domain.FeedParams.
func (r *FeedRequest) ToFeedParams() domain.FeedParams {
	return domain.FeedParams{
		UserID: r.UserID,
		Format: domain.Format(r.Format),
		Limit:  r.Limit,
	}
}

// NextUpRequest represents the query parameters for the next-up pick.
type NextUpRequest struct {
	UserID string `query:"user_id" validate:"required,max=100"`
}

// TrendingRequest represents the query parameters for exam trending.
type TrendingRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

// BrowseRequest represents the query parameters for catalog browsing.
type BrowseRequest struct {
	Topic    string `query:"topic" validate:"omitempty,max=100"`
	Format   string `query:"format" validate:"omitempty,oneof=short long"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToBrowseParams converts BrowseRequest to domain.BrowseParams.
func (r *BrowseRequest) ToBrowseParams() domain.BrowseParams {
	return domain.BrowseParams{
		Topic:    r.Topic,
		Format:   domain.Format(r.Format),
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

// WatchRequest represents the request body for recording a watch event.
type WatchRequest struct {
	UserID         string `json:"user_id" validate:"required,max=100"`
	VideoID        string `json:"video_id" validate:"required,max=100"`
	WatchedSeconds int    `json:"watched_seconds" validate:"omitempty,min=0"`
}

// SearchLogRequest represents the request body for recording a search.
type SearchLogRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Query  string `json:"query" validate:"required,max=200"`
}

// TopicRequest represents the request body for an explicit topic request.
type TopicRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Topic  string `json:"topic" validate:"required,max=100"`
}

// SyllabusRequest represents the request body for setting syllabus topics.
type SyllabusRequest struct {
	UserID string   `json:"user_id" validate:"required,max=100"`
	Topics []string `json:"topics" validate:"dive,max=100"`
}

// ExamDateRequest represents the request body for setting the exam date.
// An empty exam_date clears the learner's scheduled exam.
type ExamDateRequest struct {
	UserID   string `json:"user_id" validate:"required,max=100"`
	ExamDate string `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
}

// ParsedExamDate returns the exam date as a time pointer, nil when unset.
func (r *ExamDateRequest) ParsedExamDate() *time.Time {
	if r.ExamDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", r.ExamDate)
	if err != nil {
		return nil
	}

	return &t
}

// LikeRequest represents the request body for liking or unliking a video.
type LikeRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	VideoID string `json:"video_id" validate:"required,max=100"`
}

// FollowRequest represents the request body for following or unfollowing a creator.
type FollowRequest struct {
	UserID    string `json:"user_id" validate:"required,max=100"`
	CreatorID string `json:"creator_id" validate:"required,max=100"`
}

// SyncRequest represents the request body for manual sync.
type SyncRequest struct {
	Source string `json:"source" validate:"omitempty,max=50"`
}
