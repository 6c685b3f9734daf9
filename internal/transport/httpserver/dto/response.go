package dto

import (
	"time"

	"learnfeed-service/internal/app/service"
	"learnfeed-service/internal/domain"
)

// VideoResponse represents a single video in the response.
type VideoResponse struct {
	ID            string   `json:"id"`
	SourceID      string   `json:"source_id"`
	ExternalID    string   `json:"external_id"`
	Title         string   `json:"title"`
	CreatorID     string   `json:"creator_id"`
	CreatorName   string   `json:"creator_name"`
	CreatorAvatar string   `json:"creator_avatar,omitempty"`
	Duration      int      `json:"duration_seconds,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	ShortForm     bool     `json:"short_form"`
	ExamRelevant  bool     `json:"exam_relevant"`

	// Engagement metrics
	Views    int `json:"views,omitempty"`
	Likes    int `json:"likes,omitempty"`
	Comments int `json:"comments,omitempty"`

	// Timestamps
	UploadedAt string `json:"uploaded_at"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// FromDomainVideo converts domain.Video to VideoResponse.
func FromDomainVideo(v *domain.Video) VideoResponse {
	return VideoResponse{
		ID:            v.ID,
		SourceID:      v.SourceID,
		ExternalID:    v.ExternalID,
		Title:         v.Title,
		CreatorID:     v.CreatorID,
		CreatorName:   v.CreatorName,
		CreatorAvatar: v.CreatorAvatar,
		Duration:      v.DurationSeconds,
		Topics:        v.Topics,
		ShortForm:     v.ShortForm,
		ExamRelevant:  v.ExamRelevant,
		Views:         v.Views,
		Likes:         v.Likes,
		Comments:      v.Comments,
		UploadedAt:    v.UploadedAt.Format(time.RFC3339),
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     v.UpdatedAt.Format(time.RFC3339),
	}
}

func fromDomainVideos(videos []*domain.Video) []VideoResponse {
	out := make([]VideoResponse, len(videos))
	for i, v := range videos {
		out[i] = FromDomainVideo(v)
	}

	return out
}

// FeedResponse represents the personalized feed response.
type FeedResponse struct {
	Videos      []VideoResponse `json:"videos"`
	Format      string          `json:"format"`
	GeneratedAt string          `json:"generated_at"`
}

// FromFeedResult converts domain.FeedResult to FeedResponse.
func FromFeedResult(result *domain.FeedResult) FeedResponse {
	return FeedResponse{
		Videos:      fromDomainVideos(result.Videos),
		Format:      string(result.Format),
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
	}
}

// NextUpResponse represents the autoplay pick response.
// Video is null when no suitable continuation exists.
type NextUpResponse struct {
	Video *VideoResponse `json:"video"`
}

// FromNextUp converts the next-up pick to NextUpResponse.
func FromNextUp(v *domain.Video) NextUpResponse {
	if v == nil {
		return NextUpResponse{}
	}
	resp := FromDomainVideo(v)

	return NextUpResponse{Video: &resp}
}

// TrendingResponse represents the exam trending response.
type TrendingResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// FromTrending converts a trending slice to TrendingResponse.
func FromTrending(videos []*domain.Video) TrendingResponse {
	return TrendingResponse{Videos: fromDomainVideos(videos)}
}

// CatalogPageResponse represents one page of the browsable catalog.
type CatalogPageResponse struct {
	Videos     []VideoResponse `json:"videos"`
	Pagination PaginationMeta  `json:"pagination"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// FromCatalogPage converts domain.CatalogPage to CatalogPageResponse.
func FromCatalogPage(page *domain.CatalogPage) CatalogPageResponse {
	return CatalogPageResponse{
		Videos: fromDomainVideos(page.Videos),
		Pagination: PaginationMeta{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	}
}

// ActivityResponse summarizes a learner's recorded activity.
type ActivityResponse struct {
	UserID             string   `json:"user_id"`
	WatchCount         int      `json:"watch_count"`
	SearchCount        int      `json:"search_count"`
	RequestedTopics    []string `json:"requested_topics,omitempty"`
	SyllabusTopics     []string `json:"syllabus_topics,omitempty"`
	LikedVideoIDs      []string `json:"liked_video_ids,omitempty"`
	FollowedCreatorIDs []string `json:"followed_creator_ids,omitempty"`
	ExamDate           string   `json:"exam_date,omitempty"`
}

// FromActivityRecord converts domain.ActivityRecord to ActivityResponse.
func FromActivityRecord(record *domain.ActivityRecord) ActivityResponse {
	resp := ActivityResponse{
		UserID:             record.UserID,
		WatchCount:         len(record.WatchEvents),
		SearchCount:        len(record.SearchQueries),
		RequestedTopics:    record.RequestedTopics,
		SyllabusTopics:     record.SyllabusTopics,
		LikedVideoIDs:      record.LikedVideoIDs,
		FollowedCreatorIDs: record.FollowedCreatorIDs,
	}
	if record.ExamDate != nil {
		resp.ExamDate = record.ExamDate.Format("2006-01-02")
	}

	return resp
}

// SyncResultResponse represents the response for a sync operation.
type SyncResultResponse struct {
	Source   string `json:"source"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// SyncResponse represents the response for sync all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary holds summary of sync operation.
type SyncSummary struct {
	TotalSynced int `json:"total_synced"`
	SourcesOK   int `json:"sources_ok"`
	SourcesFail int `json:"sources_fail"`
}

// FromSyncResults converts service.SyncResult slice to SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.SourcesFail++
		} else {
			resp.Summary.TotalSynced += r.Count
			resp.Summary.SourcesOK++
		}

		resp.Results[i] = SyncResultResponse{
			Source:   r.Source,
			Count:    r.Count,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
