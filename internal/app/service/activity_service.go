package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"learnfeed-service/internal/domain"
)

// ActivityService records learner signals (watches, searches, likes,
// follows, topic requests, syllabus uploads, exam dates). Every write
// invalidates the learner's cached feeds so the next ranking call sees
// a fresh snapshot.
type ActivityService struct {
	activity domain.ActivityRepository
	catalog  domain.CatalogRepository
	cache    domain.Cache // nil disables invalidation
	logger   *zap.Logger
}

// NewActivityService creates a new ActivityService. cache may be nil.
func NewActivityService(
	activity domain.ActivityRepository,
	catalog domain.CatalogRepository,
	cache domain.Cache,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		activity: activity,
		catalog:  catalog,
		cache:    cache,
		logger:   logger,
	}
}

// RecordWatch appends a watch event. The watched video's topics are
// snapshotted onto the event so affinity extraction never needs a
// catalog lookup later.
func (s *ActivityService) RecordWatch(ctx context.Context, userID, videoID string, watchedSeconds int) error {
	event := domain.WatchEvent{
		VideoID:        videoID,
		WatchedSeconds: watchedSeconds,
		WatchedAt:      time.Now().UTC(),
	}

	video, err := s.catalog.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video != nil {
		event.Topics = video.Topics
	}

	if err := s.activity.AppendWatchEvent(ctx, userID, event); err != nil {
		s.logger.Error("recording watch failed",
			zap.String("user_id", userID),
			zap.String("video_id", videoID),
			zap.Error(err),
		)
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// RecordSearch appends a search query to the learner's history.
func (s *ActivityService) RecordSearch(ctx context.Context, userID, text string) error {
	query := domain.SearchQuery{Text: text, SearchedAt: time.Now().UTC()}
	if err := s.activity.AppendSearchQuery(ctx, userID, query); err != nil {
		s.logger.Error("recording search failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// RequestTopic records an explicit topic request, the highest-confidence
// interest signal.
func (s *ActivityService) RequestTopic(ctx context.Context, userID, topic string) error {
	if err := s.activity.AddRequestedTopic(ctx, userID, topic); err != nil {
		s.logger.Error("recording topic request failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// SetSyllabusTopics replaces the learner's syllabus-derived topics.
func (s *ActivityService) SetSyllabusTopics(ctx context.Context, userID string, topics []string) error {
	if err := s.activity.SetSyllabusTopics(ctx, userID, topics); err != nil {
		s.logger.Error("setting syllabus topics failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// SetExamDate sets or clears the learner's upcoming exam date.
func (s *ActivityService) SetExamDate(ctx context.Context, userID string, examDate *time.Time) error {
	if err := s.activity.SetExamDate(ctx, userID, examDate); err != nil {
		s.logger.Error("setting exam date failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// Like marks a video as liked by the learner. Idempotent.
func (s *ActivityService) Like(ctx context.Context, userID, videoID string) error {
	if err := s.activity.Like(ctx, userID, videoID); err != nil {
		s.logger.Error("recording like failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// Unlike removes a like. Idempotent.
func (s *ActivityService) Unlike(ctx context.Context, userID, videoID string) error {
	if err := s.activity.Unlike(ctx, userID, videoID); err != nil {
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// Follow subscribes the learner to a creator. Idempotent.
func (s *ActivityService) Follow(ctx context.Context, userID, creatorID string) error {
	if err := s.activity.Follow(ctx, userID, creatorID); err != nil {
		s.logger.Error("recording follow failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// Unfollow unsubscribes the learner from a creator. Idempotent.
func (s *ActivityService) Unfollow(ctx context.Context, userID, creatorID string) error {
	if err := s.activity.Unfollow(ctx, userID, creatorID); err != nil {
		return err
	}

	s.invalidateFeeds(ctx, userID)
	return nil
}

// GetActivity returns the learner's full activity record.
func (s *ActivityService) GetActivity(ctx context.Context, userID string) (*domain.ActivityRecord, error) {
	return s.activity.GetByUser(ctx, userID)
}

func (s *ActivityService) invalidateFeeds(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, userFeedPrefix(userID)); err != nil {
		s.logger.Warn("feed cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
