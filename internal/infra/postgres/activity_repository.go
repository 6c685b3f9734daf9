package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnfeed-service/internal/domain"
)

// ActivityRepository implements domain.ActivityRepository using PostgreSQL.
// The activity record is spread over five tables; GetByUser assembles
// them into one read-only snapshot for the ranking call.
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new PostgreSQL activity repository.
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// GetByUser assembles the full activity record for a learner. A learner
// with no recorded activity yields an empty record, not an error.
func (r *ActivityRepository) GetByUser(ctx context.Context, userID string) (*domain.ActivityRecord, error) {
	record := domain.NewActivityRecord(userID)

	var watches []WatchEventModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("watched_at ASC, id ASC").
		Find(&watches).Error
	if err != nil {
		return nil, fmt.Errorf("loading watch events: %w", err)
	}
	for _, w := range watches {
		record.WatchEvents = append(record.WatchEvents, domain.WatchEvent{
			VideoID:        w.VideoID,
			WatchedSeconds: w.WatchedSeconds,
			Topics:         w.Topics,
			WatchedAt:      w.WatchedAt,
		})
	}

	var searches []SearchQueryModel
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("searched_at ASC, id ASC").
		Find(&searches).Error
	if err != nil {
		return nil, fmt.Errorf("loading search queries: %w", err)
	}
	for _, q := range searches {
		record.SearchQueries = append(record.SearchQueries, domain.SearchQuery{
			Text:       q.Text,
			SearchedAt: q.SearchedAt,
		})
	}

	var likes []LikeModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("loading likes: %w", err)
	}
	for _, l := range likes {
		record.LikedVideoIDs = append(record.LikedVideoIDs, l.VideoID)
	}

	var follows []FollowModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("loading follows: %w", err)
	}
	for _, f := range follows {
		record.FollowedCreatorIDs = append(record.FollowedCreatorIDs, f.CreatorID)
	}

	var profile LearnerProfileModel
	err = r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loading learner profile: %w", err)
	}
	if err == nil {
		record.RequestedTopics = profile.RequestedTopics
		record.SyllabusTopics = profile.SyllabusTopics
		record.ExamDate = profile.ExamDate
	}

	return record, nil
}

// AppendWatchEvent appends one watch event to the learner's history.
func (r *ActivityRepository) AppendWatchEvent(ctx context.Context, userID string, event domain.WatchEvent) error {
	model := WatchEventModel{
		UserID:         userID,
		VideoID:        event.VideoID,
		WatchedSeconds: event.WatchedSeconds,
		Topics:         event.Topics,
		WatchedAt:      event.WatchedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("appending watch event: %w", err)
	}
	return nil
}

// AppendSearchQuery appends one search query to the learner's history.
func (r *ActivityRepository) AppendSearchQuery(ctx context.Context, userID string, query domain.SearchQuery) error {
	model := SearchQueryModel{
		UserID:     userID,
		Text:       query.Text,
		SearchedAt: query.SearchedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("appending search query: %w", err)
	}
	return nil
}

// AddRequestedTopic appends an explicit topic request to the learner's
// profile, creating the profile row when missing.
func (r *ActivityRepository) AddRequestedTopic(ctx context.Context, userID, topic string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := LearnerProfileModel{UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
			return err
		}
		return tx.Model(&LearnerProfileModel{}).
			Where("user_id = ?", userID).
			Update("requested_topics", gorm.Expr("array_append(requested_topics, ?)", topic)).Error
	})
	if err != nil {
		return fmt.Errorf("adding requested topic: %w", err)
	}
	return nil
}

// SetSyllabusTopics replaces the learner's syllabus-derived topics.
func (r *ActivityRepository) SetSyllabusTopics(ctx context.Context, userID string, topics []string) error {
	if err := r.upsertProfile(ctx, userID, "syllabus_topics", topicsColumn(topics)); err != nil {
		return fmt.Errorf("setting syllabus topics: %w", err)
	}
	return nil
}

// SetExamDate sets or clears the learner's upcoming exam date.
func (r *ActivityRepository) SetExamDate(ctx context.Context, userID string, examDate *time.Time) error {
	if err := r.upsertProfile(ctx, userID, "exam_date", examDate); err != nil {
		return fmt.Errorf("setting exam date: %w", err)
	}
	return nil
}

// Like marks a video as liked by the learner. Idempotent.
func (r *ActivityRepository) Like(ctx context.Context, userID, videoID string) error {
	model := LikeModel{UserID: userID, VideoID: videoID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("recording like: %w", err)
	}
	return nil
}

// Unlike removes a like. Idempotent.
func (r *ActivityRepository) Unlike(ctx context.Context, userID, videoID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&LikeModel{}).Error
	if err != nil {
		return fmt.Errorf("removing like: %w", err)
	}
	return nil
}

// Follow subscribes the learner to a creator. Idempotent.
func (r *ActivityRepository) Follow(ctx context.Context, userID, creatorID string) error {
	model := FollowModel{UserID: userID, CreatorID: creatorID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("recording follow: %w", err)
	}
	return nil
}

// Unfollow unsubscribes the learner from a creator. Idempotent.
func (r *ActivityRepository) Unfollow(ctx context.Context, userID, creatorID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND creator_id = ?", userID, creatorID).
		Delete(&FollowModel{}).Error
	if err != nil {
		return fmt.Errorf("removing follow: %w", err)
	}
	return nil
}

// upsertProfile ensures the profile row exists, then updates one column.
func (r *ActivityRepository) upsertProfile(ctx context.Context, userID, column string, value interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := LearnerProfileModel{UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
			return err
		}
		return tx.Model(&LearnerProfileModel{}).
			Where("user_id = ?", userID).
			Update(column, value).Error
	})
}

func topicsColumn(topics []string) pq.StringArray {
	if topics == nil {
		topics = []string{}
	}
	return pq.StringArray(topics)
}
