package domain

import (
	"context"
	"time"
)

// CatalogRepository defines the interface for catalog persistence.
// Implementations: internal/infra/postgres/catalog_repository.go
type CatalogRepository interface {
	// All returns the full catalog snapshot used for in-memory ranking.
	All(ctx context.Context) ([]*Video, error)

	// List returns one page of the catalog matching the browse filters.
	List(ctx context.Context, params BrowseParams) (*CatalogPage, error)

	// GetByID retrieves a single video by its internal ID.
	GetByID(ctx context.Context, id string) (*Video, error)

	// GetBySourceAndExternalID retrieves a video by source and external ID.
	GetBySourceAndExternalID(ctx context.Context, sourceID, externalID string) (*Video, error)

	// Upsert creates or updates a single video.
	// Uses source_id + external_id as the unique key.
	Upsert(ctx context.Context, video *Video) error

	// BulkUpsert creates or updates multiple videos in a batch.
	BulkUpsert(ctx context.Context, videos []*Video) error

	// Delete removes a video by its internal ID.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of catalog videos.
	Count(ctx context.Context) (int64, error)
}

// ActivityRepository defines the interface for learner activity
// persistence. Ranking reads one immutable snapshot per call; writes
// happen through the append/set methods between ranking calls.
// Implementations: internal/infra/postgres/activity_repository.go
type ActivityRepository interface {
	// GetByUser assembles the full activity record for a learner.
	// A learner with no recorded activity yields an empty record, not an error.
	GetByUser(ctx context.Context, userID string) (*ActivityRecord, error)

	AppendWatchEvent(ctx context.Context, userID string, event WatchEvent) error
	AppendSearchQuery(ctx context.Context, userID string, query SearchQuery) error
	AddRequestedTopic(ctx context.Context, userID, topic string) error
	SetSyllabusTopics(ctx context.Context, userID string, topics []string) error
	SetExamDate(ctx context.Context, userID string, examDate *time.Time) error

	Like(ctx context.Context, userID, videoID string) error
	Unlike(ctx context.Context, userID, videoID string) error
	Follow(ctx context.Context, userID, creatorID string) error
	Unfollow(ctx context.Context, userID, creatorID string) error
}

// CatalogSource defines the interface for upstream content sources.
// Implementations: internal/infra/source/studio/, internal/infra/source/library/
type CatalogSource interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Fetch retrieves all available videos from the source.
	Fetch(ctx context.Context) ([]*Video, error)

	// HealthCheck verifies the source is accessible.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes all values whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
