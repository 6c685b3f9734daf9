// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"learnfeed-service/internal/domain"
)

// FeedService produces personalized and catalog-wide video rankings.
// The ranking itself is pure and synchronous; this service owns the I/O
// around it (loading snapshots, caching results).
type FeedService struct {
	catalog  domain.CatalogRepository
	activity domain.ActivityRepository
	cache    domain.Cache // nil disables caching
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewFeedService creates a new FeedService. cache may be nil.
func NewFeedService(
	catalog domain.CatalogRepository,
	activity domain.ActivityRepository,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		catalog:  catalog,
		activity: activity,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Recommend returns the top-N personalized feed for one learner and pool.
func (s *FeedService) Recommend(ctx context.Context, params domain.FeedParams) (*domain.FeedResult, error) {
	params.Validate()

	cacheKey := feedCacheKey(params)
	if cached := s.cachedFeed(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	activity, err := s.activity.GetByUser(ctx, params.UserID)
	if err != nil {
		s.logger.Error("loading activity failed", zap.String("user_id", params.UserID), zap.Error(err))
		return nil, err
	}

	catalog, err := s.catalog.All(ctx)
	if err != nil {
		s.logger.Error("loading catalog failed", zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	ranked := domain.Rank(catalog, activity, params.Format == domain.FormatShort, params.Limit, now)

	result := &domain.FeedResult{
		Videos:      ranked,
		Format:      params.Format,
		GeneratedAt: now,
	}

	s.storeFeed(ctx, cacheKey, result)

	s.logger.Debug("feed generated",
		zap.String("user_id", params.UserID),
		zap.String("format", string(params.Format)),
		zap.Int("count", len(ranked)),
	)

	return result, nil
}

// NextUp returns the single best unwatched, topically related video to
// surface after the learner's most recent watch. Returns nil when the
// learner has no watch history or no related unwatched video exists.
func (s *FeedService) NextUp(ctx context.Context, userID string) (*domain.Video, error) {
	activity, err := s.activity.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("loading activity failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	catalog, err := s.catalog.All(ctx)
	if err != nil {
		s.logger.Error("loading catalog failed", zap.Error(err))
		return nil, err
	}

	return domain.NextUp(catalog, activity), nil
}

// TrendingForExam returns the top long-form videos by engagement
// composite. This shelf is catalog-wide, not personalized.
func (s *FeedService) TrendingForExam(ctx context.Context, limit int) ([]*domain.Video, error) {
	if limit < 1 {
		limit = domain.DefaultFeedLimit
	}
	if limit > domain.MaxFeedLimit {
		limit = domain.MaxFeedLimit
	}

	catalog, err := s.catalog.All(ctx)
	if err != nil {
		s.logger.Error("loading catalog failed", zap.Error(err))
		return nil, err
	}

	return domain.TrendingForExam(catalog, limit), nil
}

// Browse returns one page of the catalog matching the given filters.
func (s *FeedService) Browse(ctx context.Context, params domain.BrowseParams) (*domain.CatalogPage, error) {
	params.Validate()

	page, err := s.catalog.List(ctx, params)
	if err != nil {
		s.logger.Error("catalog browse failed", zap.Error(err))
		return nil, err
	}
	return page, nil
}

// GetByID retrieves a single video by its internal ID.
func (s *FeedService) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	video, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("get video failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return video, nil
}

// Count returns the total number of catalog videos.
func (s *FeedService) Count(ctx context.Context) (int64, error) {
	return s.catalog.Count(ctx)
}

// cachedFeed returns the cached feed for the key, or nil on miss or any
// cache failure. Cache failures never fail the request.
func (s *FeedService) cachedFeed(ctx context.Context, key string) *domain.FeedResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var result domain.FeedResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("corrupt cached feed discarded", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &result
}

func (s *FeedService) storeFeed(ctx context.Context, key string, result *domain.FeedResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("marshaling feed for cache failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("caching feed failed", zap.String("key", key), zap.Error(err))
	}
}

// feedCacheKey builds the cache key for one learner/pool/limit combination.
func feedCacheKey(params domain.FeedParams) string {
	return fmt.Sprintf("%s%s:%d", userFeedPrefix(params.UserID), params.Format, params.Limit)
}

// userFeedPrefix is the key prefix shared by all cached feeds of one
// learner; activity writes invalidate it wholesale.
func userFeedPrefix(userID string) string {
	return fmt.Sprintf("feed:%s:", userID)
}
