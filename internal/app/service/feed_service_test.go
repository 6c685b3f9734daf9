package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnfeed-service/internal/domain"
)

// fakeCatalog is an in-memory CatalogRepository for service tests.
type fakeCatalog struct {
	videos []*domain.Video
}

func (f *fakeCatalog) All(_ context.Context) ([]*domain.Video, error) {
	return f.videos, nil
}

func (f *fakeCatalog) List(_ context.Context, params domain.BrowseParams) (*domain.CatalogPage, error) {
	return domain.NewCatalogPage(f.videos, int64(len(f.videos)), params), nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*domain.Video, error) {
	for _, v := range f.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) GetBySourceAndExternalID(_ context.Context, _, _ string) (*domain.Video, error) {
	return nil, nil
}

func (f *fakeCatalog) Upsert(_ context.Context, v *domain.Video) error {
	f.videos = append(f.videos, v)
	return nil
}

func (f *fakeCatalog) BulkUpsert(_ context.Context, videos []*domain.Video) error {
	f.videos = append(f.videos, videos...)
	return nil
}

func (f *fakeCatalog) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeCatalog) Count(_ context.Context) (int64, error) {
	return int64(len(f.videos)), nil
}

// fakeActivity serves a fixed activity record and records writes.
type fakeActivity struct {
	record  *domain.ActivityRecord
	watches []domain.WatchEvent
}

func (f *fakeActivity) GetByUser(_ context.Context, userID string) (*domain.ActivityRecord, error) {
	if f.record != nil {
		return f.record, nil
	}
	return domain.NewActivityRecord(userID), nil
}

func (f *fakeActivity) AppendWatchEvent(_ context.Context, _ string, ev domain.WatchEvent) error {
	f.watches = append(f.watches, ev)
	return nil
}

func (f *fakeActivity) AppendSearchQuery(_ context.Context, _ string, _ domain.SearchQuery) error {
	return nil
}
func (f *fakeActivity) AddRequestedTopic(_ context.Context, _, _ string) error       { return nil }
func (f *fakeActivity) SetSyllabusTopics(_ context.Context, _ string, _ []string) error { return nil }
func (f *fakeActivity) SetExamDate(_ context.Context, _ string, _ *time.Time) error  { return nil }
func (f *fakeActivity) Like(_ context.Context, _, _ string) error                    { return nil }
func (f *fakeActivity) Unlike(_ context.Context, _, _ string) error                  { return nil }
func (f *fakeActivity) Follow(_ context.Context, _, _ string) error                  { return nil }
func (f *fakeActivity) Unfollow(_ context.Context, _, _ string) error                { return nil }

// fakeCache is an in-memory domain.Cache.
type fakeCache struct {
	data map[string][]byte
	sets int
	gets int
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.gets++
	if v, ok := f.data[key]; ok {
		f.hits++
		return v, nil
	}
	return nil, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.sets++
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func testCatalog(now time.Time) *fakeCatalog {
	return &fakeCatalog{videos: []*domain.Video{
		{ID: "long-algebra", CreatorID: "c1", Topics: []string{"algebra"}, Views: 1000, UploadedAt: now.AddDate(0, 0, -1)},
		{ID: "long-biology", CreatorID: "c2", Topics: []string{"biology"}, Views: 1000, UploadedAt: now.AddDate(0, 0, -1)},
		{ID: "short-algebra", CreatorID: "c1", Topics: []string{"algebra"}, ShortForm: true, Views: 1000, UploadedAt: now.AddDate(0, 0, -1)},
	}}
}

func TestFeedService_Recommend_FiltersPoolAndRanks(t *testing.T) {
	now := time.Now().UTC()
	activity := domain.NewActivityRecord("u1")
	activity.RequestedTopics = []string{"algebra"}

	svc := NewFeedService(testCatalog(now), &fakeActivity{record: activity}, nil, 0, zap.NewNop())

	result, err := svc.Recommend(context.Background(), domain.FeedParams{UserID: "u1", Format: domain.FormatLong, Limit: 5})
	require.NoError(t, err)
	require.Len(t, result.Videos, 2)
	assert.Equal(t, "long-algebra", result.Videos[0].ID)
	for _, v := range result.Videos {
		assert.False(t, v.ShortForm)
	}
}

func TestFeedService_Recommend_UsesCache(t *testing.T) {
	now := time.Now().UTC()
	cache := newFakeCache()
	svc := NewFeedService(testCatalog(now), &fakeActivity{}, cache, time.Minute, zap.NewNop())

	params := domain.FeedParams{UserID: "u1", Format: domain.FormatShort, Limit: 5}

	first, err := svc.Recommend(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Recommend(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "second call should be served from cache")
	require.Len(t, second.Videos, len(first.Videos))
	for i := range first.Videos {
		assert.Equal(t, first.Videos[i].ID, second.Videos[i].ID)
	}
}

func TestFeedService_NextUp_NoHistory(t *testing.T) {
	now := time.Now().UTC()
	svc := NewFeedService(testCatalog(now), &fakeActivity{}, nil, 0, zap.NewNop())

	next, err := svc.NextUp(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestFeedService_NextUp_TopicalPick(t *testing.T) {
	now := time.Now().UTC()
	activity := domain.NewActivityRecord("u1")
	activity.WatchEvents = []domain.WatchEvent{
		{VideoID: "long-algebra", Topics: []string{"algebra"}, WatchedAt: now},
	}

	svc := NewFeedService(testCatalog(now), &fakeActivity{record: activity}, nil, 0, zap.NewNop())

	next, err := svc.NextUp(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "short-algebra", next.ID)
	assert.NotEqual(t, "long-algebra", next.ID, "must not re-recommend a watched video")
}

func TestFeedService_TrendingForExam_ExcludesShorts(t *testing.T) {
	now := time.Now().UTC()
	svc := NewFeedService(testCatalog(now), &fakeActivity{}, nil, 0, zap.NewNop())

	trending, err := svc.TrendingForExam(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	for _, v := range trending {
		assert.False(t, v.ShortForm)
	}
}

func TestActivityService_RecordWatch_SnapshotsTopicsAndInvalidates(t *testing.T) {
	now := time.Now().UTC()
	catalog := testCatalog(now)
	activity := &fakeActivity{}
	cache := newFakeCache()
	cache.data["feed:u1:long:10"] = []byte("{}")
	cache.data["feed:u2:long:10"] = []byte("{}")

	svc := NewActivityService(activity, catalog, cache, zap.NewNop())

	err := svc.RecordWatch(context.Background(), "u1", "long-algebra", 120)
	require.NoError(t, err)

	require.Len(t, activity.watches, 1)
	assert.Equal(t, []string{"algebra"}, activity.watches[0].Topics)

	_, u1Cached := cache.data["feed:u1:long:10"]
	_, u2Cached := cache.data["feed:u2:long:10"]
	assert.False(t, u1Cached, "watcher's cached feeds must be invalidated")
	assert.True(t, u2Cached, "other learners' caches must survive")
}
