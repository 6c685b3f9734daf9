package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnfeed-service/internal/domain"
)

// CatalogRepository implements domain.CatalogRepository using PostgreSQL.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// All returns the full catalog snapshot in upload order (newest last
// insertion is irrelevant for ranking; catalog order is the stable
// tie-break, so the ordering must be deterministic).
func (r *CatalogRepository) All(ctx context.Context) ([]*domain.Video, error) {
	var models []VideoModel
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	videos := make([]*domain.Video, len(models))
	for i := range models {
		videos[i] = models[i].ToDomain()
	}
	return videos, nil
}

// List returns one page of the catalog matching the browse filters.
func (r *CatalogRepository) List(ctx context.Context, params domain.BrowseParams) (*domain.CatalogPage, error) {
	params.Validate()

	query := r.buildBrowseQuery(params)

	var total int64
	if err := query.WithContext(ctx).Model(&VideoModel{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting videos: %w", err)
	}

	var models []VideoModel
	err := query.WithContext(ctx).
		Order("uploaded_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("browsing catalog: %w", err)
	}

	videos := make([]*domain.Video, len(models))
	for i := range models {
		videos[i] = models[i].ToDomain()
	}
	return domain.NewCatalogPage(videos, total, params), nil
}

// GetByID retrieves a single video by its internal ID.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var model VideoModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("getting video by id: %w", err)
	}
	return model.ToDomain(), nil
}

// GetBySourceAndExternalID retrieves a video by source and external ID.
func (r *CatalogRepository) GetBySourceAndExternalID(ctx context.Context, sourceID, externalID string) (*domain.Video, error) {
	var model VideoModel
	err := r.db.WithContext(ctx).
		Where("source_id = ? AND external_id = ?", sourceID, externalID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("getting video by source and external id: %w", err)
	}
	return model.ToDomain(), nil
}

// videoUpsertColumns are the columns refreshed on conflict during upserts.
var videoUpsertColumns = []string{
	"title", "creator_id", "creator_name", "creator_avatar",
	"duration_seconds", "topics", "short_form", "exam_relevant",
	"views", "likes", "comments",
	"uploaded_at", "updated_at",
}

// Upsert creates or updates a single video.
func (r *CatalogRepository) Upsert(ctx context.Context, video *domain.Video) error {
	model := FromDomain(video)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(videoUpsertColumns),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upserting video: %w", err)
	}

	// Propagate database-generated fields back to the domain object
	video.ID = model.ID
	video.CreatedAt = model.CreatedAt
	video.UpdatedAt = model.UpdatedAt

	return nil
}

// BulkUpsert creates or updates multiple videos in a batch.
func (r *CatalogRepository) BulkUpsert(ctx context.Context, videos []*domain.Video) error {
	if len(videos) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := FromDomainSlice(videos)
	for _, m := range models {
		m.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(videoUpsertColumns),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting videos: %w", err)
	}

	for i, m := range models {
		videos[i].ID = m.ID
		videos[i].CreatedAt = m.CreatedAt
		videos[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// Delete removes a video by its internal ID.
func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&VideoModel{})
	if result.Error != nil {
		return fmt.Errorf("deleting video: %w", result.Error)
	}
	return nil
}

// Count returns the total number of catalog videos.
func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&VideoModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting videos: %w", err)
	}
	return count, nil
}

// buildBrowseQuery builds the WHERE clause for catalog browsing.
// All parameters are bound through GORM's parameterized queries.
func (r *CatalogRepository) buildBrowseQuery(params domain.BrowseParams) *gorm.DB {
	query := r.db.Model(&VideoModel{})

	if params.Topic != "" {
		// Topic tags are matched case-insensitively against the text[] column
		query = query.Where(
			"EXISTS (SELECT 1 FROM unnest(topics) AS t WHERE LOWER(t) = LOWER(?))",
			params.Topic,
		)
	}

	if params.Format != "" {
		query = query.Where("short_form = ?", params.Format == domain.FormatShort)
	}

	return query
}
