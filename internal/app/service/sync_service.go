package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"learnfeed-service/internal/domain"
)

// SyncService pulls the video catalog from the upstream content sources
// into the local repository.
type SyncService struct {
	catalog domain.CatalogRepository
	sources []domain.CatalogSource
	logger  *zap.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(catalog domain.CatalogRepository, sources []domain.CatalogSource, logger *zap.Logger) *SyncService {
	return &SyncService{
		catalog: catalog,
		sources: sources,
		logger:  logger,
	}
}

// SyncResult holds the result of syncing one source.
type SyncResult struct {
	Source   string
	Count    int
	Duration time.Duration
	Error    error
}

// SyncAll synchronizes the catalog from all sources concurrently.
// Partial failures are allowed; each source reports its own result.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.sources))
	var wg sync.WaitGroup

	s.logger.Info("starting catalog sync",
		zap.Int("source_count", len(s.sources)),
	)

	for i, src := range s.sources {
		wg.Add(1)
		go func(idx int, src domain.CatalogSource) {
			defer wg.Done()
			results[idx] = s.syncSource(ctx, src)
		}(i, src)
	}

	wg.Wait()

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
		} else {
			totalSynced += r.Count
		}
	}

	s.logger.Info("catalog sync completed",
		zap.Int("total_synced", totalSynced),
		zap.Int("sources_failed", totalErrors),
	)

	return results
}

// syncSource fetches and upserts videos from a single source.
func (s *SyncService) syncSource(ctx context.Context, src domain.CatalogSource) SyncResult {
	start := time.Now()
	result := SyncResult{Source: src.Name()}

	s.logger.Debug("syncing source", zap.String("source", src.Name()))

	videos, err := src.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("source fetch failed",
			zap.String("source", src.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(videos) > 0 {
		if err := s.catalog.BulkUpsert(ctx, videos); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("bulk upsert failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Count = len(videos)
	result.Duration = time.Since(start)

	s.logger.Info("source sync completed",
		zap.String("source", src.Name()),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// SyncSource synchronizes the catalog from a specific source.
// Returns nil when no source matches the name.
func (s *SyncService) SyncSource(ctx context.Context, name string) (*SyncResult, error) {
	for _, src := range s.sources {
		if src.Name() == name {
			result := s.syncSource(ctx, src)
			return &result, result.Error
		}
	}
	return nil, nil
}

// SourceNames returns the names of all registered sources.
func (s *SyncService) SourceNames() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name()
	}
	return names
}
