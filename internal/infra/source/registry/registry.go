package registry

import (
	"learnfeed-service/internal/config"
	"learnfeed-service/internal/domain"
	"learnfeed-service/internal/infra/source"
	"learnfeed-service/internal/infra/source/library"
	"learnfeed-service/internal/infra/source/studio"

	"go.uber.org/zap"
)

// NewSources creates all configured catalog source clients.
// This is a factory function that centralizes source initialization
// while maintaining dependency injection principles.
func NewSources(cfg config.SourceConfig, logger *zap.Logger) []domain.CatalogSource {
	sources := make([]domain.CatalogSource, 0, 2)

	sources = append(sources, studio.New(clientConfig(cfg.Studio), logger))
	sources = append(sources, library.New(clientConfig(cfg.Library), logger))

	return sources
}

func clientConfig(ep config.SourceEndpoint) source.ClientConfig {
	return source.ClientConfig{
		BaseURL: ep.BaseURL,
		Timeout: ep.Timeout,
		Retry: source.RetryConfig{
			MaxAttempts: ep.Retry.MaxAttempts,
			WaitTime:    ep.Retry.WaitTime,
			MaxWaitTime: ep.Retry.MaxWaitTime,
		},
		CB: source.CBConfig{
			MaxRequests:  ep.CB.MaxRequests,
			Interval:     ep.CB.Interval,
			Timeout:      ep.CB.Timeout,
			FailureRatio: ep.CB.FailureRatio,
		},
	}
}
