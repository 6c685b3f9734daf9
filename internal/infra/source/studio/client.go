// Package studio implements the JSON catalog source client for the
// in-house creator studio.
package studio

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"learnfeed-service/internal/domain"
	"learnfeed-service/internal/infra/source"
)

// Endpoint is the API path for the studio's video listing.
const Endpoint = "/api/videos"

// Client implements domain.CatalogSource for the studio (JSON).
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new studio client.
func New(cfg source.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "studio",
		client: source.NewRestyClient(cfg),
		cb:     source.NewCircuitBreaker[*resty.Response]("studio", cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves all videos published through the studio.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Video, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("studio returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("studio fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from studio: %w", err)
	}

	result := resp.Result().(*Response)
	videos := make([]*domain.Video, 0, len(result.Videos))

	for _, item := range result.Videos {
		videos = append(videos, item.ToDomain(c.name))
	}

	c.logger.Info("studio fetch completed",
		zap.Int("count", len(videos)),
	)

	return videos, nil
}

// HealthCheck verifies the source is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
