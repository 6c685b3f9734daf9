// Package library implements the XML catalog source client for the
// partner video library.
package library

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"learnfeed-service/internal/domain"
	"learnfeed-service/internal/infra/source"
)

// Endpoint is the API path for the library's catalog feed.
const Endpoint = "/catalog"

// Client implements domain.CatalogSource for the partner library (XML).
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new library client.
func New(cfg source.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "library",
		client: source.NewRestyClient(cfg),
		cb:     source.NewCircuitBreaker[*resty.Response]("library", cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the full catalog from the partner library.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Video, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/xml").
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("library returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("library fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from library: %w", err)
	}

	var catalog Catalog
	if err := xml.Unmarshal(resp.Body(), &catalog); err != nil {
		return nil, fmt.Errorf("parsing library XML: %w", err)
	}

	videos := make([]*domain.Video, 0, len(catalog.Videos.Videos))

	for _, item := range catalog.Videos.Videos {
		videos = append(videos, item.ToDomain(c.name))
	}

	c.logger.Info("library fetch completed",
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
