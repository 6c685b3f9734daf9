package domain

import "time"

// FeedParams holds the inputs for a personalized feed request.
type FeedParams struct {
	UserID string
	Format Format // short or long pool
	Limit  int
}

// DefaultFeedLimit is used when no limit is supplied.
const DefaultFeedLimit = 10

// MaxFeedLimit caps a single feed request.
const MaxFeedLimit = 50

// Validate applies bound correction to the feed parameters.
func (p *FeedParams) Validate() {
	if p.Format != FormatShort {
		p.Format = FormatLong
	}
	if p.Limit < 1 {
		p.Limit = DefaultFeedLimit
	}
	if p.Limit > MaxFeedLimit {
		p.Limit = MaxFeedLimit
	}
}

// FeedResult is an ordered, scored feed for one learner.
type FeedResult struct {
	Videos      []*Video  `json:"videos"`
	Format      Format    `json:"format"`
	GeneratedAt time.Time `json:"generated_at"`
}

// BrowseParams holds filter and pagination parameters for catalog browsing.
type BrowseParams struct {
	Topic    string // filter to videos carrying this topic
	Format   Format // optional pool filter; empty means both pools
	Page     int    // 1-indexed
	PageSize int
}

// Validate applies bound correction to the browse parameters.
func (p *BrowseParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset calculates the database offset for pagination.
func (p *BrowseParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// CatalogPage holds one page of catalog browse results.
type CatalogPage struct {
	Videos     []*Video `json:"videos"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// NewCatalogPage creates a CatalogPage with calculated pagination.
func NewCatalogPage(videos []*Video, total int64, params BrowseParams) *CatalogPage {
	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize > 0 {
		totalPages++
	}

	return &CatalogPage{
		Videos:     videos,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}
}
