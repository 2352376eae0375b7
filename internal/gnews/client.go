// Package gnews searches the Google News RSS endpoint.
package gnews

import (
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/camuig/ticker-digest/internal/config"
	"github.com/camuig/ticker-digest/internal/logger"
)

const maxFeedBytes = 4 << 20

type Client struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	baseURL    string
	language   string
	country    string
	stripHTML  bool
	logger     *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FeedTimeout()},
		parser:     gofeed.NewParser(),
		baseURL:    cfg.Feed.BaseURL,
		language:   cfg.Feed.Language,
		country:    cfg.Feed.Country,
		stripHTML:  cfg.Feed.StripHTML,
		logger:     log,
	}
}

// WithTimeout overrides the per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}
