package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	slackapi "github.com/slack-go/slack"

	"github.com/camuig/ticker-digest/internal/config"
	"github.com/camuig/ticker-digest/internal/logger"
)

// DeliveryError reports a failed webhook post.
type DeliveryError struct {
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("slack webhook returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("slack webhook: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type WebhookPublisher struct {
	url        string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewWebhookPublisher(cfg *config.Config, log *logger.Logger) *WebhookPublisher {
	return &WebhookPublisher{
		url:        cfg.Slack.WebhookURL,
		httpClient: &http.Client{Timeout: cfg.SlackTimeout()},
		logger:     log,
	}
}

// Publish posts msg once. A missing URL fails before any network I/O.
func (p *WebhookPublisher) Publish(ctx context.Context, msg Message) error {
	if p.url == "" {
		return config.ErrMissingWebhook
	}

	if err := slackapi.PostWebhookCustomHTTPContext(ctx, p.url, p.httpClient, msg.Webhook()); err != nil {
		return &DeliveryError{StatusCode: statusCode(err), Err: err}
	}

	p.logger.Info("digest posted", "blocks", len(msg.Blocks), "articles", msg.Articles)
	return nil
}

func statusCode(err error) int {
	var sce slackapi.StatusCodeError
	if errors.As(err, &sce) {
		return sce.Code
	}
	var rle *slackapi.RateLimitedError
	if errors.As(err, &rle) {
		return http.StatusTooManyRequests
	}
	return 0
}
