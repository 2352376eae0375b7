package digest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/camuig/ticker-digest/internal/config"
	"github.com/camuig/ticker-digest/internal/logger"
	"github.com/camuig/ticker-digest/internal/news"
	"github.com/camuig/ticker-digest/internal/slack"
	"github.com/camuig/ticker-digest/internal/storage"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type Publisher interface {
	Publish(ctx context.Context, msg slack.Message) error
}

// Recorder persists run summaries.
type Recorder interface {
	SaveRun(run *storage.DigestRun) error
}

// Notifier receives operator alerts.
type Notifier interface {
	NotifyPosted(articles, tickers int)
	NotifyDeliveryFailed(articles int, err error)
	NotifyError(context string, err error)
}

type Result struct {
	RunID    string
	Window   news.Window
	Tickers  []news.TickerArticles
	Message  slack.Message
	Articles int
}

type Runner struct {
	config    *config.Config
	collector *news.Collector
	formatter *slack.Formatter
	publisher Publisher
	recorder  Recorder
	notifier  Notifier
	clock     Clock
	logger    *logger.Logger
}

func NewRunner(cfg *config.Config, collector *news.Collector, publisher Publisher, log *logger.Logger) *Runner {
	return &Runner{
		config:    cfg,
		collector: collector,
		formatter: slack.NewFormatter(cfg.Digest.Title, cfg.Digest.SummaryWidth, cfg.Location()),
		publisher: publisher,
		clock:     ClockFunc(time.Now),
		logger:    log,
	}
}

func (r *Runner) WithClock(c Clock) *Runner {
	r.clock = c
	return r
}

func (r *Runner) WithRecorder(rec Recorder) *Runner {
	r.recorder = rec
	return r
}

func (r *Runner) WithNotifier(n Notifier) *Runner {
	r.notifier = n
	return r
}

// Profiles converts the configured tickers, keeping declaration order.
func Profiles(cfg *config.Config) []news.TickerProfile {
	out := make([]news.TickerProfile, 0, len(cfg.Tickers))
	for _, t := range cfg.Tickers {
		out = append(out, news.TickerProfile{
			Symbol:  t.Symbol,
			Company: t.Company,
			Aliases: append([]string(nil), t.Aliases...),
		})
	}
	return out
}

// Run executes one digest: collect every ticker in order, format, publish.
// Configuration is checked before any network call.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.config.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	started := r.clock.Now()
	res := &Result{
		RunID:  uuid.NewString(),
		Window: news.NewWindow(started, r.config.Lookback(), r.config.Location()),
	}
	r.logger.Info("digest run started",
		"run_id", res.RunID, "tickers", len(r.config.Tickers), "cutoff", res.Window.Cutoff.Format(time.RFC3339))

	res.Tickers = r.collector.CollectAll(ctx, Profiles(r.config), res.Window, r.config.MaxItems())
	res.Message = r.formatter.Format(res.Window.Now, res.Tickers)
	res.Articles = res.Message.Articles
	if res.Message.Omitted > 0 {
		r.logger.Warn("digest truncated to fit slack block limit",
			"run_id", res.RunID, "collected", slack.ArticleCount(res.Tickers), "omitted", res.Message.Omitted)
	}

	pubErr := r.publisher.Publish(ctx, res.Message)
	r.record(res, started, pubErr)

	if pubErr != nil {
		r.logger.Error("digest delivery failed", "run_id", res.RunID, "articles", res.Articles, "error", pubErr)
		if r.notifier != nil {
			r.notifier.NotifyDeliveryFailed(res.Articles, pubErr)
		}
		return res, &DeliveryError{Err: pubErr}
	}

	r.logger.Info("digest run completed", "run_id", res.RunID, "articles", res.Articles)
	if r.notifier != nil {
		r.notifier.NotifyPosted(res.Articles, len(res.Tickers))
	}
	return res, nil
}

func (r *Runner) record(res *Result, started time.Time, pubErr error) {
	if r.recorder == nil {
		return
	}

	counts := make(map[string]int, len(res.Tickers))
	for _, t := range res.Tickers {
		counts[t.Ticker] = len(t.Articles)
	}
	countsJSON, _ := json.Marshal(counts)

	run := &storage.DigestRun{
		RunID:        res.RunID,
		StartedAt:    started,
		FinishedAt:   r.clock.Now(),
		TickersCount: len(res.Tickers),
		ArticleCount: res.Articles,
		CountsJSON:   string(countsJSON),
		Delivered:    pubErr == nil,
	}
	if pubErr != nil {
		run.Error = pubErr.Error()
	}
	if err := r.recorder.SaveRun(run); err != nil {
		r.logger.Error("save digest run", "run_id", res.RunID, "error", err)
		if r.notifier != nil {
			r.notifier.NotifyError("save digest run", err)
		}
	}
}
