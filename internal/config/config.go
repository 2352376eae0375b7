package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Tokyo must resolve on hosts without zoneinfo

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// ErrMissingWebhook is returned when no Slack webhook URL is configured.
var ErrMissingWebhook = errors.New("slack.webhook_url (or SLACK_WEBHOOK_URL) is required")

type Config struct {
	Tickers  []TickerConfig `yaml:"tickers"`
	Digest   DigestConfig   `yaml:"digest"`
	Feed     FeedConfig     `yaml:"feed"`
	Slack    SlackConfig    `yaml:"slack"`
	Telegram TelegramConfig `yaml:"telegram"`
	History  HistoryConfig  `yaml:"history"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type TickerConfig struct {
	Symbol  string   `yaml:"symbol"`
	Company string   `yaml:"company"`
	Aliases []string `yaml:"aliases"`
}

type DigestConfig struct {
	MaxItems     *int   `yaml:"max_items"`
	Lookback     string `yaml:"lookback"`
	Timezone     string `yaml:"timezone"`
	SummaryWidth int    `yaml:"summary_width"`
	Title        string `yaml:"title"`
}

type FeedConfig struct {
	BaseURL        string `yaml:"base_url"`
	Language       string `yaml:"language"`
	Country        string `yaml:"country"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	StripHTML      bool   `yaml:"strip_html"`
}

type SlackConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultTickers is the built-in watch list used when the config file names none.
var DefaultTickers = []TickerConfig{
	{Symbol: "WCC", Company: "Wesco International, Inc.", Aliases: []string{"Wesco International", "Wesco"}},
	{Symbol: "URI", Company: "United Rentals, Inc.", Aliases: []string{"United Rentals"}},
	{Symbol: "HRI", Company: "Herc Holdings Inc.", Aliases: []string{"Herc Rentals", "Herc Holdings"}},
	{Symbol: "ATKR", Company: "Atkore Inc.", Aliases: []string{"Atkore"}},
	{Symbol: "SEE", Company: "Sealed Air Corporation", Aliases: []string{"Sealed Air", "Cryovac"}},
	{Symbol: "GPK", Company: "Graphic Packaging Holding Company", Aliases: []string{"Graphic Packaging", "GPK"}},
	{Symbol: "MTX", Company: "Minerals Technologies Inc.", Aliases: []string{"Minerals Technologies", "MTI"}},
}

const (
	defaultMaxItems = 4
	defaultTimezone = "Asia/Tokyo"
)

// Load reads the YAML file at path (an empty path means defaults only),
// applies environment overrides and defaults, then validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")); v != "" {
		cfg.Slack.WebhookURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
}

func setDefaults(cfg *Config) {
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = append([]TickerConfig(nil), DefaultTickers...)
	}
	if cfg.Digest.MaxItems == nil {
		n := defaultMaxItems
		cfg.Digest.MaxItems = &n
	}
	if cfg.Digest.Lookback == "" {
		cfg.Digest.Lookback = "24h"
	}
	if cfg.Digest.Timezone == "" {
		cfg.Digest.Timezone = defaultTimezone
	}
	if cfg.Digest.SummaryWidth == 0 {
		cfg.Digest.SummaryWidth = 140
	}
	if cfg.Digest.Title == "" {
		cfg.Digest.Title = "📊 Daily Corporate News"
	}
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = "https://news.google.com/rss/search"
	}
	if cfg.Feed.Language == "" {
		cfg.Feed.Language = "en"
	}
	if cfg.Feed.Country == "" {
		cfg.Feed.Country = "US"
	}
	if cfg.Feed.TimeoutSeconds == 0 {
		cfg.Feed.TimeoutSeconds = 15
	}
	if cfg.Slack.TimeoutSeconds == 0 {
		cfg.Slack.TimeoutSeconds = 10
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "data/ticker-digest.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Slack.WebhookURL) == "" {
		return ErrMissingWebhook
	}

	seen := make(map[string]struct{}, len(c.Tickers))
	for i, t := range c.Tickers {
		if strings.TrimSpace(t.Symbol) == "" {
			return fmt.Errorf("tickers[%d].symbol is required", i)
		}
		if strings.TrimSpace(t.Company) == "" {
			return fmt.Errorf("tickers[%d].company is required for %s", i, t.Symbol)
		}
		if _, ok := seen[t.Symbol]; ok {
			return fmt.Errorf("duplicate ticker %q", t.Symbol)
		}
		seen[t.Symbol] = struct{}{}
	}

	if c.Digest.MaxItems != nil && *c.Digest.MaxItems < 0 {
		return fmt.Errorf("digest.max_items must be >= 0, got %d", *c.Digest.MaxItems)
	}
	if c.Digest.Lookback != "" {
		d, err := time.ParseDuration(c.Digest.Lookback)
		if err != nil {
			return fmt.Errorf("invalid digest.lookback %q: %w", c.Digest.Lookback, err)
		}
		if d <= 0 {
			return fmt.Errorf("digest.lookback must be positive, got %s", d)
		}
	}
	if c.Digest.Timezone != "" {
		if _, err := time.LoadLocation(c.Digest.Timezone); err != nil {
			return fmt.Errorf("invalid digest.timezone %q: %w", c.Digest.Timezone, err)
		}
	}
	if c.Digest.SummaryWidth < 0 {
		return fmt.Errorf("digest.summary_width must be >= 0, got %d", c.Digest.SummaryWidth)
	}
	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf("invalid schedule.cron %q: %w", c.Schedule.Cron, err)
		}
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

// Location returns the display timezone. Validate rejects unknown zone names;
// an unvalidated config with a bad name still gets UTC+9.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Digest.Timezone)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
	}
	return loc
}

func (c *Config) Lookback() time.Duration {
	d, _ := time.ParseDuration(c.Digest.Lookback)
	return d
}

func (c *Config) MaxItems() int {
	if c.Digest.MaxItems == nil {
		return defaultMaxItems
	}
	return *c.Digest.MaxItems
}

func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSeconds) * time.Second
}

func (c *Config) SlackTimeout() time.Duration {
	return time.Duration(c.Slack.TimeoutSeconds) * time.Second
}

func (c *Config) IsScheduled() bool {
	return c.Schedule.Cron != ""
}
