package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/camuig/ticker-digest/internal/config"
	"github.com/camuig/ticker-digest/internal/digest"
	"github.com/camuig/ticker-digest/internal/gnews"
	"github.com/camuig/ticker-digest/internal/logger"
	"github.com/camuig/ticker-digest/internal/news"
	"github.com/camuig/ticker-digest/internal/scheduler"
	"github.com/camuig/ticker-digest/internal/slack"
	"github.com/camuig/ticker-digest/internal/storage"
	"github.com/camuig/ticker-digest/internal/telegram"
)

const (
	exitOK       = 0
	exitConfig   = 1
	exitDelivery = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file (built-in defaults when empty)")
	dbPath := flag.String("db", "", "path to SQLite run history (overrides history.path, enables history)")
	once := flag.Bool("once", false, "run a single digest even if schedule.cron is set")
	history := flag.Int("history", 0, "print the last N recorded runs and exit")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return exitConfig
	}
	if *dbPath != "" {
		cfg.History.Enabled = true
		cfg.History.Path = *dbPath
	}
	if *history > 0 {
		cfg.History.Enabled = true
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	collector := news.NewCollector(gnews.NewClient(cfg, log), log)
	runner := digest.NewRunner(cfg, collector, slack.NewWebhookPublisher(cfg, log), log)

	notifier := telegram.NewNotifier(cfg, log)
	if notifier.Enabled() {
		runner.WithNotifier(notifier)
	}

	if cfg.History.Enabled {
		db, err := storage.NewDatabase(cfg.History.Path)
		if err != nil {
			log.Error("database init failed", "error", err)
			return exitConfig
		}
		defer storage.Close(db)
		repo := storage.NewRepository(db)

		if *history > 0 {
			if err := printHistory(os.Stdout, repo, *history); err != nil {
				fmt.Fprintf(os.Stderr, "history: %v\n", err)
				return exitDelivery
			}
			return exitOK
		}
		runner.WithRecorder(repo)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.IsScheduled() && !*once {
		sched, err := scheduler.New(cfg.Schedule.Cron, runner, log)
		if err != nil {
			log.Error("scheduler init failed", "error", err)
			return exitConfig
		}
		if notifier.Enabled() {
			sched.WithNotifier(notifier)
		}
		log.Info("starting ticker-digest", "schedule", cfg.Schedule.Cron, "tickers", len(cfg.Tickers))
		sched.Run(ctx)
		return exitOK
	}

	res, err := runner.Run(ctx)
	code := exitCode(err)
	if code != exitOK {
		fmt.Fprintf(os.Stderr, "digest failed: %v\n", err)
		return code
	}

	fmt.Printf("✅ Posted %d articles.\n", res.Articles)
	return exitOK
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var cfgErr *digest.ConfigError
	if errors.As(err, &cfgErr) || errors.Is(err, config.ErrMissingWebhook) {
		return exitConfig
	}
	return exitDelivery
}
