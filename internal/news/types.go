package news

import (
	"context"
	"time"
)

// TickerProfile describes one watched company.
type TickerProfile struct {
	Symbol  string
	Company string
	Aliases []string
}

// Entry is a raw item as returned by a feed source.
type Entry struct {
	Title     string
	Summary   string
	Link      string
	Published *time.Time // nil when the feed carries no publication time
}

// Source runs one free-text search against a news feed.
type Source interface {
	Search(ctx context.Context, query string) ([]Entry, error)
}

// Article is a ranked entry selected for one ticker.
type Article struct {
	Ticker      string
	Company     string
	Published   time.Time
	Title       string
	Summary     string
	URL         string
	Score       int
	Fingerprint string
}

// TickerArticles is one ticker's ranked result, kept in config order by callers.
type TickerArticles struct {
	Ticker   string
	Articles []Article
}

// Window fixes the run time and the earliest eligible publication time.
type Window struct {
	Now    time.Time
	Cutoff time.Time
}

func NewWindow(now time.Time, lookback time.Duration, loc *time.Location) Window {
	now = now.In(loc)
	return Window{Now: now, Cutoff: now.Add(-lookback)}
}

// Contains reports whether t is inside the window. The cutoff itself is excluded.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Cutoff)
}
