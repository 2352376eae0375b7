package news

import (
	"context"
	"sort"

	"github.com/camuig/ticker-digest/internal/logger"
)

type Collector struct {
	source Source
	logger *logger.Logger
}

func NewCollector(source Source, log *logger.Logger) *Collector {
	return &Collector{source: source, logger: log}
}

// Collect queries the source once for the profile and returns at most
// maxItems articles ranked by score, then recency. Source failures are logged
// and produce an empty result.
func (c *Collector) Collect(ctx context.Context, p TickerProfile, w Window, maxItems int) []Article {
	query := BuildQuery(p)

	entries, err := c.source.Search(ctx, query)
	if err != nil {
		c.logger.Error("fetch news", "ticker", p.Symbol, "query", query, "error", err)
		return nil
	}

	articles := Rank(p, entries, w, maxItems)
	c.logger.Info("news collected",
		"ticker", p.Symbol, "entries", len(entries), "selected", len(articles))
	return articles
}

// CollectAll runs Collect for every profile sequentially, preserving order.
func (c *Collector) CollectAll(ctx context.Context, profiles []TickerProfile, w Window, maxItems int) []TickerArticles {
	out := make([]TickerArticles, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, TickerArticles{
			Ticker:   p.Symbol,
			Articles: c.Collect(ctx, p, w, maxItems),
		})
	}
	return out
}

// Rank filters entries to the window, drops repeated fingerprints (first seen
// wins), scores and sorts them, and truncates to maxItems.
func Rank(p TickerProfile, entries []Entry, w Window, maxItems int) []Article {
	loc := w.Now.Location()
	seen := make(map[string]struct{}, len(entries))
	items := make([]Article, 0, len(entries))

	for _, e := range entries {
		published := w.Now
		if e.Published != nil {
			published = e.Published.In(loc)
		}
		if !w.Contains(published) {
			continue
		}

		key := Fingerprint(e.Title, e.Link)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		title := NormalizeText(e.Title)
		summary := NormalizeText(e.Summary)

		items = append(items, Article{
			Ticker:      p.Symbol,
			Company:     p.Company,
			Published:   published,
			Title:       title,
			Summary:     summary,
			URL:         e.Link,
			Score:       Score(p, title, summary),
			Fingerprint: key,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Published.After(items[j].Published)
	})

	if maxItems < 0 {
		maxItems = 0
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}
