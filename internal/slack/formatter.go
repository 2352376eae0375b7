package slack

import (
	"fmt"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/camuig/ticker-digest/internal/news"
)

type Formatter struct {
	Title        string
	SummaryWidth int
	Location     *time.Location
}

func NewFormatter(title string, summaryWidth int, loc *time.Location) *Formatter {
	return &Formatter{Title: title, SummaryWidth: summaryWidth, Location: loc}
}

// Format builds the digest. Tickers keep their input order; tickers without
// articles produce no blocks at all. Once MaxBlocks is reached the remaining
// articles are left out and counted in Omitted.
func (f *Formatter) Format(now time.Time, results []news.TickerArticles) Message {
	now = now.In(f.Location)
	msg := Message{Blocks: []slackapi.Block{
		Header(fmt.Sprintf("%s — %s (%s)", f.Title, now.Format("2006-01-02"), now.Format("MST"))),
	}}

	for _, r := range results {
		if len(r.Articles) == 0 {
			continue
		}

		// divider + ticker title + at least one article
		room := MaxBlocks - len(msg.Blocks) - 2
		if room < 1 {
			msg.Omitted += len(r.Articles)
			continue
		}
		articles := r.Articles
		if len(articles) > room {
			msg.Omitted += len(articles) - room
			articles = articles[:room]
		}

		msg.Blocks = append(msg.Blocks,
			Divider(),
			Section(fmt.Sprintf("*%s — %s*", r.Ticker, articles[0].Company)),
		)
		for _, a := range articles {
			msg.Blocks = append(msg.Blocks, Section(f.articleLine(a)))
		}
		msg.Articles += len(articles)
	}

	return msg
}

func (f *Formatter) articleLine(a news.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• *%s* (%s)\n", a.Title, a.Published.In(f.Location).Format("15:04"))
	b.WriteString(Shorten(a.Summary, f.SummaryWidth, Ellipsis))
	fmt.Fprintf(&b, "\n<%s|Read more>", a.URL)
	return b.String()
}

// ArticleCount totals the articles across all tickers.
func ArticleCount(results []news.TickerArticles) int {
	n := 0
	for _, r := range results {
		n += len(r.Articles)
	}
	return n
}
