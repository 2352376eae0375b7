package gnews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/camuig/ticker-digest/internal/news"
)

// SearchURL builds the feed URL for a query in the client's locale.
func (c *Client) SearchURL(query string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", c.language)
	v.Set("gl", c.country)
	v.Set("ceid", c.country+":"+c.language)
	return c.baseURL + "?" + v.Encode()
}

func (c *Client) Search(ctx context.Context, query string) ([]news.Entry, error) {
	feedURL := c.SearchURL(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", "ticker-digest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]news.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		summary := item.Description
		if c.stripHTML {
			summary = htmlToText(summary)
		}
		entries = append(entries, news.Entry{
			Title:     item.Title,
			Summary:   summary,
			Link:      item.Link,
			Published: item.PublishedParsed,
		})
	}

	c.logger.Debug("feed fetched", "query", query, "items", len(entries))
	return entries, nil
}

// htmlToText returns the visible text of an HTML fragment. Input that does
// not parse is returned unchanged.
func htmlToText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
