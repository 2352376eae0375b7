package slack

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/ticker-digest/internal/news"
)

var jst = time.FixedZone("JST", 9*60*60)

func testFormatter() *Formatter {
	return NewFormatter("📊 Daily Corporate News", 140, jst)
}

func TestFormatHeaderOnlyWhenEmpty(t *testing.T) {
	now := time.Date(2026, 10, 13, 20, 30, 0, 0, time.UTC)
	msg := testFormatter().Format(now, []news.TickerArticles{
		{Ticker: "WCC"},
		{Ticker: "URI", Articles: []news.Article{}},
	})

	require.Len(t, msg.Blocks, 1)
	header, ok := msg.Blocks[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, slackapi.PlainTextType, header.Text.Type)
	assert.Equal(t, "📊 Daily Corporate News — 2026-10-14 (JST)", BlockText(header))
	assert.Zero(t, msg.Articles)
	assert.Zero(t, msg.Omitted)
}

func TestFormatSections(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, jst)
	long := strings.Repeat("growth ", 40)
	results := []news.TickerArticles{
		{Ticker: "WCC", Articles: []news.Article{
			{Company: "Wesco International, Inc.", Title: "Wesco expands", Summary: "Short summary",
				URL: "https://example.com/1", Published: time.Date(2026, 10, 13, 0, 5, 0, 0, time.UTC)},
			{Company: "Wesco International, Inc.", Title: "Wesco again", Summary: long,
				URL: "https://example.com/2", Published: time.Date(2026, 10, 13, 14, 45, 0, 0, jst)},
		}},
		{Ticker: "URI"},
		{Ticker: "HRI", Articles: []news.Article{
			{Company: "Herc Holdings Inc.", Title: "Herc news", URL: "https://example.com/3",
				Published: time.Date(2026, 10, 13, 9, 0, 0, 0, jst)},
		}},
	}

	msg := testFormatter().Format(now, results)

	assert.Equal(t, []slackapi.MessageBlockType{
		slackapi.MBTHeader,
		slackapi.MBTDivider, slackapi.MBTSection, slackapi.MBTSection, slackapi.MBTSection,
		slackapi.MBTDivider, slackapi.MBTSection, slackapi.MBTSection,
	}, blockTypes(msg))
	assert.Equal(t, 3, msg.Articles)

	assert.Empty(t, BlockText(msg.Blocks[1]))
	assert.Equal(t, "*WCC — Wesco International, Inc.*", BlockText(msg.Blocks[2]))
	assert.Equal(t, slackapi.MarkdownType, msg.Blocks[2].(*slackapi.SectionBlock).Text.Type)
	assert.Equal(t, "• *Wesco expands* (09:05)\nShort summary\n<https://example.com/1|Read more>", BlockText(msg.Blocks[3]))

	second := BlockText(msg.Blocks[4])
	assert.True(t, strings.HasPrefix(second, "• *Wesco again* (14:45)\n"))
	lines := strings.Split(second, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], Ellipsis))
	assert.LessOrEqual(t, len([]rune(lines[1])), 140)

	assert.Equal(t, "*HRI — Herc Holdings Inc.*", BlockText(msg.Blocks[6]))
	assert.Equal(t, "• *Herc news* (09:00)\n\n<https://example.com/3|Read more>", BlockText(msg.Blocks[7]))
}

func TestFormatCapsBlocks(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, jst)
	var results []news.TickerArticles
	for i := 0; i < 12; i++ {
		articles := make([]news.Article, 4)
		for j := range articles {
			articles[j] = news.Article{Company: "Co", Title: "t", URL: "https://example.com", Published: now}
		}
		results = append(results, news.TickerArticles{Ticker: "T", Articles: articles})
	}

	msg := testFormatter().Format(now, results)

	assert.LessOrEqual(t, len(msg.Blocks), MaxBlocks)
	assert.Equal(t, ArticleCount(results), msg.Articles+msg.Omitted)
	assert.Positive(t, msg.Omitted)

	sections := 0
	for _, b := range msg.Blocks {
		if b.BlockType() == slackapi.MBTSection && strings.HasPrefix(BlockText(b), "• ") {
			sections++
		}
	}
	assert.Equal(t, msg.Articles, sections)

	// every ticker title is followed by at least one article
	last := msg.Blocks[len(msg.Blocks)-1]
	assert.True(t, strings.HasPrefix(BlockText(last), "• "))
}

func blockTypes(msg Message) []slackapi.MessageBlockType {
	types := make([]slackapi.MessageBlockType, len(msg.Blocks))
	for i, b := range msg.Blocks {
		types[i] = b.BlockType()
	}
	return types
}

func TestWebhookJSONShape(t *testing.T) {
	msg := Message{Blocks: []slackapi.Block{Header("h"), Divider(), Section("*s*")}}
	raw, err := json.Marshal(msg.Webhook())
	require.NoError(t, err)

	var payload struct {
		Blocks []struct {
			Type string `json:"type"`
			Text *struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"text"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Blocks, 3)

	assert.Equal(t, "header", payload.Blocks[0].Type)
	assert.Equal(t, "plain_text", payload.Blocks[0].Text.Type)
	assert.Equal(t, "h", payload.Blocks[0].Text.Text)
	assert.Equal(t, "divider", payload.Blocks[1].Type)
	assert.Nil(t, payload.Blocks[1].Text)
	assert.Equal(t, "section", payload.Blocks[2].Type)
	assert.Equal(t, "mrkdwn", payload.Blocks[2].Text.Type)
	assert.Equal(t, "*s*", payload.Blocks[2].Text.Text)
}

func TestArticleCount(t *testing.T) {
	assert.Equal(t, 0, ArticleCount(nil))
	assert.Equal(t, 3, ArticleCount([]news.TickerArticles{
		{Articles: make([]news.Article, 2)},
		{},
		{Articles: make([]news.Article, 1)},
	}))
}
