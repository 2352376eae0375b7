// Package slack renders the digest as Block Kit blocks and posts it to an
// incoming webhook.
package slack

import (
	slackapi "github.com/slack-go/slack"
)

// MaxBlocks is the most blocks Slack accepts in one message.
const MaxBlocks = 50

// Message is one rendered digest.
type Message struct {
	Blocks   []slackapi.Block
	Articles int // articles that made it into Blocks
	Omitted  int // articles dropped to stay within MaxBlocks
}

// Webhook wraps the blocks in an incoming-webhook payload.
func (m Message) Webhook() *slackapi.WebhookMessage {
	return &slackapi.WebhookMessage{Blocks: &slackapi.Blocks{BlockSet: m.Blocks}}
}

// Header returns a plain-text header block.
func Header(text string) slackapi.Block {
	return slackapi.NewHeaderBlock(slackapi.NewTextBlockObject(slackapi.PlainTextType, text, false, false))
}

// Divider returns a divider block.
func Divider() slackapi.Block {
	return slackapi.NewDividerBlock()
}

// Section returns a section block holding mrkdwn text.
func Section(markdown string) slackapi.Block {
	return slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, markdown, false, false), nil, nil)
}

// BlockText returns the text of a header or section block, or "" for others.
func BlockText(b slackapi.Block) string {
	switch v := b.(type) {
	case *slackapi.HeaderBlock:
		if v.Text != nil {
			return v.Text.Text
		}
	case *slackapi.SectionBlock:
		if v.Text != nil {
			return v.Text.Text
		}
	}
	return ""
}
