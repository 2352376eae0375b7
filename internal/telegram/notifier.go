package telegram

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/camuig/ticker-digest/internal/config"
	"github.com/camuig/ticker-digest/internal/logger"
)

// Notifier sends short operator alerts about digest runs. It never carries
// the digest itself.
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	return newNotifier(cfg, tgbotapi.APIEndpoint, http.DefaultClient, log)
}

func newNotifier(cfg *config.Config, endpoint string, client *http.Client, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.BotToken, endpoint, client)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

func (n *Notifier) NotifyPosted(articles, tickers int) {
	n.send(fmt.Sprintf("✅ Digest posted: %d articles across %d tickers", articles, tickers))
}

func (n *Notifier) NotifyDeliveryFailed(articles int, err error) {
	n.send(fmt.Sprintf("⚠️ Digest delivery failed (%d articles)\n%v", articles, err))
}

func (n *Notifier) NotifyError(context string, err error) {
	n.send(fmt.Sprintf("⚠️ [%s]\n%v", context, err))
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
