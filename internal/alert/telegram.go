// Package alert delivers finished alerts to their destinations. The core
// pipeline hands sinks a fully-populated payload; rendering and transport
// concerns stay here.
package alert

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// TelegramSink sends alerts to a Telegram chat with MarkdownV2 formatting
// and bounded retry on transient API failures.
type TelegramSink struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	maxRetries int
	retryDelay time.Duration
	logger     *logger.Logger
}

// NewTelegramSink creates a Telegram sink from config.
func NewTelegramSink(cfg config.TelegramConfig, log *logger.Logger) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	return &TelegramSink{
		bot:        bot,
		chatID:     chatID,
		maxRetries: 3,
		retryDelay: time.Second,
		logger:     log.WithField("module", "alert"),
	}, nil
}

// Send delivers one alert, retrying with linear backoff. Context
// cancellation aborts between attempts.
func (s *TelegramSink) Send(ctx context.Context, alert contracts.Alert) error {
	msg := tgbotapi.NewMessage(s.chatID, formatMessage(alert))
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true

	var lastErr error
	for i := 0; i < s.maxRetries; i++ {
		if _, err := s.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("telegram send after %d attempts: %w", s.maxRetries, lastErr)
}

// formatMessage renders the alert as MarkdownV2. The URL in a hyperlink is
// left unescaped; everything else goes through escapeMarkdownV2.
func formatMessage(alert contracts.Alert) string {
	var b strings.Builder

	badge := "\U0001F4E2" // loudspeaker
	if alert.Decision == contracts.DecisionYes {
		badge = "\U0001F6A8" // rotating light
	}

	title := escapeMarkdownV2(alert.Title)
	if alert.URL != "" {
		title = fmt.Sprintf("[%s](%s)", title, alert.URL)
	}

	fmt.Fprintf(&b, "%s *%s* \\| %s\n", badge, escapeMarkdownV2(alert.Symbol), escapeMarkdownV2(string(alert.Decision)))
	fmt.Fprintf(&b, "%s\n\n", title)
	fmt.Fprintf(&b, "Category: %s\n", escapeMarkdownV2(string(alert.Category)))
	fmt.Fprintf(&b, "Score: %s\n", escapeMarkdownV2(fmt.Sprintf("%.2f", alert.Score)))

	if alert.EstimateP90 > 0 {
		fmt.Fprintf(&b, "Est\\. move: %s / %s \\(p50/p90\\)\n",
			escapeMarkdownV2(fmt.Sprintf("%.1f%%", alert.EstimateP50)),
			escapeMarkdownV2(fmt.Sprintf("%.1f%%", alert.EstimateP90)))
	}

	if alert.Narrative != "" {
		fmt.Fprintf(&b, "\n%s\n", escapeMarkdownV2(alert.Narrative))
	}

	fmt.Fprintf(&b, "\nSource: %s", escapeMarkdownV2(alert.Source))
	return b.String()
}

// escapeMarkdownV2 escapes the characters Telegram's MarkdownV2 parser
// treats as markup.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
