package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

var ErrNotifierDisabled = errors.New("telegram notifier is disabled")

// botSender is the part of *tgbotapi.BotAPI the notifier needs.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewBotAPI connects to Telegram. Every HTTP call is bounded by timeout.
func NewBotAPI(token string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return bot, nil
}

// TelegramNotifier implements NotifierPort with HTML messages sent by one bot.
type TelegramNotifier struct {
	bot botSender
}

func NewTelegramNotifier(bot *tgbotapi.BotAPI) ports.NotifierPort {
	if bot == nil {
		return &TelegramNotifier{}
	}
	logger.Info("Telegram notifier ready", "bot", bot.Self.UserName)
	return &TelegramNotifier{bot: bot}
}

func (n *TelegramNotifier) IsEnabled() bool {
	return n.bot != nil
}

// Send delivers message to chatID. It returns when the send finishes or ctx is done,
// whichever comes first.
func (n *TelegramNotifier) Send(ctx context.Context, chatID int64, message string) error {
	if !n.IsEnabled() {
		return ErrNotifierDisabled
	}

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	done := make(chan error, 1)
	go func() {
		_, err := n.bot.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram send to %d: %w", chatID, err)
		}
		logger.DebugContext(ctx, "Telegram message sent", "chat_id", chatID)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram send to %d: %w", chatID, ctx.Err())
	}
}
