package telegram

import (
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pinkcat015/todolist/pkg/logger"
)

type updatesAPI interface {
	botSender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// LinkListener answers /start with the chat id users paste into their profile
// to receive reminders.
type LinkListener struct {
	api    updatesAPI
	wg     sync.WaitGroup
	stopCh chan struct{}
}

func NewLinkListener(api *tgbotapi.BotAPI) *LinkListener {
	return &LinkListener{
		api:    api,
		stopCh: make(chan struct{}),
	}
}

func (l *LinkListener) Start() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updateConfig.AllowedUpdates = []string{"message"}

	updates := l.api.GetUpdatesChan(updateConfig)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.handleUpdates(updates)
	}()

	logger.Info("Telegram link listener started")
}

func (l *LinkListener) Stop() {
	close(l.stopCh)
	l.api.StopReceivingUpdates()
	l.wg.Wait()
	logger.Info("Telegram link listener stopped")
}

func (l *LinkListener) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-l.stopCh:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			l.handleUpdate(update)
		}
	}
}

func (l *LinkListener) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	var text string
	switch strings.ToLower(msg.Command()) {
	case "start", "id":
		text = LinkMessage(msg.Chat.ID)
	default:
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML
	if _, err := l.api.Send(reply); err != nil {
		logger.Warn("Failed to answer telegram command", "chat_id", msg.Chat.ID, "error", err)
	}
}

func LinkMessage(chatID int64) string {
	return fmt.Sprintf(
		"👋 Hi! Your chat ID is <code>%d</code>.\nPaste it into your profile to get deadline reminders here.",
		chatID,
	)
}
