package notify

import (
	"fmt"
	"log"

	"tutorlink/messaging/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const previewLimit = 120

// Telegram sends a bot DM to users who linked a Telegram chat to their
// profile.
type Telegram struct {
	bot *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Telegram notifier authorized as @%s", bot.Self.UserName)
	return &Telegram{bot: bot}, nil
}

func (t *Telegram) MessageSent(recipient *models.User, senderName, preview string) {
	if recipient == nil || recipient.TelegramChatID == nil {
		return
	}
	if len(preview) > previewLimit {
		preview = preview[:previewLimit] + "…"
	}

	text := fmt.Sprintf("New message from %s:\n%s", senderName, preview)
	if _, err := t.bot.Send(tgbotapi.NewMessage(*recipient.TelegramChatID, text)); err != nil {
		log.Printf("WARNING: Failed to notify user %s via Telegram: %v", recipient.ID, err)
	}
}
