// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"birthday_notification_bot/internal/domain"
	domainTelegram "birthday_notification_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter delivers birthday notifications through the Telegram Bot API.
// It implements notification.Sink.
type TelebotAdapter struct {
	client domainTelegram.Client
}

func NewTelebotAdapter(c domainTelegram.Client) *TelebotAdapter {
	return &TelebotAdapter{client: c}
}

// Send posts the birthday message for userID into the destination chat.
// Failures wrap domain.ErrDeliveryFailed.
func (a *TelebotAdapter) Send(ctx context.Context, destinationID int64, userID int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send to chat %d: %w: %w", destinationID, domain.ErrDeliveryFailed, err)
	}

	text := FormatNotification(Mention(userID, a.DisplayName(userID)))
	_, err := a.client.Send(&telebot.Chat{ID: destinationID}, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	if err != nil {
		return fmt.Errorf("send to chat %d: %w: %w", destinationID, domain.ErrDeliveryFailed, err)
	}
	return nil
}

// DisplayName returns the user's name as Telegram knows it, or "" when the lookup fails.
func (a *TelebotAdapter) DisplayName(userID int64) string {
	chat, err := a.client.ChatByID(userID)
	if err != nil || chat == nil {
		return ""
	}
	if name := strings.TrimSpace(chat.FirstName + " " + chat.LastName); name != "" {
		return name
	}
	return chat.Username
}
