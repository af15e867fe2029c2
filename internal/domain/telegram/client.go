package telegram

import "gopkg.in/telebot.v3"

// Client is the subset of the Telegram bot API used to post notifications.
// *telebot.Bot satisfies it.
type Client interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	ChatByID(id int64) (*telebot.Chat, error)
}
