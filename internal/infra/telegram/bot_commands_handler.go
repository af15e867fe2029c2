// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// BotCommands is the command menu shown by Telegram clients.
var BotCommands = []telebot.Command{
	{Text: "register_chat", Description: "Register this chat for birthday notifications (admins)"},
	{Text: "signup", Description: "Sign up with your birthday: <day> <month> [year]"},
	{Text: "list", Description: "List the birthdays in this chat: [page]"},
	{Text: "mybirthday", Description: "Show your registered birthday"},
	{Text: "help", Description: "Show help"},
}

func RegisterBotCommands(b *telebot.Bot, baseLogger *logrus.Entry) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		startHelpLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID).Info("Processing /start command")
		return c.Send("Hi! I keep track of birthdays in group chats and wish everyone a happy birthday on the day. Use /help for the list of commands.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		startHelpLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID).Info("Processing /help command")
		return c.Send(HelpText(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})
}

func HelpText() string {
	var helpText strings.Builder
	helpText.WriteString("Available commands:\n\n")
	helpText.WriteString("`/register_chat [chat ID]`\n - Register this chat. Notifications go to the given chat, or here when omitted. Chat administrators only.\n\n")
	helpText.WriteString("`/signup <day> <month> [year]`\n - Add your birthday to this chat. You can sign up once.\n\n")
	helpText.WriteString("`/list [page]`\n - Show the birthdays registered in this chat, one page at a time.\n\n")
	helpText.WriteString("`/mybirthday`\n - Show the birthday you signed up with.\n\n")
	helpText.WriteString("`/help`\n - Show this help message.")
	return helpText.String()
}
