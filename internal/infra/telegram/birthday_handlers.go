package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birthday_notification_bot/internal/app"
	"birthday_notification_bot/internal/domain"
	"birthday_notification_bot/internal/domain/birthday"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBirthdayHandlers registers the chat commands backed by the registration service.
func RegisterBirthdayHandlers(ctx context.Context, b *telebot.Bot, svc *app.RegistrationService, adapter *TelebotAdapter, baseLogger *logrus.Entry) {
	b.Handle("/register_chat", func(c telebot.Context) error {
		handlerLogger := handlerFields(baseLogger, "/register_chat", c)
		handlerLogger.Info("Command received")

		if !isGroupChat(c.Chat()) {
			return c.Send("Run this command in the group whose birthdays you want to track.")
		}

		member, err := b.ChatMemberOf(c.Chat(), c.Sender())
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to look up sender's chat membership")
			return c.Send("Could not check your permissions. Please try again later.")
		}
		if !isChatAdmin(member) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You do not have permission to run this command. Ask a chat administrator to run it for you.")
		}

		destination, err := ParseDestination(c.Args(), c.Chat().ID)
		if err != nil {
			return c.Send("Invalid format. Use: /register_chat [destination chat ID]")
		}
		if destination != c.Chat().ID {
			if err := checkDestination(b, destination, b.Me, c.Sender()); err != nil {
				handlerLogger.WithError(err).WithField("destination_id", destination).Warn("Destination chat rejected")
				return c.Send(destinationReply(err))
			}
		}

		start := time.Now()
		if _, err := svc.BindCommunity(ctx, c.Chat().ID, destination); err != nil {
			handlerLogger.WithError(err).Warn("Chat registration rejected")
			return c.Send(errorReply(err))
		}
		return c.Send(fmt.Sprintf("Registered this chat in %s milliseconds.", FormatElapsed(time.Since(start))))
	})

	b.Handle("/signup", func(c telebot.Context) error {
		handlerLogger := handlerFields(baseLogger, "/signup", c)
		handlerLogger.Info("Command received")

		if !isGroupChat(c.Chat()) {
			return c.Send("Sign up from inside the group that should celebrate you.")
		}

		args, err := ParseSignupArgs(c.Args())
		if err != nil {
			return c.Send("Invalid format. Use: /signup <day> <month> [year], e.g. /signup 15 3 1990")
		}

		start := time.Now()
		if _, err := svc.SignupUser(ctx, c.Sender().ID, c.Chat().ID, args.Day, args.Month, args.Year); err != nil {
			handlerLogger.WithError(err).Warn("Signup rejected")
			return c.Send(errorReply(err))
		}
		return c.Send(fmt.Sprintf("Signed you up in %s milliseconds!", FormatElapsed(time.Since(start))))
	})

	b.Handle("/list", func(c telebot.Context) error {
		handlerLogger := handlerFields(baseLogger, "/list", c)
		handlerLogger.Info("Command received")

		pageNumber, err := ParsePage(c.Args())
		if err != nil {
			return c.Send("Invalid format. Use: /list [page]")
		}

		page, err := svc.ListPage(ctx, c.Chat().ID, pageNumber)
		if err != nil {
			handlerLogger.WithError(err).Info("Listing not available")
			return c.Send(errorReply(err))
		}

		return c.Send(FormatPage(page, cachedMentions(adapter)), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	})

	b.Handle("/mybirthday", func(c telebot.Context) error {
		handlerLogger := handlerFields(baseLogger, "/mybirthday", c)
		handlerLogger.Info("Command received")

		reg, err := svc.Lookup(ctx, c.Sender().ID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				handlerLogger.WithError(err).Error("Failed to look up registration")
			}
			return c.Send(errorReply(err))
		}
		return c.Send(describeRegistration(reg))
	})
}

var (
	errDestinationUnreachable = errors.New("bot cannot post to destination chat")
	errNotDestinationAdmin    = errors.New("sender is not an administrator of destination chat")
)

// chatAPI is the part of *telebot.Bot used to vet a destination chat.
type chatAPI interface {
	ChatByID(id int64) (*telebot.Chat, error)
	ChatMemberOf(chat, user telebot.Recipient) (*telebot.ChatMember, error)
}

// checkDestination requires the bot to be present in the destination chat
// and the sender to administer it.
func checkDestination(api chatAPI, destinationID int64, botUser, sender *telebot.User) error {
	chat, err := api.ChatByID(destinationID)
	if err != nil || chat == nil {
		return fmt.Errorf("chat %d: %w", destinationID, errDestinationUnreachable)
	}

	self, err := api.ChatMemberOf(chat, botUser)
	if err != nil || self == nil || self.Role == telebot.Left || self.Role == telebot.Kicked {
		return fmt.Errorf("chat %d: %w", destinationID, errDestinationUnreachable)
	}
	if chat.Type == telebot.ChatChannel && !isChatAdmin(self) {
		return fmt.Errorf("channel %d: %w", destinationID, errDestinationUnreachable)
	}

	member, err := api.ChatMemberOf(chat, sender)
	if err != nil || !isChatAdmin(member) {
		return fmt.Errorf("chat %d: %w", destinationID, errNotDestinationAdmin)
	}
	return nil
}

func destinationReply(err error) string {
	if errors.Is(err, errNotDestinationAdmin) {
		return "You must be an administrator of the destination chat to send notifications there."
	}
	return "I cannot post in that chat. Add me to it first (as an administrator for channels) and try again."
}

// cachedMentions resolves each user's display name at most once for the returned func.
func cachedMentions(adapter *TelebotAdapter) func(userID int64) string {
	names := make(map[int64]string)
	return func(userID int64) string {
		name, ok := names[userID]
		if !ok {
			name = adapter.DisplayName(userID)
			names[userID] = name
		}
		return Mention(userID, name)
	}
}

func handlerFields(base *logrus.Entry, handler string, c telebot.Context) *logrus.Entry {
	fields := logrus.Fields{"handler": handler}
	if c.Sender() != nil {
		fields["sender_id"] = c.Sender().ID
	}
	if c.Chat() != nil {
		fields["chat_id"] = c.Chat().ID
	}
	return base.WithFields(fields)
}

func isGroupChat(chat *telebot.Chat) bool {
	return chat != nil && (chat.Type == telebot.ChatGroup || chat.Type == telebot.ChatSuperGroup)
}

func isChatAdmin(member *telebot.ChatMember) bool {
	return member != nil && (member.Role == telebot.Creator || member.Role == telebot.Administrator)
}

func describeRegistration(r *birthday.Registration) string {
	year := "an unknown year"
	if r.Year.Valid {
		year = fmt.Sprintf("%d", r.Year.Int32)
	}
	return fmt.Sprintf("Your birthday is on %s (day/month), born in %s. Last celebrated in %d.",
		r.Date().String(), year, r.LastNotifiedYear)
}

// errorReply maps a registration outcome to the message shown to the user.
func errorReply(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "Already registered. Nothing was changed."
	case errors.Is(err, domain.ErrUnknownCommunity):
		return "This chat is not registered yet. An administrator needs to run /register_chat first."
	case errors.Is(err, domain.ErrInvalidDate):
		return "The date you provided is not valid. Day must be 1-31, month 1-12 and year 1-9999."
	case errors.Is(err, domain.ErrInvalidArgument):
		return "The command arguments are not valid."
	case errors.Is(err, domain.ErrEmptyResult):
		return "No birthdays found. Perhaps you could start by adding your own with /signup?"
	case errors.Is(err, domain.ErrPageOutOfRange):
		return "The page you specified does not exist. Perhaps you could try a smaller page number?"
	case errors.Is(err, domain.ErrNotFound):
		return "You have not signed up yet. Use /signup <day> <month> [year]."
	default:
		return "Something went wrong. Please try again later."
	}
}
