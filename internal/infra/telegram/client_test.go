package telegram

import (
	"context"
	"errors"
	"testing"

	"birthday_notification_bot/internal/domain"

	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type fakeClient struct {
	to      telebot.Recipient
	text    string
	opts    []interface{}
	sendErr error
	chats   map[int64]*telebot.Chat
	lookups int
}

func (f *fakeClient) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.to = to
	f.text, _ = what.(string)
	f.opts = opts
	return &telebot.Message{}, nil
}

func (f *fakeClient) ChatByID(id int64) (*telebot.Chat, error) {
	f.lookups++
	if c, ok := f.chats[id]; ok {
		return c, nil
	}
	return nil, errors.New("chat not found")
}

func TestTelebotAdapterSendPostsToDestination(t *testing.T) {
	client := &fakeClient{chats: map[int64]*telebot.Chat{7: {ID: 7, FirstName: "Ada", LastName: "Lovelace"}}}
	adapter := NewTelebotAdapter(client)

	require.NoError(t, adapter.Send(context.Background(), -200, 7))
	require.Equal(t, "-200", client.to.Recipient())
	require.Equal(t, "<b>It's someone's lucky day!</b>\nHappy birthday, <a href=\"tg://user?id=7\">Ada Lovelace</a>!", client.text)
	require.Len(t, client.opts, 1)
	require.Equal(t, telebot.ModeHTML, client.opts[0].(*telebot.SendOptions).ParseMode)
}

func TestTelebotAdapterSendWrapsDeliveryFailure(t *testing.T) {
	apiErr := errors.New("telegram: bad gateway")
	adapter := NewTelebotAdapter(&fakeClient{sendErr: apiErr})

	err := adapter.Send(context.Background(), -200, 7)
	require.ErrorIs(t, err, domain.ErrDeliveryFailed)
	require.ErrorIs(t, err, apiErr)
}

func TestTelebotAdapterSendHonoursCancelledContext(t *testing.T) {
	client := &fakeClient{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTelebotAdapter(client).Send(ctx, -200, 7)
	require.ErrorIs(t, err, domain.ErrDeliveryFailed)
	require.Nil(t, client.to)
}

func TestDisplayName(t *testing.T) {
	adapter := NewTelebotAdapter(&fakeClient{chats: map[int64]*telebot.Chat{
		1: {ID: 1, FirstName: "Grace"},
		2: {ID: 2, Username: "linus"},
	}})

	require.Equal(t, "Grace", adapter.DisplayName(1))
	require.Equal(t, "linus", adapter.DisplayName(2))
	require.Empty(t, adapter.DisplayName(3))
}
