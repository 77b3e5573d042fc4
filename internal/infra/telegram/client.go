// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Telegram allows roughly one message per second to a single chat.
const sendInterval = time.Second

// Sender is the part of *telebot.Bot the adapter needs.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	ctx     context.Context
	bot     Sender
	limiter *rate.Limiter
}

// NewTelebotAdapter wraps b. Rate-limit waits end early once ctx is done.
func NewTelebotAdapter(ctx context.Context, b Sender) *TelebotAdapter {
	return &TelebotAdapter{
		ctx:     ctx,
		bot:     b,
		limiter: rate.NewLimiter(rate.Every(sendInterval), 1),
	}
}

// SendMessage sends a text message to the specified chat, waiting for the
// rate limiter if messages are sent in quick succession. If the adapter's
// context ends during that wait the message is dropped and ctx.Err() returned.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	if err := tba.limiter.Wait(tba.ctx); err != nil {
		return err
	}

	recipient := &telebot.Chat{ID: chatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}
