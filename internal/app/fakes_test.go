package app

import (
	"context"
	"errors"
	"testing"

	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/domain/practicum"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"
)

const testChatID int64 = 4242

type sentMessage struct {
	chatID int64
	text   string
}

// fakeTelegram records every message and optionally fails.
type fakeTelegram struct {
	sent []sentMessage
	err  error
}

func (f *fakeTelegram) SendMessage(chatID int64, text string, _ *telebot.SendOptions) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return f.err
}

func (f *fakeTelegram) texts() []string {
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.text)
	}
	return out
}

// reply is one scripted result of fakeAPI.
type reply struct {
	resp *practicum.Response
	err  error
}

func okReply(body string) reply {
	return reply{resp: &practicum.Response{StatusCode: 200, Body: []byte(body)}}
}

func statusReply(code int) reply {
	return reply{resp: &practicum.Response{StatusCode: code}}
}

func transportReply(reason string) reply {
	return reply{err: &practicum.TransportError{Reason: reason, Err: errors.New(reason)}}
}

// fakeAPI returns scripted replies in order and repeats the last one.
type fakeAPI struct {
	replies   []reply
	fromDates []int64
}

func (f *fakeAPI) HomeworkStatuses(_ context.Context, fromDate int64) (*practicum.Response, error) {
	f.fromDates = append(f.fromDates, fromDate)
	i := len(f.fromDates) - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i].resp, f.replies[i].err
}

// stopAfterPacer cancels the run after a number of waits.
type stopAfterPacer struct {
	waits  int
	limit  int
	cancel context.CancelFunc
}

func (p *stopAfterPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.waits >= p.limit {
		p.cancel()
		return context.Canceled
	}
	return ctx.Err()
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(l), hook
}

func newTestNotifier(t *testing.T, tg *fakeTelegram) *Notifier {
	t.Helper()
	entry, _ := newTestLogger()
	return NewNotifier(tg, testChatID, notification.NewLedger(), entry)
}
