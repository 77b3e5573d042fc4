// internal/app/notifier.go
package app

import (
	"homework_status_bot/internal/domain/notification"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Notifier relays messages to the single configured chat. Error messages go
// through Notify, which suppresses a repeat of the last message sent for the
// same category. Delivery is best-effort: send failures are logged, never
// returned.
type Notifier struct {
	client domainTelegram.Client
	chatID int64
	ledger *notification.Ledger
	logger *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, chatID int64, ledger *notification.Ledger, logger *logrus.Entry) *Notifier {
	if ledger == nil {
		ledger = notification.NewLedger()
	}
	return &Notifier{
		client: client,
		chatID: chatID,
		ledger: ledger,
		logger: logger.WithField("component", "notifier"),
	}
}

// Notify sends message for category unless it is the last message already
// sent for that category, and reports whether a send was attempted.
// Passing notification.NoError clears the category without sending.
func (n *Notifier) Notify(category notification.Category, message string) bool {
	if message == notification.NoError {
		if last := n.ledger.Last(category); last != "" && last != notification.NoError {
			n.logger.WithField("category", category).Debug("Error condition cleared")
		}
		n.ledger.Clear(category)
		return false
	}
	if n.ledger.Seen(category, message) {
		n.logger.WithFields(logrus.Fields{
			"category": category,
			"text":     message,
		}).Debug("Duplicate error notification suppressed")
		return false
	}
	n.ledger.Record(category, message)
	n.Send(message)
	return true
}

// Send delivers message without duplicate suppression. It reports whether
// the underlying client accepted the message.
func (n *Notifier) Send(message string) bool {
	logCtx := n.logger.WithField("text", message)
	if err := n.client.SendMessage(n.chatID, message, nil); err != nil {
		logCtx.WithError(err).Error("Failed to send message")
		return false
	}
	logCtx.Debug("Message sent")
	return true
}
