// internal/app/parser.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// StatusParser turns the newest submission record into a verdict change
// message.
type StatusParser struct {
	notifier *Notifier
	logger   *logrus.Entry
}

func NewStatusParser(notifier *Notifier, logger *logrus.Entry) *StatusParser {
	return &StatusParser{
		notifier: notifier,
		logger:   logger.WithField("component", "status_parser"),
	}
}

// Parse reads the verdict of record and compares it to lastSeen. It returns
// the observed verdict and, when it differs from lastSeen, the message to
// announce; the caller stores the returned verdict as the new last seen one.
// An unknown status fails with ErrUnexpectedVerdict and a record without a
// name fails with ErrMissingField, each after one notification attempt.
func (p *StatusParser) Parse(record any, lastSeen homework.Verdict) (string, homework.Verdict, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return "", "", p.fail(notification.CategoryMissingField,
			"Homework record is not an object",
			fmt.Errorf("%w: record is %T", ErrMissingField, record))
	}

	status, _ := fields[homework.FieldStatus].(string)
	verdict := homework.Verdict(status)
	text, known := verdict.Text()
	if !known {
		return "", "", p.fail(notification.CategoryUnexpectedVerdict,
			fmt.Sprintf("Unexpected homework status %v", fields[homework.FieldStatus]),
			fmt.Errorf("%w: %v", ErrUnexpectedVerdict, fields[homework.FieldStatus]))
	}

	name, ok := fields[homework.FieldName].(string)
	if !ok {
		return "", "", p.fail(notification.CategoryMissingField,
			"Homework record is missing the homework_name key",
			fmt.Errorf("%w: %s", ErrMissingField, homework.FieldName))
	}

	sub := homework.Submission{Name: name, Status: verdict}
	logCtx := p.logger.WithFields(logrus.Fields{
		"homework": sub.Name,
		"status":   sub.Status,
	})
	if sub.Status == lastSeen {
		logCtx.Debug("Homework status has not changed")
		return "", sub.Status, nil
	}

	logCtx.WithField("previous_status", lastSeen).Info("Homework status changed")
	return FormatStatusChange(sub.Name, text), sub.Status, nil
}

// FormatStatusChange renders the announcement for a new verdict.
func FormatStatusChange(name, verdictText string) string {
	return fmt.Sprintf("Status changed for submission \"%s\".\n%s", name, verdictText)
}

func (p *StatusParser) fail(category notification.Category, message string, err error) error {
	p.notifier.Notify(category, message)
	p.logger.WithError(err).Error(message)
	return err
}
