// internal/app/validator.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

const (
	msgResponseNotObject  = "Unexpected homework API response format"
	msgResponseNoHomework = "Homework API response is missing the homeworks key"
	msgHomeworksNotList   = "Homework API response field homeworks is not a list"
)

// Validator checks a decoded homework API response has the documented shape.
type Validator struct {
	notifier *Notifier
	logger   *logrus.Entry
}

func NewValidator(notifier *Notifier, logger *logrus.Entry) *Validator {
	return &Validator{
		notifier: notifier,
		logger:   logger.WithField("component", "validator"),
	}
}

// Validate accepts the result of json.Unmarshal into an any. On failure it
// notifies once under the malformed response category and returns an error
// wrapping ErrShape.
func (v *Validator) Validate(response any) (*homework.Snapshot, error) {
	body, ok := response.(map[string]any)
	if !ok {
		return nil, v.fail(msgResponseNotObject, fmt.Sprintf("response is %T, want object", response))
	}
	raw, ok := body["homeworks"]
	if !ok {
		return nil, v.fail(msgResponseNoHomework, "homeworks key is absent")
	}
	homeworks, ok := raw.([]any)
	if !ok {
		return nil, v.fail(msgHomeworksNotList, fmt.Sprintf("homeworks is %T, want list", raw))
	}

	v.notifier.Notify(notification.CategoryMalformedResponse, notification.NoError)
	return &homework.Snapshot{
		Homeworks:   homeworks,
		CurrentDate: body["current_date"],
	}, nil
}

func (v *Validator) fail(message, detail string) error {
	v.notifier.Notify(notification.CategoryMalformedResponse, message)
	v.logger.WithField("detail", detail).Warn(message)
	return fmt.Errorf("%w: %s", ErrShape, detail)
}
