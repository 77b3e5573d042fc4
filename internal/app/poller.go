// internal/app/poller.go
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/domain/practicum"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RetryPeriod is the fixed wait between poll cycles.
	RetryPeriod = 600 * time.Second
	// InitialLookback seeds the cursor far enough back to pick up the
	// latest review on startup.
	InitialLookback = 7_000_000 * time.Second
)

// Pacer blocks until the next poll cycle is due. It returns ctx.Err() if the
// context ends first.
type Pacer interface {
	Wait(ctx context.Context) error
}

type cycleOutcome int

const (
	outcomeSleep cycleOutcome = iota
	outcomeRetryNow
)

// Poller runs the fetch, validate, parse, notify, sleep loop against the
// homework API. It is single-threaded: Run must not be called concurrently.
type Poller struct {
	client    practicum.Client
	notifier  *Notifier
	validator *Validator
	parser    *StatusParser
	pacer     Pacer
	logger    *logrus.Entry

	cursor   int64
	lastSeen homework.Verdict
}

// NewPoller creates a Poller whose first query starts from cursor
// (see InitialCursor).
func NewPoller(client practicum.Client, notifier *Notifier, pacer Pacer, cursor int64, logger *logrus.Entry) *Poller {
	return &Poller{
		client:    client,
		notifier:  notifier,
		validator: NewValidator(notifier, logger),
		parser:    NewStatusParser(notifier, logger),
		pacer:     pacer,
		logger:    logger.WithField("component", "poller"),
		cursor:    cursor,
	}
}

// InitialCursor returns the startup cursor for a process started at now.
func InitialCursor(now time.Time) int64 {
	return now.Add(-InitialLookback).Unix()
}

// Cursor returns the current poll cursor (Unix seconds).
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// LastSeen returns the verdict of the most recently parsed submission.
func (p *Poller) LastSeen() homework.Verdict {
	return p.lastSeen
}

// Run polls until ctx is cancelled or a fatal fault occurs. Cancellation
// returns nil. A fatal fault is announced to the chat once more and returned
// as a *FatalError.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithFields(logrus.Fields{
		"cursor":       p.cursor,
		"retry_period": RetryPeriod,
	}).Info("Homework status polling started")

	for {
		if ctx.Err() != nil {
			p.logger.Info("Homework status polling stopped")
			return nil
		}

		outcome, err := p.runCycle(ctx)
		if err != nil {
			return p.fatal(err)
		}
		if outcome == outcomeRetryNow {
			continue
		}

		if err := p.pacer.Wait(ctx); err != nil {
			p.logger.Info("Homework status polling stopped")
			return nil
		}
	}
}

// queryFromDate is the lower time bound sent to the API. It trails the
// cursor by two retry periods.
func (p *Poller) queryFromDate() int64 {
	step := int64(RetryPeriod / time.Second)
	return p.cursor - step - step
}

// runCycle performs one pass. A non-nil error is fatal; recoverable faults
// are notified and logged here and reported only through the outcome.
func (p *Poller) runCycle(ctx context.Context) (cycleOutcome, error) {
	logCtx := p.logger.WithField("cycle_id", uuid.NewString())

	fromDate := p.queryFromDate()
	logCtx.WithField("from_date", fromDate).Debug("Requesting homework statuses")

	resp, err := p.client.HomeworkStatuses(ctx, fromDate)
	if err != nil {
		if ctx.Err() != nil {
			return outcomeSleep, nil
		}
		p.notifier.Notify(notification.CategoryRequestError, requestFailureMessage(err))
		logCtx.WithError(transportCause(err)).Warn("Homework API request failed")
		return outcomeSleep, nil
	}
	p.notifier.Notify(notification.CategoryRequestError, notification.NoError)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.notifier.Notify(notification.CategoryAPICode, fmt.Sprintf("API response code %d", resp.StatusCode))
		logCtx.WithError(fmt.Errorf("%w: %d", ErrAPIStatus, resp.StatusCode)).Warn("Skipping cycle")
		return outcomeSleep, nil
	}
	p.notifier.Notify(notification.CategoryAPICode, notification.NoError)

	decoded, err := decodeBody(resp.Body)
	if err != nil {
		p.notifier.Notify(notification.CategoryJSON, "Homework API returned malformed JSON")
		logCtx.WithError(err).Warn("Skipping cycle")
		return outcomeSleep, nil
	}
	p.notifier.Notify(notification.CategoryJSON, notification.NoError)

	snapshot, err := p.validator.Validate(decoded)
	if err != nil {
		logCtx.WithError(err).Warn("Skipping cycle")
		return outcomeSleep, nil
	}

	currentDate, err := parseTimestamp(snapshot.CurrentDate)
	if err != nil {
		p.notifier.Notify(notification.CategoryDate, fmt.Sprintf("Invalid current_date in homework API response: %v", snapshot.CurrentDate))
		logCtx.WithError(err).Warn("Retrying without waiting")
		return outcomeRetryNow, nil
	}
	p.notifier.Notify(notification.CategoryDate, notification.NoError)

	p.cursor = currentDate
	logCtx.WithField("cursor", p.cursor).Debug("Poll cursor advanced")

	if len(snapshot.Homeworks) == 0 {
		logCtx.Debug("No homework updates in this window")
		return outcomeSleep, nil
	}

	message, verdict, err := p.parser.Parse(snapshot.Homeworks[0], p.lastSeen)
	if err != nil {
		return outcomeSleep, err
	}
	p.lastSeen = verdict
	if message != "" {
		p.notifier.Send(message)
	}
	return outcomeSleep, nil
}

func (p *Poller) fatal(err error) error {
	p.notifier.Send(fmt.Sprintf("Program failure: %v", err))
	p.logger.WithError(err).Error("Homework status polling aborted")
	return &FatalError{Err: err}
}

func decodeBody(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the JSON value", ErrDecode)
	}
	return decoded, nil
}

// requestFailureMessage is the chat text for a failed request. Transport
// faults use their stable reason so repeats are suppressed.
func requestFailureMessage(err error) string {
	var te *practicum.TransportError
	if errors.As(err, &te) {
		return "Homework API request failed: " + te.Reason
	}
	return "Homework API request failed: " + err.Error()
}

// transportCause returns the underlying network error for logging.
func transportCause(err error) error {
	var te *practicum.TransportError
	if errors.As(err, &te) && te.Err != nil {
		return te.Err
	}
	return err
}

// parseTimestamp accepts a positive integral JSON number.
func parseTimestamp(v any) (int64, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: %v is %T", ErrBadTimestamp, v, v)
	}
	ts, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadTimestamp, err)
	}
	if ts <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadTimestamp, ts)
	}
	return ts, nil
}
