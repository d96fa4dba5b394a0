// Package services holds the booking lifecycle rules and the account and
// speaker directory operations built on top of a database.Store.
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/notify"
)

const (
	dateLayout = "2006-01-02"

	retryBackoff = 20 * time.Millisecond

	txConflictMessage = "the request conflicted with a concurrent update, please try again"
)

// Notifier accepts notices for asynchronous delivery. It must not block,
// and the builders run on the delivery goroutine.
type Notifier interface {
	Booking(build notify.Build[notify.BookingNotice])
	Cancellation(build notify.Build[notify.CancellationNotice])
	Feedback(build notify.Build[notify.FeedbackNotice])
	OTP(n notify.OTPNotice)
}

type Options struct {
	// StoreTimeout bounds every store call.
	StoreTimeout time.Duration
	// MaxTxRetries is how many times an aborted transaction is attempted.
	MaxTxRetries int
	// Now is the clock used for "today" and timestamps.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = 5 * time.Second
	}
	if o.MaxTxRetries < 1 {
		o.MaxTxRetries = 1
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o Options) today() string {
	return o.Now().Format(dateLayout)
}

// call runs fn under the store timeout.
func (o Options) call(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, o.StoreTimeout)
	defer cancel()
	return fn(ctx)
}

// retryTx reruns fn while the store reports an aborted transaction. Each
// attempt gets its own timeout. After the last attempt the abort surfaces as
// a conflict.
func (o Options) retryTx(ctx context.Context, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := o.call(ctx, fn)
		if !stderrors.Is(err, database.ErrTxAborted) {
			return err
		}
		if attempt >= o.MaxTxRetries {
			return errors.Conflict(txConflictMessage)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
}

// translate maps store sentinels to caller-facing errors. Errors that already
// carry a kind pass through; anything else is an internal failure.
func translate(op string, err error, known map[error]error) error {
	if err == nil {
		return nil
	}
	if errors.KindOf(err) != errors.KindInternal {
		return err
	}
	for target, mapped := range known {
		if stderrors.Is(err, target) {
			return mapped
		}
	}
	if stderrors.Is(err, database.ErrTxAborted) {
		return errors.Conflict(txConflictMessage)
	}
	return fmt.Errorf("%s: %w", op, err)
}
