package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Frostyanand/SpeakEasy/lib/logger/sl"
)

// Dispatcher sends every notice on its own goroutine under a timeout.
// Failures are logged and dropped.
type Dispatcher struct {
	sink    Sink
	timeout time.Duration
	log     *slog.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(sink Sink, timeout time.Duration, log *slog.Logger) *Dispatcher {
	return &Dispatcher{sink: sink, timeout: timeout, log: log}
}

var errSkipped = errors.New("notice skipped")

func (d *Dispatcher) Booking(build Build[BookingNotice]) {
	d.dispatch(KeyBookingCreated, func(ctx context.Context) error {
		return deliver(ctx, build, d.sink.NotifyBooking)
	})
}

func (d *Dispatcher) Cancellation(build Build[CancellationNotice]) {
	d.dispatch(KeyBookingCancelled, func(ctx context.Context) error {
		return deliver(ctx, build, d.sink.NotifyCancellation)
	})
}

func (d *Dispatcher) Feedback(build Build[FeedbackNotice]) {
	d.dispatch(KeyFeedbackSubmitted, func(ctx context.Context) error {
		return deliver(ctx, build, d.sink.NotifyFeedback)
	})
}

func (d *Dispatcher) OTP(n OTPNotice) {
	d.dispatch(KeyAccountOTP, func(ctx context.Context) error {
		return d.sink.SendOTP(ctx, n)
	})
}

// Wait blocks until every notice handed over so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(kind string, send func(ctx context.Context) error) {
	const op = "notify.Dispatcher.dispatch"

	log := d.log.With(slog.String("op", op), slog.String("kind", kind))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("notification panicked", sl.Err(fmt.Errorf("%v", r)))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := send(ctx); errors.Is(err, errSkipped) {
			log.Warn("notification skipped", sl.Err(err))
			return
		} else if err != nil {
			log.Error("failed to send notification", sl.Err(err))
			return
		}
		log.Debug("notification sent")
	}()
}

func deliver[T any](ctx context.Context, build Build[T], send func(context.Context, T) error) error {
	n, err := build(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errSkipped, err)
	}
	return send(ctx, n)
}
