// Package notify delivers booking and account notices. Delivery is best
// effort: callers hand notices to a Dispatcher and never see the outcome.
package notify

import (
	"context"
	"time"
)

const (
	KeyBookingCreated    = "booking.created"
	KeyBookingCancelled  = "booking.cancelled"
	KeyFeedbackSubmitted = "feedback.submitted"
	KeyAccountOTP        = "account.otp"
)

type BookingNotice struct {
	BookingId    string `json:"booking_id"`
	SessionId    string `json:"session_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	SpeakerName  string `json:"speaker_name"`
	SpeakerEmail string `json:"speaker_email"`
}

type CancellationNotice struct {
	BookingId    string `json:"booking_id"`
	SessionId    string `json:"session_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	UserName     string `json:"user_name"`
	SpeakerName  string `json:"speaker_name"`
	SpeakerEmail string `json:"speaker_email"`
}

type FeedbackNotice struct {
	BookingId    string `json:"booking_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	UserName     string `json:"user_name"`
	SpeakerName  string `json:"speaker_name"`
	SpeakerEmail string `json:"speaker_email"`
	Rating       int    `json:"rating"`
	FeedbackText string `json:"feedback_text,omitempty"`
}

type OTPNotice struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Build produces a notice on the delivery goroutine. An error skips the notice.
type Build[T any] func(ctx context.Context) (T, error)

// Ready wraps a notice that needs no lookups.
func Ready[T any](n T) Build[T] {
	return func(context.Context) (T, error) { return n, nil }
}

// Sink is a delivery channel. Implementations should honour ctx cancellation.
type Sink interface {
	NotifyBooking(ctx context.Context, n BookingNotice) error
	NotifyCancellation(ctx context.Context, n CancellationNotice) error
	NotifyFeedback(ctx context.Context, n FeedbackNotice) error
	SendOTP(ctx context.Context, n OTPNotice) error
}
