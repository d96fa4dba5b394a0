package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notices to the log instead of delivering them. It is the
// default for local development, so OTP codes show up in the output.
type LogSink struct {
	log *slog.Logger
}

var _ Sink = (*LogSink)(nil)

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With(slog.String("sink", "log"))}
}

func (s *LogSink) NotifyBooking(ctx context.Context, n BookingNotice) error {
	s.log.InfoContext(ctx, "booking confirmed",
		slog.String("booking_id", n.BookingId),
		slog.String("date", n.Date),
		slog.String("time", n.Time),
		slog.String("user_email", n.UserEmail),
		slog.String("speaker_email", n.SpeakerEmail),
	)
	return nil
}

func (s *LogSink) NotifyCancellation(ctx context.Context, n CancellationNotice) error {
	s.log.InfoContext(ctx, "booking cancelled",
		slog.String("booking_id", n.BookingId),
		slog.String("date", n.Date),
		slog.String("time", n.Time),
		slog.String("speaker_email", n.SpeakerEmail),
	)
	return nil
}

func (s *LogSink) NotifyFeedback(ctx context.Context, n FeedbackNotice) error {
	s.log.InfoContext(ctx, "feedback submitted",
		slog.String("booking_id", n.BookingId),
		slog.Int("rating", n.Rating),
		slog.String("speaker_email", n.SpeakerEmail),
	)
	return nil
}

func (s *LogSink) SendOTP(ctx context.Context, n OTPNotice) error {
	s.log.InfoContext(ctx, "verification code issued",
		slog.String("email", n.Email),
		slog.String("otp", n.Code),
		slog.Time("expires_at", n.ExpiresAt),
	)
	return nil
}
