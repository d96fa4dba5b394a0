package database

import (
	"context"
	"errors"
	"time"

	"github.com/Frostyanand/SpeakEasy/model"
)

// Backends wrap these so callers can tell storage outcomes apart with errors.Is.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrSessionFull  = errors.New("session is fully booked")
	ErrAlreadyRated = errors.New("feedback already submitted")
	ErrNotOwner     = errors.New("record belongs to another user")
	// ErrTxAborted marks a transaction the backend gave up on because of a
	// concurrent writer. Nothing from it was committed; it is safe to retry.
	ErrTxAborted = errors.New("transaction aborted")
)

type UserStore interface {
	CreateUser(ctx context.Context, user model.UserData) (string, error)
	GetUserByEmail(ctx context.Context, email string) (model.UserData, error)
	GetUserByID(ctx context.Context, id string) (model.UserData, error)
	SetUserOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error
	MarkUserVerified(ctx context.Context, id string) error
}

type SpeakerStore interface {
	UpsertSpeakerProfile(ctx context.Context, profile model.SpeakerProfile) (string, error)
	GetSpeakerProfile(ctx context.Context, userID string) (model.SpeakerProfile, error)
	ListSpeakerProfiles(ctx context.Context) ([]model.SpeakerProfile, error)
}

// SessionStore owns sessions and bookings. BookSeat, CancelBooking and
// SetFeedback are atomic: either every write they make commits or none does.
type SessionStore interface {
	CreateSession(ctx context.Context, session model.Session) (string, error)
	GetSession(ctx context.Context, id string) (model.Session, error)
	// ListSpeakerSessions skips cleared sessions.
	ListSpeakerSessions(ctx context.Context, speakerID string) ([]model.Session, error)
	ClearSpeakerSessions(ctx context.Context, speakerID, beforeDate string) (int64, error)

	// BookSeat inserts a booking and increments the session's seats_booked.
	// The session returned is the state before the increment.
	BookSeat(ctx context.Context, userID, sessionID string, at time.Time) (model.Booking, model.Session, error)
	// CancelBooking deletes the booking and decrements seats_booked.
	// The session returned is the state after the decrement.
	CancelBooking(ctx context.Context, bookingID, userID string) (model.Booking, model.Session, error)
	// SetFeedback stores a rating once. A second call returns ErrAlreadyRated.
	SetFeedback(ctx context.Context, bookingID, userID string, feedback model.Feedback) error

	GetBooking(ctx context.Context, id string) (model.Booking, error)
	// ListUserBookings skips cleared bookings; ListSessionBookings does not.
	ListUserBookings(ctx context.Context, userID string) ([]model.Booking, error)
	ListSessionBookings(ctx context.Context, sessionID string) ([]model.Booking, error)
	ClearUserBookings(ctx context.Context, userID, beforeDate string) (int64, error)
}

// Store is everything a backend provides.
type Store interface {
	UserStore
	SpeakerStore
	SessionStore

	EnsureSchema(ctx context.Context) error
	Close(ctx context.Context) error
}
