package services

import (
	"cmp"
	"context"
	stderrors "errors"
	"log/slog"
	"slices"
	"time"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/model"
	"github.com/Frostyanand/SpeakEasy/notify"
)

const (
	firstSlot = "09:00"
	lastSlot  = "15:00"
)

type BookingService struct {
	log      *slog.Logger
	store    database.Store
	notifier Notifier
	opts     Options
}

func NewBookingService(log *slog.Logger, store database.Store, notifier Notifier, opts Options) *BookingService {
	return &BookingService{log: log, store: store, notifier: notifier, opts: opts.withDefaults()}
}

func (s *BookingService) CreateSession(ctx context.Context, speakerID, date, at string, maxSeats int) (string, error) {
	const op = "services.BookingService.CreateSession"

	if maxSeats <= 0 {
		return "", errors.Validation("max_seats must be a positive number")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", errors.Validation("Invalid date format. Use YYYY-MM-DD")
	}
	if date < s.opts.today() {
		return "", errors.Validation("Session date cannot be in the past")
	}
	if _, err := time.Parse("15:04", at); err != nil || len(at) != len("15:04") {
		return "", errors.Validation("Invalid time format. Use HH:MM (24-hour format)")
	}
	if at < firstSlot || at > lastSlot {
		return "", errors.Validation("Sessions must be between 9:00 AM to 4:00 PM, 1-hour slots only.")
	}

	var id string
	err := s.opts.call(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.store.CreateSession(ctx, model.Session{
			SpeakerId: speakerID,
			Date:      date,
			Time:      at,
			MaxSeats:  maxSeats,
		})
		return err
	})
	if err != nil {
		return "", translate(op, err, map[error]error{
			database.ErrDuplicate: errors.Conflict("You already have a session scheduled at this date and time"),
		})
	}

	s.log.Info("session created",
		slog.String("op", op), slog.String("session_id", id), slog.String("speaker_id", speakerID))

	return id, nil
}

func (s *BookingService) BookSession(ctx context.Context, userID, sessionID string) (string, error) {
	const op = "services.BookingService.BookSession"

	if sessionID == "" {
		return "", errors.Validation("Missing required field: session_id")
	}

	var booking model.Booking
	var session model.Session
	err := s.opts.retryTx(ctx, func(ctx context.Context) error {
		var err error
		booking, session, err = s.store.BookSeat(ctx, userID, sessionID, s.opts.Now())
		return err
	})
	if err != nil {
		return "", translate(op, err, map[error]error{
			database.ErrNotFound:    errors.NotFound("Session not found"),
			database.ErrSessionFull: errors.Capacity("This session is fully booked"),
			database.ErrDuplicate:   errors.Conflict("You have already booked this session"),
		})
	}

	s.log.Info("session booked",
		slog.String("op", op), slog.String("booking_id", booking.Id), slog.String("session_id", sessionID))

	s.notifyBooking(booking, session)
	return booking.Id, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	const op = "services.BookingService.CancelBooking"

	if bookingID == "" {
		return errors.Validation("Missing required field: booking_id")
	}

	var booking model.Booking
	var session model.Session
	err := s.opts.retryTx(ctx, func(ctx context.Context) error {
		var err error
		booking, session, err = s.store.CancelBooking(ctx, bookingID, userID)
		return err
	})
	if err != nil {
		return translate(op, err, map[error]error{
			database.ErrNotFound: errors.NotFound("Booking not found"),
			database.ErrNotOwner: errors.Authorization("You can only cancel your own bookings"),
		})
	}

	s.log.Info("booking cancelled",
		slog.String("op", op), slog.String("booking_id", bookingID), slog.Int("seats_booked", session.SeatsBooked))

	s.notifyCancellation(booking, session)
	return nil
}

func (s *BookingService) SubmitFeedback(ctx context.Context, userID, bookingID string, rating int, text *string) error {
	const op = "services.BookingService.SubmitFeedback"

	if bookingID == "" {
		return errors.Validation("Missing required field: booking_id")
	}
	if rating < 1 || rating > 5 {
		return errors.Validation("Rating must be an integer between 1 and 5")
	}
	if text != nil && *text == "" {
		text = nil
	}

	feedback := model.Feedback{Rating: rating, Text: text, SubmittedAt: s.opts.Now()}
	err := s.opts.retryTx(ctx, func(ctx context.Context) error {
		return s.store.SetFeedback(ctx, bookingID, userID, feedback)
	})
	if err != nil {
		return translate(op, err, map[error]error{
			database.ErrNotFound:     errors.NotFound("Booking not found"),
			database.ErrNotOwner:     errors.Authorization("You can only submit feedback for your own bookings"),
			database.ErrAlreadyRated: errors.Conflict("Feedback has already been submitted for this booking"),
		})
	}

	s.log.Info("feedback submitted",
		slog.String("op", op), slog.String("booking_id", bookingID), slog.Int("rating", rating))

	s.notifyFeedback(bookingID, feedback)
	return nil
}

// ClearPastSessions hides the caller's records dated before today. Users
// clear bookings, speakers clear sessions. Seat counts are left alone.
func (s *BookingService) ClearPastSessions(ctx context.Context, subjectID, role string) (int64, error) {
	const op = "services.BookingService.ClearPastSessions"

	today := s.opts.today()

	var cleared int64
	var err error
	switch role {
	case model.RoleUser:
		err = s.opts.call(ctx, func(ctx context.Context) error {
			cleared, err = s.store.ClearUserBookings(ctx, subjectID, today)
			return err
		})
	case model.RoleSpeaker:
		err = s.opts.call(ctx, func(ctx context.Context) error {
			cleared, err = s.store.ClearSpeakerSessions(ctx, subjectID, today)
			return err
		})
	default:
		return 0, errors.Validation("Invalid role")
	}
	if err != nil {
		return 0, translate(op, err, nil)
	}

	s.log.Info("past sessions cleared",
		slog.String("op", op), slog.String("role", role), slog.Int64("cleared_count", cleared))

	return cleared, nil
}

// GetUserBookings lists the user's visible bookings joined with session and
// speaker details. A booking whose session, speaker or speaker profile is
// missing is left out.
func (s *BookingService) GetUserBookings(ctx context.Context, userID string) ([]model.UserBookingView, error) {
	const op = "services.BookingService.GetUserBookings"

	ctx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	bookings, err := s.store.ListUserBookings(ctx, userID)
	if err != nil {
		return nil, translate(op, err, nil)
	}

	type speakerInfo struct {
		user    model.UserData
		profile model.SpeakerProfile
		ok      bool
	}
	speakers := make(map[string]speakerInfo)

	views := make([]model.UserBookingView, 0, len(bookings))
	for _, b := range bookings {
		session, err := s.store.GetSession(ctx, b.SessionId)
		if stderrors.Is(err, database.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, translate(op, err, nil)
		}

		info, seen := speakers[session.SpeakerId]
		if !seen {
			info.user, info.profile, info.ok, err = s.lookupSpeaker(ctx, session.SpeakerId)
			if err != nil {
				return nil, translate(op, err, nil)
			}
			speakers[session.SpeakerId] = info
		}
		if !info.ok {
			continue
		}

		views = append(views, model.UserBookingView{
			BookingId:       b.Id,
			SessionId:       b.SessionId,
			Date:            session.Date,
			Time:            session.Time,
			SpeakerName:     info.user.FullName(),
			Expertise:       info.profile.Expertise,
			PricePerSession: info.profile.PricePerSession,
			Rating:          b.Rating,
			FeedbackText:    b.FeedbackText,
		})
	}

	slices.SortStableFunc(views, func(a, b model.UserBookingView) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
	})
	return views, nil
}

// GetSpeakerBookings lists the speaker's visible sessions with everyone booked
// into them, including users who cleared the booking on their side.
func (s *BookingService) GetSpeakerBookings(ctx context.Context, speakerID string) ([]model.SpeakerSessionView, error) {
	const op = "services.BookingService.GetSpeakerBookings"

	ctx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	sessions, err := s.store.ListSpeakerSessions(ctx, speakerID)
	if err != nil {
		return nil, translate(op, err, nil)
	}

	users := make(map[string]*model.UserData)

	views := make([]model.SpeakerSessionView, 0, len(sessions))
	for _, session := range sessions {
		bookings, err := s.store.ListSessionBookings(ctx, session.Id)
		if err != nil {
			return nil, translate(op, err, nil)
		}

		booked := make([]model.BookedUser, 0, len(bookings))
		for _, b := range bookings {
			user, seen := users[b.UserId]
			if !seen {
				u, err := s.store.GetUserByID(ctx, b.UserId)
				switch {
				case err == nil:
					user = &u
				case !stderrors.Is(err, database.ErrNotFound):
					return nil, translate(op, err, nil)
				}
				users[b.UserId] = user
			}
			if user == nil {
				continue
			}

			booked = append(booked, model.BookedUser{
				UserId:       b.UserId,
				Name:         user.FullName(),
				Email:        user.Email,
				Rating:       b.Rating,
				FeedbackText: b.FeedbackText,
			})
		}

		views = append(views, model.SpeakerSessionView{
			SessionId:   session.Id,
			Date:        session.Date,
			Time:        session.Time,
			MaxSeats:    session.MaxSeats,
			SeatsBooked: session.SeatsBooked,
			BookedUsers: booked,
		})
	}

	slices.SortStableFunc(views, func(a, b model.SpeakerSessionView) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
	})
	return views, nil
}

// lookupSpeaker reports ok=false when either record is missing.
func (s *BookingService) lookupSpeaker(ctx context.Context, speakerID string) (model.UserData, model.SpeakerProfile, bool, error) {
	user, err := s.store.GetUserByID(ctx, speakerID)
	if stderrors.Is(err, database.ErrNotFound) {
		return model.UserData{}, model.SpeakerProfile{}, false, nil
	} else if err != nil {
		return model.UserData{}, model.SpeakerProfile{}, false, err
	}

	profile, err := s.store.GetSpeakerProfile(ctx, speakerID)
	if stderrors.Is(err, database.ErrNotFound) {
		return model.UserData{}, model.SpeakerProfile{}, false, nil
	} else if err != nil {
		return model.UserData{}, model.SpeakerProfile{}, false, err
	}

	return user, profile, true, nil
}

// The notify* helpers run after commit. Their lookups happen on the
// notifier's goroutine, and a failed lookup only skips the notice.

func (s *BookingService) notifyBooking(booking model.Booking, session model.Session) {
	s.notifier.Booking(func(ctx context.Context) (notify.BookingNotice, error) {
		user, speaker, err := s.participants(ctx, booking.UserId, session.SpeakerId)
		if err != nil {
			return notify.BookingNotice{}, err
		}
		return notify.BookingNotice{
			BookingId:    booking.Id,
			SessionId:    session.Id,
			Date:         session.Date,
			Time:         session.Time,
			UserName:     user.FullName(),
			UserEmail:    user.Email,
			SpeakerName:  speaker.FullName(),
			SpeakerEmail: speaker.Email,
		}, nil
	})
}

func (s *BookingService) notifyCancellation(booking model.Booking, session model.Session) {
	s.notifier.Cancellation(func(ctx context.Context) (notify.CancellationNotice, error) {
		user, speaker, err := s.participants(ctx, booking.UserId, session.SpeakerId)
		if err != nil {
			return notify.CancellationNotice{}, err
		}
		return notify.CancellationNotice{
			BookingId:    booking.Id,
			SessionId:    session.Id,
			Date:         session.Date,
			Time:         session.Time,
			UserName:     user.FullName(),
			SpeakerName:  speaker.FullName(),
			SpeakerEmail: speaker.Email,
		}, nil
	})
}

func (s *BookingService) notifyFeedback(bookingID string, feedback model.Feedback) {
	s.notifier.Feedback(func(ctx context.Context) (notify.FeedbackNotice, error) {
		var session model.Session
		var user, speaker model.UserData
		err := s.opts.call(ctx, func(ctx context.Context) error {
			booking, err := s.store.GetBooking(ctx, bookingID)
			if err != nil {
				return err
			}
			if session, err = s.store.GetSession(ctx, booking.SessionId); err != nil {
				return err
			}
			if user, err = s.store.GetUserByID(ctx, booking.UserId); err != nil {
				return err
			}
			speaker, err = s.store.GetUserByID(ctx, session.SpeakerId)
			return err
		})
		if err != nil {
			return notify.FeedbackNotice{}, err
		}

		n := notify.FeedbackNotice{
			BookingId:    bookingID,
			Date:         session.Date,
			Time:         session.Time,
			UserName:     user.FullName(),
			SpeakerName:  speaker.FullName(),
			SpeakerEmail: speaker.Email,
			Rating:       feedback.Rating,
		}
		if feedback.Text != nil {
			n.FeedbackText = *feedback.Text
		}
		return n, nil
	})
}

func (s *BookingService) participants(ctx context.Context, userID, speakerID string) (model.UserData, model.UserData, error) {
	var user, speaker model.UserData
	err := s.opts.call(ctx, func(ctx context.Context) error {
		var err error
		if user, err = s.store.GetUserByID(ctx, userID); err != nil {
			return err
		}
		speaker, err = s.store.GetUserByID(ctx, speakerID)
		return err
	})
	return user, speaker, err
}
