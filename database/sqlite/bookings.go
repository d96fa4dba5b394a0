package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/model"
)

const bookingColumns = `id, user_id, session_id, created_at, cleared, rating, feedback_text,
	feedback_submitted_at`

func (s *Store) BookSeat(ctx context.Context, userID, sessionID string, at time.Time) (model.Booking, model.Session, error) {
	booking := model.Booking{
		Id:        uuid.NewString(),
		UserId:    userID,
		SessionId: sessionID,
		CreatedAt: at.UTC(),
	}
	var session model.Session

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if session, err = getSession(ctx, tx, sessionID); err != nil {
			return notFound(err)
		}
		if session.IsFull() {
			return database.ErrSessionFull
		}

		var existing int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings WHERE user_id = ? AND session_id = ?`,
			userID, sessionID).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return database.ErrDuplicate
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE sessions SET seats_booked = seats_booked + 1
			WHERE id = ? AND seats_booked < max_seats`, sessionID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return database.ErrSessionFull
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookings (id, user_id, session_id, created_at)
			VALUES (?, ?, ?, ?)`,
			booking.Id, userID, sessionID, formatTime(booking.CreatedAt))
		return err
	})
	if err != nil {
		return model.Booking{}, model.Session{}, fmt.Errorf("book session %s: %w", sessionID, err)
	}

	return booking, session, nil
}

func (s *Store) CancelBooking(ctx context.Context, bookingID, userID string) (model.Booking, model.Session, error) {
	var booking model.Booking
	var session model.Session

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if booking, err = getBooking(ctx, tx, bookingID); err != nil {
			return notFound(err)
		}
		if booking.UserId != userID {
			return database.ErrNotOwner
		}
		if session, err = getSession(ctx, tx, booking.SessionId); err != nil {
			return notFound(err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE sessions SET seats_booked = seats_booked - 1 WHERE id = ?`, session.Id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, bookingID)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
	if err != nil {
		return model.Booking{}, model.Session{}, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	session.SeatsBooked--
	return booking, session, nil
}

func (s *Store) SetFeedback(ctx context.Context, bookingID, userID string, feedback model.Feedback) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bookings SET rating = ?, feedback_text = ?, feedback_submitted_at = ?
		WHERE id = ? AND user_id = ? AND rating IS NULL`,
		feedback.Rating, nullString(feedback.Text), formatTime(feedback.SubmittedAt),
		bookingID, userID)
	if err != nil {
		return fmt.Errorf("set feedback on %s: %w", bookingID, classify(err))
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n > 0 {
		return nil
	}

	booking, err := getBooking(ctx, s.db, bookingID)
	if err != nil {
		return fmt.Errorf("set feedback on %s: %w", bookingID, notFound(err))
	}
	if booking.UserId != userID {
		return database.ErrNotOwner
	}
	return database.ErrAlreadyRated
}

func (s *Store) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := getBooking(ctx, s.db, id)
	if err != nil {
		return model.Booking{}, fmt.Errorf("find booking %s: %w", id, notFound(err))
	}
	return booking, nil
}

func (s *Store) ListUserBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? AND cleared = 0 ORDER BY created_at`, userID)
}

func (s *Store) ListSessionBookings(ctx context.Context, sessionID string) ([]model.Booking, error) {
	return s.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE session_id = ? ORDER BY created_at`, sessionID)
}

func (s *Store) ClearUserBookings(ctx context.Context, userID, beforeDate string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bookings SET cleared = 1
		WHERE user_id = ? AND cleared = 0
		  AND session_id IN (SELECT id FROM sessions WHERE date < ?)`,
		userID, beforeDate)
	if err != nil {
		return 0, fmt.Errorf("clear bookings of %s: %w", userID, classify(err))
	}
	return res.RowsAffected()
}

func (s *Store) queryBookings(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func getBooking(ctx context.Context, q queryer, id string) (model.Booking, error) {
	return scanBooking(q.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
}

func scanBooking(row scanner) (model.Booking, error) {
	var b model.Booking
	var createdAt string
	var rating sql.NullInt64
	var text, submittedAt sql.NullString

	if err := row.Scan(&b.Id, &b.UserId, &b.SessionId, &createdAt, &b.Cleared,
		&rating, &text, &submittedAt); err != nil {
		return model.Booking{}, err
	}

	var err error
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Booking{}, err
	}
	if rating.Valid {
		r := int(rating.Int64)
		b.Rating = &r
	}
	if text.Valid {
		b.FeedbackText = &text.String
	}
	if b.FeedbackSubmittedAt, err = parseNullTime(submittedAt); err != nil {
		return model.Booking{}, err
	}

	return b, nil
}
