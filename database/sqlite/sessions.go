package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Frostyanand/SpeakEasy/model"
)

const sessionColumns = `id, speaker_id, date, time, max_seats, seats_booked, cleared`

func (s *Store) CreateSession(ctx context.Context, session model.Session) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, session.SpeakerId, session.Date, session.Time, session.MaxSeats,
		session.SeatsBooked, session.Cleared)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", classify(err))
	}

	return id, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (model.Session, error) {
	session, err := getSession(ctx, s.db, id)
	if err != nil {
		return model.Session{}, fmt.Errorf("find session %s: %w", id, notFound(err))
	}
	return session, nil
}

func (s *Store) ListSpeakerSessions(ctx context.Context, speakerID string) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE speaker_id = ? AND cleared = 0`, speakerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions of %s: %w", speakerID, err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) ClearSpeakerSessions(ctx context.Context, speakerID, beforeDate string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET cleared = 1 WHERE speaker_id = ? AND cleared = 0 AND date < ?`,
		speakerID, beforeDate)
	if err != nil {
		return 0, fmt.Errorf("clear sessions of %s: %w", speakerID, classify(err))
	}
	return res.RowsAffected()
}

func getSession(ctx context.Context, q queryer, id string) (model.Session, error) {
	return scanSession(q.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
}

func scanSession(row scanner) (model.Session, error) {
	var session model.Session
	err := row.Scan(&session.Id, &session.SpeakerId, &session.Date, &session.Time,
		&session.MaxSeats, &session.SeatsBooked, &session.Cleared)
	return session, err
}
