package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Frostyanand/SpeakEasy/model"
)

func (s *Store) UpsertSpeakerProfile(ctx context.Context, profile model.SpeakerProfile) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO speakers (id, user_id, expertise, price_per_session)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			expertise = excluded.expertise,
			price_per_session = excluded.price_per_session
		RETURNING id`,
		uuid.NewString(), profile.UserId, profile.Expertise, profile.PricePerSession,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert speaker %s: %w", profile.UserId, classify(err))
	}
	return id, nil
}

func (s *Store) GetSpeakerProfile(ctx context.Context, userID string) (model.SpeakerProfile, error) {
	var p model.SpeakerProfile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, expertise, price_per_session FROM speakers WHERE user_id = ?`, userID,
	).Scan(&p.Id, &p.UserId, &p.Expertise, &p.PricePerSession)
	if err != nil {
		return model.SpeakerProfile{}, fmt.Errorf("find speaker %s: %w", userID, notFound(err))
	}
	return p, nil
}

func (s *Store) ListSpeakerProfiles(ctx context.Context) ([]model.SpeakerProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, expertise, price_per_session FROM speakers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	defer rows.Close()

	var profiles []model.SpeakerProfile
	for rows.Next() {
		var p model.SpeakerProfile
		if err := rows.Scan(&p.Id, &p.UserId, &p.Expertise, &p.PricePerSession); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
