package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Frostyanand/SpeakEasy/model"
)

// UpsertSpeakerProfile keeps one profile per user; the profile id survives updates.
func (s *Store) UpsertSpeakerProfile(ctx context.Context, profile model.SpeakerProfile) (string, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc speakerDocument
	err := s.speakers.FindOneAndUpdate(ctx,
		bson.M{"user_id": profile.UserId},
		bson.M{"$set": bson.M{
			"expertise":         profile.Expertise,
			"price_per_session": profile.PricePerSession,
		}},
		opts).Decode(&doc)
	if err != nil {
		return "", fmt.Errorf("upsert speaker profile for %s: %w", profile.UserId, classify(err))
	}

	return doc.Id.Hex(), nil
}

func (s *Store) GetSpeakerProfile(ctx context.Context, userID string) (model.SpeakerProfile, error) {
	var doc speakerDocument
	if err := s.speakers.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		return model.SpeakerProfile{}, fmt.Errorf("find speaker profile for %s: %w", userID, notFound(err))
	}
	return doc.toModel(), nil
}

func (s *Store) ListSpeakerProfiles(ctx context.Context) ([]model.SpeakerProfile, error) {
	cur, err := s.speakers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list speaker profiles: %w", err)
	}

	var docs []speakerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode speaker profiles: %w", err)
	}

	profiles := make([]model.SpeakerProfile, 0, len(docs))
	for _, d := range docs {
		profiles = append(profiles, d.toModel())
	}
	return profiles, nil
}
