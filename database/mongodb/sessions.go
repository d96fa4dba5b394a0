package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Frostyanand/SpeakEasy/model"
)

// notCleared also matches documents written before the cleared flag existed.
var notCleared = bson.M{"$ne": true}

func (s *Store) CreateSession(ctx context.Context, session model.Session) (string, error) {
	doc := toSessionDocument(session)
	doc.Id = primitive.NewObjectID()

	if _, err := s.sessions.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert session: %w", classify(err))
	}

	return doc.Id.Hex(), nil
}

func (s *Store) GetSession(ctx context.Context, id string) (model.Session, error) {
	oid, err := parseID(id)
	if err != nil {
		return model.Session{}, err
	}

	var doc sessionDocument
	if err := s.sessions.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return model.Session{}, fmt.Errorf("find session %s: %w", id, notFound(err))
	}
	return doc.toModel(), nil
}

func (s *Store) ListSpeakerSessions(ctx context.Context, speakerID string) ([]model.Session, error) {
	cur, err := s.sessions.Find(ctx, bson.M{"speaker_id": speakerID, "cleared": notCleared})
	if err != nil {
		return nil, fmt.Errorf("list sessions of %s: %w", speakerID, err)
	}

	var docs []sessionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	sessions := make([]model.Session, 0, len(docs))
	for _, d := range docs {
		sessions = append(sessions, d.toModel())
	}
	return sessions, nil
}

func (s *Store) ClearSpeakerSessions(ctx context.Context, speakerID, beforeDate string) (int64, error) {
	res, err := s.sessions.UpdateMany(ctx,
		bson.M{
			"speaker_id": speakerID,
			"cleared":    notCleared,
			"date":       bson.M{"$lt": beforeDate},
		},
		bson.M{"$set": bson.M{"cleared": true}})
	if err != nil {
		return 0, fmt.Errorf("clear sessions of %s: %w", speakerID, err)
	}
	return res.ModifiedCount, nil
}
