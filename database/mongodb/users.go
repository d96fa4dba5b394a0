package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/model"
)

func (s *Store) CreateUser(ctx context.Context, user model.UserData) (string, error) {
	doc := toUserDocument(user)
	doc.Id = primitive.NewObjectID()

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert user: %w", classify(err))
	}

	return doc.Id.Hex(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.UserData, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return model.UserData{}, fmt.Errorf("find user by email: %w", notFound(err))
	}
	return doc.toModel(), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (model.UserData, error) {
	oid, err := parseID(id)
	if err != nil {
		return model.UserData{}, err
	}

	var doc userDocument
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return model.UserData{}, fmt.Errorf("find user %s: %w", id, notFound(err))
	}
	return doc.toModel(), nil
}

func (s *Store) SetUserOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"otp_hash": otpHash, "otp_expires_at": expiresAt}})
	if err != nil {
		return fmt.Errorf("set otp for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (s *Store) MarkUserVerified(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":   bson.M{"verified": true},
			"$unset": bson.M{"otp_hash": "", "otp_expires_at": ""},
		})
	if err != nil {
		return fmt.Errorf("verify user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
