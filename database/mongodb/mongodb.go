package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Frostyanand/SpeakEasy/database"
)

const (
	usersCollection    = "users"
	speakersCollection = "speakers"
	sessionsCollection = "sessions"
	bookingsCollection = "bookings"

	writeConflictCode = 112
)

// Store keeps every entity in its own collection. Booking transitions use
// multi-document transactions, so the server must be a replica set or sharded
// cluster.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	speakers *mongo.Collection
	sessions *mongo.Collection
	bookings *mongo.Collection
}

var _ database.Store = (*Store)(nil)

func Connect(ctx context.Context, connString, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	return New(client, dbName), nil
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		speakers: db.Collection(speakersCollection),
		sessions: db.Collection(sessionsCollection),
		bookings: db.Collection(bookingsCollection),
	}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureSchema creates the unique indexes the booking invariants rely on.
func (s *Store) EnsureSchema(ctx context.Context) error {
	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.users, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}}},
		{s.speakers, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}}},
		{s.sessions, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "speaker_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true),
		}}},
		{s.bookings, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "session_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "session_id", Value: 1}}},
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateMany(ctx, idx.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", idx.coll.Name(), err)
		}
	}

	return nil
}

// inTransaction runs fn inside a multi-document transaction and commits it
// when fn returns nil.
func (s *Store) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	err := s.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}

		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}

		return sc.CommitTransaction(sc)
	})

	return classify(err)
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) &&
		(serverErr.HasErrorLabel("TransientTransactionError") || serverErr.HasErrorCode(writeConflictCode)) {
		return fmt.Errorf("%w: %v", database.ErrTxAborted, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", database.ErrDuplicate, err)
	}

	return err
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return database.ErrNotFound
	}
	return err
}
