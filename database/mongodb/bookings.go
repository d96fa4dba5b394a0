package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/model"
)

// hasFreeSeat guards the increment so it only applies while seats remain.
var hasFreeSeat = bson.M{"$expr": bson.M{"$lt": bson.A{"$seats_booked", "$max_seats"}}}

func (s *Store) BookSeat(ctx context.Context, userID, sessionID string, at time.Time) (model.Booking, model.Session, error) {
	sessionOID, err := parseID(sessionID)
	if err != nil {
		return model.Booking{}, model.Session{}, err
	}

	booking := bookingDocument{
		Id:        primitive.NewObjectID(),
		UserId:    userID,
		SessionId: sessionID,
		CreatedAt: at,
	}
	var session sessionDocument

	err = s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.sessions.FindOne(sc, bson.M{"_id": sessionOID}).Decode(&session); err != nil {
			return notFound(err)
		}
		if session.SeatsBooked >= session.MaxSeats {
			return database.ErrSessionFull
		}

		existing, err := s.bookings.CountDocuments(sc,
			bson.M{"user_id": userID, "session_id": sessionID},
			options.Count().SetLimit(1))
		if err != nil {
			return err
		}
		if existing > 0 {
			return database.ErrDuplicate
		}

		res, err := s.sessions.UpdateOne(sc,
			bson.M{"_id": sessionOID, "$and": bson.A{hasFreeSeat}},
			bson.M{"$inc": bson.M{"seats_booked": 1}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return database.ErrSessionFull
		}

		_, err = s.bookings.InsertOne(sc, booking)
		return err
	})
	if err != nil {
		return model.Booking{}, model.Session{}, fmt.Errorf("book session %s: %w", sessionID, err)
	}

	return booking.toModel(), session.toModel(), nil
}

func (s *Store) CancelBooking(ctx context.Context, bookingID, userID string) (model.Booking, model.Session, error) {
	bookingOID, err := parseID(bookingID)
	if err != nil {
		return model.Booking{}, model.Session{}, err
	}

	var booking bookingDocument
	var session sessionDocument

	err = s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.bookings.FindOne(sc, bson.M{"_id": bookingOID}).Decode(&booking); err != nil {
			return notFound(err)
		}
		if booking.UserId != userID {
			return database.ErrNotOwner
		}

		sessionOID, err := parseID(booking.SessionId)
		if err != nil {
			return err
		}
		if err := s.sessions.FindOne(sc, bson.M{"_id": sessionOID}).Decode(&session); err != nil {
			return notFound(err)
		}

		if _, err := s.sessions.UpdateOne(sc,
			bson.M{"_id": sessionOID},
			bson.M{"$inc": bson.M{"seats_booked": -1}}); err != nil {
			return err
		}

		res, err := s.bookings.DeleteOne(sc, bson.M{"_id": bookingOID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return database.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return model.Booking{}, model.Session{}, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	session.SeatsBooked--
	return booking.toModel(), session.toModel(), nil
}

func (s *Store) SetFeedback(ctx context.Context, bookingID, userID string, feedback model.Feedback) error {
	oid, err := parseID(bookingID)
	if err != nil {
		return err
	}

	set := bson.M{
		"rating":                feedback.Rating,
		"feedback_submitted_at": feedback.SubmittedAt,
	}
	if feedback.Text != nil {
		set["feedback_text"] = *feedback.Text
	}

	// rating: nil matches both a missing and a null rating.
	res, err := s.bookings.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID, "rating": nil},
		bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set feedback on %s: %w", bookingID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	var doc bookingDocument
	if err := s.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return fmt.Errorf("set feedback on %s: %w", bookingID, notFound(err))
	}
	if doc.UserId != userID {
		return database.ErrNotOwner
	}
	return database.ErrAlreadyRated
}

func (s *Store) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return model.Booking{}, err
	}

	var doc bookingDocument
	if err := s.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return model.Booking{}, fmt.Errorf("find booking %s: %w", id, notFound(err))
	}
	return doc.toModel(), nil
}

func (s *Store) ListUserBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.findBookings(ctx, bson.M{"user_id": userID, "cleared": notCleared})
}

func (s *Store) ListSessionBookings(ctx context.Context, sessionID string) ([]model.Booking, error) {
	return s.findBookings(ctx, bson.M{"session_id": sessionID})
}

func (s *Store) findBookings(ctx context.Context, filter bson.M) ([]model.Booking, error) {
	cur, err := s.bookings.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookingsToModels(docs), nil
}

// ClearUserBookings flags the user's bookings of sessions dated before beforeDate.
func (s *Store) ClearUserBookings(ctx context.Context, userID, beforeDate string) (int64, error) {
	active, err := s.ListUserBookings(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(active) == 0 {
		return 0, nil
	}

	sessionOIDs := make([]primitive.ObjectID, 0, len(active))
	for _, b := range active {
		if oid, err := primitive.ObjectIDFromHex(b.SessionId); err == nil {
			sessionOIDs = append(sessionOIDs, oid)
		}
	}

	cur, err := s.sessions.Find(ctx,
		bson.M{"_id": bson.M{"$in": sessionOIDs}, "date": bson.M{"$lt": beforeDate}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, fmt.Errorf("find past sessions: %w", err)
	}

	var past []struct {
		Id primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &past); err != nil {
		return 0, fmt.Errorf("decode past sessions: %w", err)
	}
	if len(past) == 0 {
		return 0, nil
	}

	pastIDs := make([]string, 0, len(past))
	for _, p := range past {
		pastIDs = append(pastIDs, p.Id.Hex())
	}

	res, err := s.bookings.UpdateMany(ctx,
		bson.M{
			"user_id":    userID,
			"cleared":    notCleared,
			"session_id": bson.M{"$in": pastIDs},
		},
		bson.M{"$set": bson.M{"cleared": true}})
	if err != nil {
		return 0, fmt.Errorf("clear bookings of %s: %w", userID, err)
	}
	return res.ModifiedCount, nil
}
