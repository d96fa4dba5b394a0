package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/model"
)

// Only _id is an ObjectID. References to other records are stored as hex
// strings.

type userDocument struct {
	Id             primitive.ObjectID `bson:"_id"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"password"`
	Role           string             `bson:"role"`
	Verified       bool               `bson:"verified"`
	OTPHash        string             `bson:"otp_hash,omitempty"`
	OTPExpiresAt   *time.Time         `bson:"otp_expires_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

type speakerDocument struct {
	Id              primitive.ObjectID `bson:"_id"`
	UserId          string             `bson:"user_id"`
	Expertise       string             `bson:"expertise"`
	PricePerSession float64            `bson:"price_per_session"`
}

type sessionDocument struct {
	Id          primitive.ObjectID `bson:"_id"`
	SpeakerId   string             `bson:"speaker_id"`
	Date        string             `bson:"date"`
	Time        string             `bson:"time"`
	MaxSeats    int                `bson:"max_seats"`
	SeatsBooked int                `bson:"seats_booked"`
	Cleared     bool               `bson:"cleared"`
}

type bookingDocument struct {
	Id                  primitive.ObjectID `bson:"_id"`
	UserId              string             `bson:"user_id"`
	SessionId           string             `bson:"session_id"`
	CreatedAt           time.Time          `bson:"created_at"`
	Cleared             bool               `bson:"cleared"`
	Rating              *int               `bson:"rating,omitempty"`
	FeedbackText        *string            `bson:"feedback_text,omitempty"`
	FeedbackSubmittedAt *time.Time         `bson:"feedback_submitted_at,omitempty"`
}

// parseID treats a malformed id as a missing record.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, database.ErrNotFound
	}
	return oid, nil
}

func toUserDocument(u model.UserData) userDocument {
	return userDocument{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		Role:           u.Role,
		Verified:       u.Verified,
		OTPHash:        u.OTPHash,
		OTPExpiresAt:   u.OTPExpiresAt,
		CreatedAt:      u.CreatedAt,
	}
}

func (d userDocument) toModel() model.UserData {
	return model.UserData{
		Id:             d.Id.Hex(),
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		HashedPassword: d.HashedPassword,
		Role:           d.Role,
		Verified:       d.Verified,
		OTPHash:        d.OTPHash,
		OTPExpiresAt:   d.OTPExpiresAt,
		CreatedAt:      d.CreatedAt,
	}
}

func (d speakerDocument) toModel() model.SpeakerProfile {
	return model.SpeakerProfile{
		Id:              d.Id.Hex(),
		UserId:          d.UserId,
		Expertise:       d.Expertise,
		PricePerSession: d.PricePerSession,
	}
}

func toSessionDocument(s model.Session) sessionDocument {
	return sessionDocument{
		SpeakerId:   s.SpeakerId,
		Date:        s.Date,
		Time:        s.Time,
		MaxSeats:    s.MaxSeats,
		SeatsBooked: s.SeatsBooked,
		Cleared:     s.Cleared,
	}
}

func (d sessionDocument) toModel() model.Session {
	return model.Session{
		Id:          d.Id.Hex(),
		SpeakerId:   d.SpeakerId,
		Date:        d.Date,
		Time:        d.Time,
		MaxSeats:    d.MaxSeats,
		SeatsBooked: d.SeatsBooked,
		Cleared:     d.Cleared,
	}
}

func (d bookingDocument) toModel() model.Booking {
	return model.Booking{
		Id:                  d.Id.Hex(),
		UserId:              d.UserId,
		SessionId:           d.SessionId,
		CreatedAt:           d.CreatedAt,
		Cleared:             d.Cleared,
		Rating:              d.Rating,
		FeedbackText:        d.FeedbackText,
		FeedbackSubmittedAt: d.FeedbackSubmittedAt,
	}
}

func bookingsToModels(docs []bookingDocument) []model.Booking {
	bookings := make([]model.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toModel())
	}
	return bookings
}
