package model

// UserBookingView is one row of a user's "my bookings" listing.
type UserBookingView struct {
	BookingId       string  `json:"booking_id"`
	SessionId       string  `json:"session_id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	SpeakerName     string  `json:"speaker_name"`
	Expertise       string  `json:"expertise"`
	PricePerSession float64 `json:"price_per_session"`
	Rating          *int    `json:"rating,omitempty"`
	FeedbackText    *string `json:"feedback_text,omitempty"`
}

type BookedUser struct {
	UserId       string  `json:"user_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Rating       *int    `json:"rating,omitempty"`
	FeedbackText *string `json:"feedback_text,omitempty"`
}

// SpeakerSessionView is one of a speaker's sessions with everyone booked into it.
type SpeakerSessionView struct {
	SessionId   string       `json:"session_id"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	MaxSeats    int          `json:"max_seats"`
	SeatsBooked int          `json:"seats_booked"`
	BookedUsers []BookedUser `json:"booked_users"`
}
