package model

import "time"

// Booking is one user's seat in a Session. Rating and the feedback fields are
// nil until feedback is submitted.
type Booking struct {
	Id                  string     `json:"booking_id"`
	UserId              string     `json:"user_id"`
	SessionId           string     `json:"session_id"`
	CreatedAt           time.Time  `json:"created_at"`
	Cleared             bool       `json:"cleared"`
	Rating              *int       `json:"rating,omitempty"`
	FeedbackText        *string    `json:"feedback_text,omitempty"`
	FeedbackSubmittedAt *time.Time `json:"feedback_submitted_at,omitempty"`
}

type Feedback struct {
	Rating      int
	Text        *string
	SubmittedAt time.Time
}
