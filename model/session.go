package model

// Session is a speaker-owned, bookable one-hour slot.
type Session struct {
	Id          string `json:"session_id"`
	SpeakerId   string `json:"speaker_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	MaxSeats    int    `json:"max_seats"`
	SeatsBooked int    `json:"seats_booked"`
	Cleared     bool   `json:"cleared"`
}

func (s Session) IsFull() bool {
	return s.SeatsBooked >= s.MaxSeats
}
