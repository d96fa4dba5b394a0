package model

type SpeakerProfile struct {
	Id              string  `json:"id"`
	UserId          string  `json:"user_id"`
	Expertise       string  `json:"expertise"`
	PricePerSession float64 `json:"price_per_session"`
}

// SpeakerListing is a profile joined with its owner's user record.
type SpeakerListing struct {
	ProfileId       string  `json:"profile_id"`
	UserId          string  `json:"user_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Expertise       string  `json:"expertise"`
	PricePerSession float64 `json:"price_per_session"`
}
