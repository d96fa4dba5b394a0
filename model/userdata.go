package model

import "time"

const (
	RoleUser    = "user"
	RoleSpeaker = "speaker"
)

type UserData struct {
	Id             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	Role           string     `json:"role"`
	Verified       bool       `json:"verified"`
	OTPHash        string     `json:"-"`
	OTPExpiresAt   *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (u UserData) FullName() string {
	return u.FirstName + " " + u.LastName
}

func IsKnownRole(role string) bool {
	return role == RoleUser || role == RoleSpeaker
}
