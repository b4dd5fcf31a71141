package model

import (
	"time"
)

const (
	RoleParticipant = "participant"
	RoleJudge       = "judge"
	RoleOrganizer   = "organizer"
	RoleVolunteer   = "volunteer"
	RoleAdmin       = "admin"
)

// ValidRole reports whether role is one of the event roles.
func ValidRole(role string) bool {
	switch role {
	case RoleParticipant, RoleJudge, RoleOrganizer, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// User carries the account fields plus the profile extension record. The role
// is mandatory and mutable post-creation; it controls authorization everywhere.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	FullName       *string   `json:"full_name,omitempty"`
	RollNumber     *string   `json:"roll_number,omitempty"`
	About          *string   `json:"about,omitempty"`
	Branch         *string   `json:"branch,omitempty"`
	YearOfStudy    *int      `json:"year_of_study,omitempty"`
	Linkedin       *string   `json:"linkedin,omitempty"`
	Github         *string   `json:"github,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName is what goes on the certificate.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}
