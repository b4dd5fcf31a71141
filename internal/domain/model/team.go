package model

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code"`
	LeaderID  string    `json:"leader_id"`
	ProblemID *string   `json:"problem_id,omitempty"`
	MaxSize   int       `json:"max_size"`
	CreatedAt time.Time `json:"created_at"`

	LeaderUsername *string      `json:"leader_username,omitempty"` // For display
	ProblemTitle   *string      `json:"problem_title,omitempty"`   // For display
	AcceptedCount  int          `json:"accepted_count"`
	Members        []TeamMember `json:"members,omitempty"`
}

// TeamMember represents both a join request and a confirmed membership; the
// status field is the state machine (see membership.go).
type TeamMember struct {
	ID            string       `json:"id"`
	TeamID        string       `json:"team_id"`
	ParticipantID string       `json:"participant_id"`
	Role          MemberRole   `json:"role"`
	Status        MemberStatus `json:"status"`
	JoinedAt      time.Time    `json:"joined_at"`

	ParticipantUsername *string `json:"participant_username,omitempty"` // For display
}

// TeamInvite targets an email address, which may not yet correspond to a user
// on the team. Distinct path from the join-request flow.
type TeamInvite struct {
	ID           string       `json:"id"`
	TeamID       string       `json:"team_id"`
	InvitedEmail string       `json:"invited_email"`
	Status       InviteStatus `json:"status"`
	InvitedAt    time.Time    `json:"invited_at"`

	TeamName *string `json:"team_name,omitempty"` // For display
}
