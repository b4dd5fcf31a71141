package model

import "time"

type Feedback struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Rating        *int      `json:"rating,omitempty"` // 1-5
	Comments      *string   `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	ParticipantUsername *string `json:"participant_username,omitempty"` // For display
}
