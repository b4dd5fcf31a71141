package model

import "time"

// Certificate is one-to-one with a user, created once and never regenerated.
// The unique constraint on user_id is the idempotency backstop.
type Certificate struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	FilePath string    `json:"file_path"`
	IssuedAt time.Time `json:"issued_at"`
}

// CertificateJob is the payload pushed onto the redis queue when a team makes
// its first submission.
type CertificateJob struct {
	TeamID string `json:"team_id"`
}
