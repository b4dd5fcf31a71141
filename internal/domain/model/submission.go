package model

import "time"

// Submission is one-to-one with a team. It is created lazily on first visit to
// the playground and updated in place afterwards, no versioning or history.
type Submission struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team_id"`
	ProblemID    *string   `json:"problem_id,omitempty"`
	ProjectTitle string    `json:"project_title"`
	IdeationText *string   `json:"ideation_text,omitempty"`
	PlanPath     *string   `json:"plan_path,omitempty"`
	RepoLink     *string   `json:"repo_link,omitempty"`
	DemoLink     *string   `json:"demo_link,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	TeamName     *string `json:"team_name,omitempty"`     // For display
	ProblemTitle *string `json:"problem_title,omitempty"` // For display
}

// JudgingScore is unique per (judge, submission). Re-scoring overwrites the
// same row; the latest write is authoritative and there is no audit trail.
type JudgingScore struct {
	ID           string    `json:"id"`
	JudgeID      string    `json:"judge_id"`
	SubmissionID string    `json:"submission_id"`
	Score        float64   `json:"score"`
	Feedback     *string   `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	JudgeUsername *string `json:"judge_username,omitempty"` // For display
}
