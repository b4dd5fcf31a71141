package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

// JudgingRepository is the score ledger: at most one row per (judge,
// submission), overwritten in place on re-scoring.
type JudgingRepository interface {
	CreateScore(ctx context.Context, score *model.JudgingScore) error
	GetScore(ctx context.Context, judgeID, submissionID string) (*model.JudgingScore, error)
	UpdateScore(ctx context.Context, score *model.JudgingScore) error
	ListScoresForSubmission(ctx context.Context, submissionID string) ([]model.JudgingScore, error)
}

type pgJudgingRepository struct {
	db *sql.DB
}

func NewPgJudgingRepository(db *sql.DB) JudgingRepository {
	return &pgJudgingRepository{db: db}
}

func (r *pgJudgingRepository) CreateScore(ctx context.Context, score *model.JudgingScore) error {
	query := `INSERT INTO judging_scores (id, judge_id, submission_id, score, feedback)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, score.ID, score.JudgeID, score.SubmissionID, score.Score, score.Feedback)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("score already exists for this judge and submission: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgJudgingRepository.CreateScore: %w", err)
	}
	return nil
}

func (r *pgJudgingRepository) GetScore(ctx context.Context, judgeID, submissionID string) (*model.JudgingScore, error) {
	query := `SELECT id, judge_id, submission_id, score, feedback, created_at, updated_at
	          FROM judging_scores WHERE judge_id = $1 AND submission_id = $2`
	score := &model.JudgingScore{}
	err := r.db.QueryRowContext(ctx, query, judgeID, submissionID).Scan(
		&score.ID, &score.JudgeID, &score.SubmissionID, &score.Score, &score.Feedback,
		&score.CreatedAt, &score.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgJudgingRepository.GetScore: %w", err)
	}
	return score, nil
}

func (r *pgJudgingRepository) UpdateScore(ctx context.Context, score *model.JudgingScore) error {
	query := `UPDATE judging_scores SET score = $1, feedback = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, score.Score, score.Feedback, score.ID)
	if err != nil {
		return fmt.Errorf("pgJudgingRepository.UpdateScore: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgJudgingRepository) ListScoresForSubmission(ctx context.Context, submissionID string) ([]model.JudgingScore, error) {
	query := `SELECT s.id, s.judge_id, s.submission_id, s.score, s.feedback, s.created_at, s.updated_at, u.username
	          FROM judging_scores s
	          JOIN users u ON u.id = s.judge_id
	          WHERE s.submission_id = $1
	          ORDER BY s.created_at`
	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("pgJudgingRepository.ListScoresForSubmission: %w", err)
	}
	defer rows.Close()

	var scores []model.JudgingScore
	for rows.Next() {
		score := model.JudgingScore{}
		if err := rows.Scan(&score.ID, &score.JudgeID, &score.SubmissionID, &score.Score, &score.Feedback, &score.CreatedAt, &score.UpdatedAt, &score.JudgeUsername); err != nil {
			return nil, fmt.Errorf("pgJudgingRepository.ListScoresForSubmission scan: %w", err)
		}
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgJudgingRepository.ListScoresForSubmission rows.Err: %w", err)
	}
	return scores, nil
}
