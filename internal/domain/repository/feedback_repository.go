package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hackfest_backend/internal/domain/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	ListAll(ctx context.Context) ([]model.Feedback, error)
}

type pgFeedbackRepository struct {
	db *sql.DB
}

func NewPgFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &pgFeedbackRepository{db: db}
}

func (r *pgFeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	query := `INSERT INTO feedback (id, participant_id, rating, comments) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, feedback.ID, feedback.ParticipantID, feedback.Rating, feedback.Comments)
	if err != nil {
		return fmt.Errorf("pgFeedbackRepository.Create: %w", err)
	}
	return nil
}

func (r *pgFeedbackRepository) ListAll(ctx context.Context) ([]model.Feedback, error) {
	query := `SELECT f.id, f.participant_id, f.rating, f.comments, f.created_at, u.username
	          FROM feedback f
	          JOIN users u ON u.id = f.participant_id
	          ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgFeedbackRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var feedbacks []model.Feedback
	for rows.Next() {
		f := model.Feedback{}
		if err := rows.Scan(&f.ID, &f.ParticipantID, &f.Rating, &f.Comments, &f.CreatedAt, &f.ParticipantUsername); err != nil {
			return nil, fmt.Errorf("pgFeedbackRepository.ListAll scan: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgFeedbackRepository.ListAll rows.Err: %w", err)
	}
	return feedbacks, nil
}
