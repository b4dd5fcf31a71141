package service

import (
	"context"
	"errors"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"

	"github.com/google/uuid"
)

type JudgingService struct {
	judgingRepo    repository.JudgingRepository
	submissionRepo repository.SubmissionRepository
}

func NewJudgingService(judgingRepo repository.JudgingRepository, submissionRepo repository.SubmissionRepository) *JudgingService {
	return &JudgingService{judgingRepo: judgingRepo, submissionRepo: submissionRepo}
}

// GetOrCreateScore returns the judge's score row for a submission, creating a
// zero score on first visit. The (judge, submission) unique constraint keeps
// this to one row no matter how often the scoring page is opened.
func (s *JudgingService) GetOrCreateScore(ctx context.Context, judgeID, submissionID string) (*model.JudgingScore, error) {
	if _, err := s.submissionRepo.FindByID(ctx, submissionID); err != nil {
		return nil, err
	}

	score, err := s.judgingRepo.GetScore(ctx, judgeID, submissionID)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	score = &model.JudgingScore{
		ID:           uuid.NewString(),
		JudgeID:      judgeID,
		SubmissionID: submissionID,
	}
	if err := s.judgingRepo.CreateScore(ctx, score); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return s.judgingRepo.GetScore(ctx, judgeID, submissionID)
		}
		return nil, err
	}
	return score, nil
}

type ScoreRequest struct {
	Score    float64 `json:"score"`
	Feedback *string `json:"feedback,omitempty"`
}

// SubmitScore overwrites the judge's score row in place; the latest write is
// authoritative and no history of prior scores is kept.
func (s *JudgingService) SubmitScore(ctx context.Context, judgeID, submissionID string, req ScoreRequest) (*model.JudgingScore, error) {
	if req.Score < 0 || req.Score > 100 {
		return nil, fmt.Errorf("score must be between 0 and 100: %w", common.ErrValidation)
	}

	score, err := s.GetOrCreateScore(ctx, judgeID, submissionID)
	if err != nil {
		return nil, err
	}
	score.Score = req.Score
	score.Feedback = req.Feedback
	if err := s.judgingRepo.UpdateScore(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}
