package service

import (
	"context"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"

	"github.com/google/uuid"
)

type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

type FeedbackRequest struct {
	Rating   *int    `json:"rating,omitempty"`
	Comments *string `json:"comments,omitempty"`
}

func (s *FeedbackService) Submit(ctx context.Context, userID string, req FeedbackRequest) (*model.Feedback, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", common.ErrValidation)
	}
	feedback := &model.Feedback{
		ID:            uuid.NewString(),
		ParticipantID: userID,
		Rating:        req.Rating,
		Comments:      req.Comments,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *FeedbackService) ListAll(ctx context.Context) ([]model.Feedback, error) {
	return s.feedbackRepo.ListAll(ctx)
}
