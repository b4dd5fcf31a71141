package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"hackfest_backend/internal/app/event"
	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"
	"hackfest_backend/internal/platform/config"

	"github.com/google/uuid"
)

// SubmissionService backs the playground: one submission per team, created
// lazily on first access and updated in place afterwards.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	teamRepo       repository.TeamRepository
	bus            *event.Bus
}

func NewSubmissionService(submissionRepo repository.SubmissionRepository, teamRepo repository.TeamRepository, bus *event.Bus) *SubmissionService {
	return &SubmissionService{submissionRepo: submissionRepo, teamRepo: teamRepo, bus: bus}
}

// GetOrCreateForParticipant returns the requester's team submission, creating
// an empty one bound to the team's currently selected problem on first visit.
// First creation publishes SubmissionCreated, which drives certificate
// issuance for the team's accepted members.
func (s *SubmissionService) GetOrCreateForParticipant(ctx context.Context, userID string) (*model.Submission, error) {
	team, err := s.teamRepo.FindTeamForParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.FindByTeamID(ctx, team.ID)
	if err == nil {
		return submission, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	submission = &model.Submission{
		ID:        uuid.NewString(),
		TeamID:    team.ID,
		ProblemID: team.ProblemID, // May be nil; a team without a problem still gets a submission
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Lost a create race with a teammate; their row wins.
			return s.submissionRepo.FindByTeamID(ctx, team.ID)
		}
		return nil, err
	}

	s.bus.Publish(ctx, event.SubmissionCreated{SubmissionID: submission.ID, TeamID: team.ID})
	return s.submissionRepo.FindByTeamID(ctx, team.ID)
}

type UpdateSubmissionRequest struct {
	ProjectTitle *string `json:"project_title,omitempty"`
	IdeationText *string `json:"ideation_text,omitempty"`
	RepoLink     *string `json:"repo_link,omitempty"`
	DemoLink     *string `json:"demo_link,omitempty"`
}

func (s *SubmissionService) UpdateForParticipant(ctx context.Context, userID string, req UpdateSubmissionRequest) (*model.Submission, error) {
	submission, err := s.GetOrCreateForParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ProjectTitle != nil {
		submission.ProjectTitle = *req.ProjectTitle
	}
	if req.IdeationText != nil {
		submission.IdeationText = req.IdeationText
	}
	if req.RepoLink != nil {
		submission.RepoLink = req.RepoLink
	}
	if req.DemoLink != nil {
		submission.DemoLink = req.DemoLink
	}

	if err := s.submissionRepo.Update(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// SavePlan stores the uploaded plan document under the media root and records
// its relative path on the submission.
func (s *SubmissionService) SavePlan(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*model.Submission, error) {
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return nil, fmt.Errorf("plan document must be a PDF: %w", common.ErrValidation)
	}
	if header.Size > config.AppConfig.PlanMaxUploadBytes {
		return nil, fmt.Errorf("plan document exceeds the upload limit: %w", common.ErrValidation)
	}

	submission, err := s.GetOrCreateForParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	relPath := filepath.Join("plans", fmt.Sprintf("plan_%s.pdf", submission.TeamID))
	absPath := filepath.Join(config.AppConfig.MediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plans directory: %w", err)
	}
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("failed to write plan file: %w", err)
	}

	if err := s.submissionRepo.SetPlanPath(ctx, submission.ID, relPath); err != nil {
		return nil, err
	}
	log.Printf("Plan document stored for team %s at %s", submission.TeamID, relPath)
	submission.PlanPath = &relPath
	return submission, nil
}

// ListAll is the judge-facing view of every submission.
func (s *SubmissionService) ListAll(ctx context.Context) ([]model.Submission, error) {
	return s.submissionRepo.ListAll(ctx)
}
