package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"hackfest_backend/internal/app/event"
	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"
	"hackfest_backend/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Renderer composites a participant's name onto the certificate template and
// writes the result to outPath.
type Renderer interface {
	Render(name, outPath string) error
}

// CertificateService issues one certificate per user, exactly once. Issuance
// is driven off the queue by the certificate worker; the HTTP side only reads.
type CertificateService struct {
	certificateRepo repository.CertificateRepository
	teamRepo        repository.TeamRepository
	userRepo        repository.UserRepository
	renderer        Renderer
	rdb             *redis.Client
}

func NewCertificateService(
	certificateRepo repository.CertificateRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	renderer Renderer,
	rdb *redis.Client,
) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
		teamRepo:        teamRepo,
		userRepo:        userRepo,
		renderer:        renderer,
		rdb:             rdb,
	}
}

// RegisterSubmissionHook enqueues a certificate job when a team makes its
// first submission.
func (s *CertificateService) RegisterSubmissionHook(bus *event.Bus) {
	bus.Subscribe(event.SubmissionCreated{}.Name(), func(ctx context.Context, e event.Event) error {
		created, ok := e.(event.SubmissionCreated)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", e)
		}
		payload, err := json.Marshal(model.CertificateJob{TeamID: created.TeamID})
		if err != nil {
			return fmt.Errorf("failed to marshal certificate job: %w", err)
		}
		if err := s.rdb.LPush(ctx, config.AppConfig.CertificateQueueName, payload).Err(); err != nil {
			return fmt.Errorf("failed to push certificate job to Redis queue: %w", err)
		}
		log.Printf("Certificate job enqueued for team %s", created.TeamID)
		return nil
	})
}

// IssueForTeam renders and records a certificate for every accepted member of
// the team that does not have one yet. Per-member failures are logged and
// skipped; the existence check plus the unique constraint on user_id make the
// whole operation idempotent.
func (s *CertificateService) IssueForTeam(ctx context.Context, teamID string) error {
	members, err := s.teamRepo.GetMembers(ctx, teamID)
	if err != nil {
		return err
	}

	for _, member := range members {
		if member.Status != model.MemberAccepted {
			continue
		}
		if err := s.issueForUser(ctx, member.ParticipantID); err != nil {
			log.Printf("ERROR: certificate issuance for user %s failed: %v", member.ParticipantID, err)
		}
	}
	return nil
}

func (s *CertificateService) issueForUser(ctx context.Context, userID string) error {
	exists, err := s.certificateRepo.ExistsForUser(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	relPath := filepath.Join("certificates", fmt.Sprintf("certificate_%s.png", user.Username))
	absPath := filepath.Join(config.AppConfig.MediaRoot, relPath)
	if err := s.renderer.Render(user.DisplayName(), absPath); err != nil {
		return fmt.Errorf("failed to render certificate: %w", err)
	}

	certificate := &model.Certificate{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		FilePath: relPath,
	}
	if err := s.certificateRepo.Create(ctx, certificate); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Raced another issuance past the existence check; the row that
			// landed first stands.
			return nil
		}
		return err
	}
	log.Printf("Certificate issued for user %s", user.Username)
	return nil
}

// GetForUser returns the user's certificate. Before the configured unlock
// timestamp the endpoint is closed even if the certificate already exists.
func (s *CertificateService) GetForUser(ctx context.Context, userID string) (*model.Certificate, error) {
	unlockAt := config.AppConfig.CertificateUnlockAt
	if !unlockAt.IsZero() && time.Now().Before(unlockAt) {
		return nil, fmt.Errorf("certificates unlock at %s: %w", unlockAt.Format(time.RFC3339), common.ErrForbidden)
	}
	return s.certificateRepo.FindByUserID(ctx, userID)
}
