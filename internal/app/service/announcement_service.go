package service

import (
	"context"
	"fmt"
	"log"

	"hackfest_backend/internal/app/event"
	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"

	"github.com/google/uuid"
)

type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	bus              *event.Bus
}

func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, bus *event.Bus) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo, bus: bus}
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Create stores the announcement and publishes AnnouncementCreated; the
// notification fan-out handler runs before the response is written.
func (s *AnnouncementService) Create(ctx context.Context, req CreateAnnouncementRequest) (*model.Announcement, error) {
	if req.Title == "" || req.Message == "" {
		return nil, fmt.Errorf("title and message are required: %w", common.ErrValidation)
	}

	announcement := &model.Announcement{
		ID:      uuid.NewString(),
		Title:   req.Title,
		Message: req.Message,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.AnnouncementCreated{AnnouncementID: announcement.ID, Title: announcement.Title})
	return announcement, nil
}

func (s *AnnouncementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.announcementRepo.ListAll(ctx)
}

// RegisterNotificationFanOut subscribes the per-user notification broadcast to
// announcement creation: one unread notification per existing user.
func RegisterNotificationFanOut(bus *event.Bus, notificationRepo repository.NotificationRepository) {
	bus.Subscribe(event.AnnouncementCreated{}.Name(), func(ctx context.Context, e event.Event) error {
		created, ok := e.(event.AnnouncementCreated)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", e)
		}
		n, err := notificationRepo.FanOut(ctx, "New Announcement: "+created.Title)
		if err != nil {
			return err
		}
		log.Printf("Announcement %s fanned out to %d users", created.AnnouncementID, n)
		return nil
	})
}
