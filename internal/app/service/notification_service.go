package service

import (
	"context"

	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"
)

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	// NewlyRead is how many notifications this view flipped from unread to
	// read; zero on every view after the first.
	NewlyRead int `json:"newly_read"`
}

// ListAndMarkRead returns the user's notifications and marks all previously
// unread ones as read as a side effect of the view. The mark happens before
// the list is fetched so the payload already reflects it.
func (s *NotificationService) ListAndMarkRead(ctx context.Context, userID string) (*NotificationList, error) {
	newlyRead, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: notifications, NewlyRead: newlyRead}, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
