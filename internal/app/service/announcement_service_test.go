package service

import (
	"context"
	"errors"
	"testing"

	"hackfest_backend/internal/app/event"
	"hackfest_backend/internal/common"
)

func TestCreateAnnouncementFansOut(t *testing.T) {
	bus := event.NewBus()
	announcementRepo := &fakeAnnouncementRepo{}
	notificationRepo := &fakeNotificationRepo{userIDs: []string{"u1", "u2", "u3"}}
	RegisterNotificationFanOut(bus, notificationRepo)
	svc := NewAnnouncementService(announcementRepo, bus)
	ctx := context.Background()

	announcement, err := svc.Create(ctx, CreateAnnouncementRequest{Title: "Lunch", Message: "Food court is open"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if announcement.ID == "" {
		t.Fatal("announcement has no ID")
	}

	// One unread notification per user, prefixed with the title.
	if len(notificationRepo.notifications) != 3 {
		t.Fatalf("got %d notifications, want 3", len(notificationRepo.notifications))
	}
	for _, n := range notificationRepo.notifications {
		if n.Message != "New Announcement: Lunch" {
			t.Errorf("message = %q", n.Message)
		}
		if n.IsRead {
			t.Errorf("notification for %s born read", n.UserID)
		}
	}
}

func TestCreateAnnouncementValidates(t *testing.T) {
	svc := NewAnnouncementService(&fakeAnnouncementRepo{}, event.NewBus())

	_, err := svc.Create(context.Background(), CreateAnnouncementRequest{Title: "No body"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestNotificationViewMarksRead(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{userIDs: []string{"u1", "u2"}}
	if _, err := notificationRepo.FanOut(context.Background(), "New Announcement: Lunch"); err != nil {
		t.Fatalf("FanOut: %v", err)
	}
	svc := NewNotificationService(notificationRepo)
	ctx := context.Background()

	if count, _ := svc.CountUnread(ctx, "u1"); count != 1 {
		t.Fatalf("unread = %d, want 1", count)
	}

	list, err := svc.ListAndMarkRead(ctx, "u1")
	if err != nil {
		t.Fatalf("ListAndMarkRead: %v", err)
	}
	if len(list.Notifications) != 1 || list.NewlyRead != 1 {
		t.Fatalf("got %d notifications, %d newly read; want 1 and 1", len(list.Notifications), list.NewlyRead)
	}
	// The payload already shows the state the view produced.
	if !list.Notifications[0].IsRead {
		t.Error("first view returned an unread notification although it marks everything read")
	}

	// The second view flips nothing.
	list, err = svc.ListAndMarkRead(ctx, "u1")
	if err != nil {
		t.Fatalf("second view: %v", err)
	}
	if list.NewlyRead != 0 {
		t.Errorf("second view newly read = %d, want 0", list.NewlyRead)
	}
	if count, _ := svc.CountUnread(ctx, "u1"); count != 0 {
		t.Errorf("unread after view = %d, want 0", count)
	}

	// Other users' notifications are untouched.
	if count, _ := svc.CountUnread(ctx, "u2"); count != 1 {
		t.Errorf("u2 unread = %d, want 1", count)
	}
}
