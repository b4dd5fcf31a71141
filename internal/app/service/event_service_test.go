package service

import (
	"context"
	"errors"
	"testing"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

func TestGetLandingPageGroupsScheduleByDay(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventRepo.schedule = []model.ScheduleItem{
		{ID: "s1", Day: "Day 1", Title: "Registration"},
		{ID: "s2", Day: "Day 1", Title: "Opening Ceremony"},
		{ID: "s3", Day: "Day 2", Title: "Final Judging"},
	}
	eventRepo.faqs = []model.FAQ{{ID: "f1", Question: "Is food provided?", Answer: "Yes"}}
	svc := NewEventService(eventRepo)

	page, err := svc.GetLandingPage(context.Background())
	if err != nil {
		t.Fatalf("GetLandingPage: %v", err)
	}
	if len(page.Days) != 2 || page.Days[0] != "Day 1" || page.Days[1] != "Day 2" {
		t.Errorf("days = %v", page.Days)
	}
	if len(page.Schedule["Day 1"]) != 2 || len(page.Schedule["Day 2"]) != 1 {
		t.Errorf("schedule grouping = %v", page.Schedule)
	}
	if len(page.FAQs) != 1 {
		t.Errorf("got %d FAQs, want 1", len(page.FAQs))
	}
}

func TestCreateProblemSlugsTitle(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewEventService(eventRepo)
	ctx := context.Background()

	problem, err := svc.CreateProblem(ctx, CreateProblemRequest{Title: "Smart Campus Navigation!", Description: "Indoor maps"})
	if err != nil {
		t.Fatalf("CreateProblem: %v", err)
	}
	if problem.Slug != "smart-campus-navigation" {
		t.Errorf("slug = %q", problem.Slug)
	}

	// Same title slugs to the same value and collides.
	_, err = svc.CreateProblem(ctx, CreateProblemRequest{Title: "Smart Campus Navigation"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("duplicate slug err = %v, want ErrConflict", err)
	}

	if _, err := svc.CreateProblem(ctx, CreateProblemRequest{Title: "  "}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("blank title err = %v, want ErrValidation", err)
	}
}
