package service

import (
	"context"
	"fmt"
	"strings"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

type CreateProblemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateProblem publishes a new problem statement. The slug is derived from
// the title and must be unique.
func (s *EventService) CreateProblem(ctx context.Context, req CreateProblemRequest) (*model.ProblemStatement, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrValidation)
	}
	problem := &model.ProblemStatement{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
	}
	if err := s.eventRepo.CreateProblem(ctx, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// LandingPage is the public payload backing the event homepage: schedule
// grouped by day, problem statements, organizers, FAQs and resources.
type LandingPage struct {
	Schedule          map[string][]model.ScheduleItem `json:"schedule"`
	Days              []string                        `json:"days"`
	ProblemStatements []model.ProblemStatement        `json:"problem_statements"`
	Organizers        []model.Organizer               `json:"organizers"`
	FAQs              []model.FAQ                     `json:"faqs"`
	Resources         []model.Resource                `json:"resources"`
}

func (s *EventService) GetLandingPage(ctx context.Context) (*LandingPage, error) {
	items, err := s.eventRepo.ListScheduleItems(ctx)
	if err != nil {
		return nil, err
	}
	schedule := make(map[string][]model.ScheduleItem)
	var days []string
	for _, item := range items {
		if _, seen := schedule[item.Day]; !seen {
			days = append(days, item.Day)
		}
		schedule[item.Day] = append(schedule[item.Day], item)
	}

	problems, err := s.eventRepo.ListProblemStatements(ctx)
	if err != nil {
		return nil, err
	}
	organizers, err := s.eventRepo.ListOrganizers(ctx)
	if err != nil {
		return nil, err
	}
	faqs, err := s.eventRepo.ListFAQs(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := s.eventRepo.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	return &LandingPage{
		Schedule:          schedule,
		Days:              days,
		ProblemStatements: problems,
		Organizers:        organizers,
		FAQs:              faqs,
		Resources:         resources,
	}, nil
}
