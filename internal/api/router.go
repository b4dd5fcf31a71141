package api

import (
	"net/http"
	"time"

	"hackfest_backend/internal/api/handler"
	"hackfest_backend/internal/api/middleware"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	profileService *service.ProfileService,
	eventService *service.EventService,
	teamService *service.TeamService,
	submissionService *service.SubmissionService,
	judgingService *service.JudgingService,
	announcementService *service.AnnouncementService,
	notificationService *service.NotificationService,
	feedbackService *service.FeedbackService,
	certificateService *service.CertificateService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Landing page (public)
		eventHandler := handler.NewEventHandler(eventService)
		v1.Group(func(public chi.Router) {
			eventHandler.RegisterRoutes(public)
		})

		// Everything below requires a valid token.
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.Authenticator)

			handler.NewProfileHandler(profileService).RegisterRoutes(authed)
			handler.NewNotificationHandler(notificationService).RegisterRoutes(authed)
			handler.NewCertificateHandler(certificateService).RegisterRoutes(authed)

			announcementHandler := handler.NewAnnouncementHandler(announcementService)
			announcementHandler.RegisterListRoute(authed)

			feedbackHandler := handler.NewFeedbackHandler(feedbackService)
			feedbackHandler.RegisterSubmitRoute(authed)

			// Participant surface: team management and the submission playground.
			authed.Group(func(participant chi.Router) {
				participant.Use(middleware.Require(middleware.ActionManageTeam))
				handler.NewTeamHandler(teamService).RegisterRoutes(participant)
			})
			authed.Group(func(participant chi.Router) {
				participant.Use(middleware.Require(middleware.ActionEditSubmission))
				handler.NewPlaygroundHandler(submissionService).RegisterRoutes(participant)
			})

			// Judge surface
			authed.Group(func(judge chi.Router) {
				judge.Use(middleware.Require(middleware.ActionJudgeSubmissions))
				handler.NewJudgingHandler(submissionService, judgingService).RegisterRoutes(judge)
			})

			// Organizer surface
			authed.Group(func(organizer chi.Router) {
				organizer.Use(middleware.Require(middleware.ActionCreateAnnounce))
				announcementHandler.RegisterCreateRoute(organizer)
			})
			authed.Group(func(organizer chi.Router) {
				organizer.Use(middleware.Require(middleware.ActionViewFeedback))
				feedbackHandler.RegisterListRoute(organizer)
			})
			authed.Group(func(organizer chi.Router) {
				organizer.Use(middleware.Require(middleware.ActionManageContent))
				eventHandler.RegisterContentRoutes(organizer)
			})
		})
	})

	return r
}
