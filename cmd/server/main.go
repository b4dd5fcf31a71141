package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackfest_backend/internal/api"
	"hackfest_backend/internal/app/event"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/app/worker"
	"hackfest_backend/internal/common/security"
	"hackfest_backend/internal/domain/repository"
	"hackfest_backend/internal/platform/config"
	"hackfest_backend/internal/platform/database"
	"hackfest_backend/internal/platform/queue"
	"hackfest_backend/internal/platform/render"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.CreateSchema(database.DB); err != nil {
		log.Fatalf("Could not create schema: %v", err)
	}
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	teamRepo := repository.NewPgTeamRepository(database.DB)
	eventRepo := repository.NewPgEventRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	judgingRepo := repository.NewPgJudgingRepository(database.DB)
	announcementRepo := repository.NewPgAnnouncementRepository(database.DB)
	notificationRepo := repository.NewPgNotificationRepository(database.DB)
	certificateRepo := repository.NewPgCertificateRepository(database.DB)
	feedbackRepo := repository.NewPgFeedbackRepository(database.DB)

	// 6. Event Bus
	bus := event.NewBus()

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	profileService := service.NewProfileService(userRepo)
	eventService := service.NewEventService(eventRepo)
	teamService := service.NewTeamService(teamRepo, userRepo, eventRepo)
	submissionService := service.NewSubmissionService(submissionRepo, teamRepo, bus)
	judgingService := service.NewJudgingService(judgingRepo, submissionRepo)
	announcementService := service.NewAnnouncementService(announcementRepo, bus)
	notificationService := service.NewNotificationService(notificationRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	renderer := render.NewTemplateRenderer(config.AppConfig.CertificateTemplatePath, config.AppConfig.CertificateFontPath)
	certificateService := service.NewCertificateService(certificateRepo, teamRepo, userRepo, renderer, queue.RDB)

	// 8. Wire post-commit event handlers
	service.RegisterNotificationFanOut(bus, notificationRepo)
	certificateService.RegisterSubmissionHook(bus)

	// 9. Certificate worker (as a goroutine)
	certificateWorker := worker.NewCertificateWorker(queue.RDB, certificateService)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go certificateWorker.Start(workerCtx)
	fmt.Println("Certificate worker started.")

	// 10. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService,
		profileService,
		eventService,
		teamService,
		submissionService,
		judgingService,
		announcementService,
		notificationService,
		feedbackService,
		certificateService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 11. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
