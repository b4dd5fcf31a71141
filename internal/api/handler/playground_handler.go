package handler

import (
	"encoding/json"
	"net/http"

	"hackfest_backend/internal/api/middleware"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"
	"hackfest_backend/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type PlaygroundHandler struct {
	submissionService *service.SubmissionService
}

func NewPlaygroundHandler(submissionService *service.SubmissionService) *PlaygroundHandler {
	return &PlaygroundHandler{submissionService: submissionService}
}

func (h *PlaygroundHandler) RegisterRoutes(r chi.Router) {
	r.Get("/playground", h.getPlayground)
	r.Put("/playground", h.updatePlayground)
	r.Post("/playground/plan", h.uploadPlan)
}

func (h *PlaygroundHandler) getPlayground(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	submission, err := h.submissionService.GetOrCreateForParticipant(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}

func (h *PlaygroundHandler) updatePlayground(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	var req service.UpdateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	submission, err := h.submissionService.UpdateForParticipant(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}

func (h *PlaygroundHandler) uploadPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	if err := r.ParseMultipartForm(config.AppConfig.PlanMaxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("plan")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing 'plan' file field")
		return
	}
	defer file.Close()

	submission, err := h.submissionService.SavePlan(r.Context(), userID, file, header)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
