package handler

import (
	"encoding/json"
	"net/http"

	"hackfest_backend/internal/api/middleware"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterSubmitRoute(r chi.Router) {
	r.Post("/feedback", h.submitFeedback)
}

func (h *FeedbackHandler) RegisterListRoute(r chi.Router) {
	r.Get("/feedback", h.listFeedback)
}

func (h *FeedbackHandler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	var req service.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	feedback, err := h.feedbackService.Submit(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, feedback)
}

func (h *FeedbackHandler) listFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedbackService.ListAll(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, feedback)
}
