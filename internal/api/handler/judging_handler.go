package handler

import (
	"encoding/json"
	"net/http"

	"hackfest_backend/internal/api/middleware"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type JudgingHandler struct {
	submissionService *service.SubmissionService
	judgingService    *service.JudgingService
}

func NewJudgingHandler(submissionService *service.SubmissionService, judgingService *service.JudgingService) *JudgingHandler {
	return &JudgingHandler{submissionService: submissionService, judgingService: judgingService}
}

func (h *JudgingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/submissions", h.listSubmissions)
	r.Get("/submissions/{submissionID}/score", h.getScore)
	r.Put("/submissions/{submissionID}/score", h.submitScore)
}

func (h *JudgingHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.ListAll(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *JudgingHandler) getScore(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	submissionID := chi.URLParam(r, "submissionID")
	score, err := h.judgingService.GetOrCreateScore(r.Context(), judgeID, submissionID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, score)
}

func (h *JudgingHandler) submitScore(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	submissionID := chi.URLParam(r, "submissionID")
	var req service.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	score, err := h.judgingService.SubmitScore(r.Context(), judgeID, submissionID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, score)
}
