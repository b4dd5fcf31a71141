package handler

import (
	"encoding/json"
	"net/http"

	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) RegisterListRoute(r chi.Router) {
	r.Get("/announcements", h.listAnnouncements)
}

func (h *AnnouncementHandler) RegisterCreateRoute(r chi.Router) {
	r.Post("/announcements", h.createAnnouncement)
}

func (h *AnnouncementHandler) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.ListAll(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) createAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	announcement, err := h.announcementService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, announcement)
}
