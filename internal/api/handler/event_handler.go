package handler

import (
	"encoding/json"
	"net/http"

	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/event", h.getLandingPage)
}

func (h *EventHandler) RegisterContentRoutes(r chi.Router) {
	r.Post("/problems", h.createProblem)
}

func (h *EventHandler) getLandingPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.eventService.GetLandingPage(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *EventHandler) createProblem(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	problem, err := h.eventService.CreateProblem(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, problem)
}
