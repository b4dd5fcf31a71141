package handler

import (
	"encoding/json"
	"net/http"

	"hackfest_backend/internal/api/middleware"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) RegisterRoutes(r chi.Router) {
	r.Get("/teams", h.listTeams)
	r.Post("/teams", h.createTeam)
	r.Get("/teams/me", h.getMyTeam)
	r.Delete("/teams/me", h.deleteTeam)
	r.Post("/teams/me/exit", h.exitTeam)
	r.Post("/teams/me/invites", h.inviteByEmail)
	r.Post("/teams/me/problem/{problemID}", h.selectProblem)
	r.Get("/teams/invites", h.listMyInvites)
	r.Post("/teams/invites/{inviteID}/accept", h.acceptInvite)
	r.Post("/teams/invites/{inviteID}/decline", h.declineInvite)
	r.Post("/teams/requests/{memberID}/accept", h.acceptJoinRequest)
	r.Post("/teams/requests/{memberID}/decline", h.declineJoinRequest)
	r.Delete("/teams/members/{memberID}", h.removeMember)
	r.Post("/teams/{teamID}/join", h.requestJoin)
}

func (h *TeamHandler) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) createTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	var req service.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	team, err := h.teamService.CreateTeam(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) getMyTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	team, err := h.teamService.GetMyTeam(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	if err := h.teamService.DeleteTeam(r.Context(), userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *TeamHandler) exitTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	if err := h.teamService.ExitTeam(r.Context(), userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *TeamHandler) requestJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	teamID := chi.URLParam(r, "teamID")
	member, err := h.teamService.RequestJoin(r.Context(), userID, teamID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, member)
}

func (h *TeamHandler) acceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.respondToJoinRequest(w, r, true)
}

func (h *TeamHandler) declineJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.respondToJoinRequest(w, r, false)
}

func (h *TeamHandler) respondToJoinRequest(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	memberID := chi.URLParam(r, "memberID")
	member, err := h.teamService.RespondToJoinRequest(r.Context(), userID, memberID, accept)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, member)
}

func (h *TeamHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	memberID := chi.URLParam(r, "memberID")
	if err := h.teamService.RemoveMember(r.Context(), userID, memberID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *TeamHandler) inviteByEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	var req service.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	invite, err := h.teamService.InviteByEmail(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, invite)
}

func (h *TeamHandler) listMyInvites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	invites, err := h.teamService.ListMyInvites(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, invites)
}

func (h *TeamHandler) acceptInvite(w http.ResponseWriter, r *http.Request) {
	h.respondToInvite(w, r, true)
}

func (h *TeamHandler) declineInvite(w http.ResponseWriter, r *http.Request) {
	h.respondToInvite(w, r, false)
}

func (h *TeamHandler) respondToInvite(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	inviteID := chi.URLParam(r, "inviteID")
	if err := h.teamService.RespondToInvite(r.Context(), userID, inviteID, accept); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Invite updated"})
}

func (h *TeamHandler) selectProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	problemID := chi.URLParam(r, "problemID")
	if err := h.teamService.SelectProblem(r.Context(), userID, problemID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Problem selected"})
}
