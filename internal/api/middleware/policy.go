package middleware

import (
	"net/http"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

// Action names a guarded capability. Every role-gated route declares exactly
// one action and routes through Require, so the whole authorization policy
// lives in the table below instead of ad-hoc role checks per handler.
type Action string

const (
	ActionManageTeam       Action = "team.manage"
	ActionEditSubmission   Action = "submission.edit"
	ActionJudgeSubmissions Action = "submission.judge"
	ActionCreateAnnounce   Action = "announcement.create"
	ActionViewFeedback     Action = "feedback.view"
	ActionManageContent    Action = "content.manage"
)

var policy = map[Action][]string{
	ActionManageTeam:       {model.RoleParticipant},
	ActionEditSubmission:   {model.RoleParticipant},
	ActionJudgeSubmissions: {model.RoleJudge},
	ActionCreateAnnounce:   {model.RoleOrganizer, model.RoleAdmin},
	ActionViewFeedback:     {model.RoleOrganizer, model.RoleAdmin},
	ActionManageContent:    {model.RoleOrganizer, model.RoleAdmin},
}

// Allowed is the single policy decision point: (role, action) -> allow/deny.
func Allowed(role string, action Action) bool {
	for _, allowed := range policy[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Require denies the request unless the authenticated role may perform action.
// Must sit behind Authenticator.
func Require(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRoleFromContext(r.Context())
			if !ok || !Allowed(role, action) {
				common.RespondWithError(w, http.StatusForbidden, "Role not permitted for this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
