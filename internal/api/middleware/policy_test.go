package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackfest_backend/internal/domain/model"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role   string
		action Action
		want   bool
	}{
		{model.RoleParticipant, ActionManageTeam, true},
		{model.RoleParticipant, ActionEditSubmission, true},
		{model.RoleParticipant, ActionJudgeSubmissions, false},
		{model.RoleParticipant, ActionCreateAnnounce, false},
		{model.RoleJudge, ActionJudgeSubmissions, true},
		{model.RoleJudge, ActionManageTeam, false},
		{model.RoleOrganizer, ActionCreateAnnounce, true},
		{model.RoleOrganizer, ActionViewFeedback, true},
		{model.RoleOrganizer, ActionManageContent, true},
		{model.RoleOrganizer, ActionEditSubmission, false},
		{model.RoleAdmin, ActionCreateAnnounce, true},
		{model.RoleAdmin, ActionJudgeSubmissions, false},
		{model.RoleVolunteer, ActionManageTeam, false},
		{"", ActionManageTeam, false},
	}

	for _, c := range cases {
		if got := Allowed(c.role, c.action); got != c.want {
			t.Errorf("Allowed(%q, %s) = %v, want %v", c.role, c.action, got, c.want)
		}
	}
}

func TestRequireMiddleware(t *testing.T) {
	handler := Require(ActionJudgeSubmissions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name string
		role string
		want int
	}{
		{"judge passes", model.RoleJudge, http.StatusOK},
		{"participant blocked", model.RoleParticipant, http.StatusForbidden},
		{"missing role blocked", "", http.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/submissions", nil)
			if c.role != "" {
				ctx := context.WithValue(req.Context(), UserRoleCtxKey, c.role)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}
