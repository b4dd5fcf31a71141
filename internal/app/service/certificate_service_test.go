package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/platform/config"
)

func newCertificateServiceForTest(t *testing.T) (*CertificateService, *fakeCertificateRepo, *fakeTeamRepo, *fakeUserRepo, *recordingRenderer) {
	t.Helper()
	certificateRepo := newFakeCertificateRepo()
	teamRepo := newFakeTeamRepo()
	userRepo := newFakeUserRepo()
	renderer := &recordingRenderer{}
	svc := NewCertificateService(certificateRepo, teamRepo, userRepo, renderer, nil)
	return svc, certificateRepo, teamRepo, userRepo, renderer
}

func TestIssueForTeam(t *testing.T) {
	svc, certificateRepo, teamRepo, userRepo, renderer := newCertificateServiceForTest(t)
	ctx := context.Background()

	fullName := "Dana Iyer"
	if err := userRepo.Create(ctx, nil, &model.User{ID: "u1", Username: "dana", Email: "dana@example.com", Role: model.RoleParticipant, FullName: &fullName}); err != nil {
		t.Fatalf("seed dana: %v", err)
	}
	if err := userRepo.Create(ctx, nil, &model.User{ID: "u2", Username: "eli", Email: "eli@example.com", Role: model.RoleParticipant}); err != nil {
		t.Fatalf("seed eli: %v", err)
	}
	seedTeam(t, teamRepo, "team-1", "u1")
	members := []model.TeamMember{
		{ID: "m2", TeamID: "team-1", ParticipantID: "u2", Role: model.MemberRoleMember, Status: model.MemberAccepted},
		{ID: "m3", TeamID: "team-1", ParticipantID: "u3", Role: model.MemberRoleMember, Status: model.MemberPending},
	}
	for i := range members {
		if err := teamRepo.CreateMember(ctx, &members[i]); err != nil {
			t.Fatalf("seed member: %v", err)
		}
	}

	if err := svc.IssueForTeam(ctx, "team-1"); err != nil {
		t.Fatalf("IssueForTeam: %v", err)
	}

	// Accepted members only; the pending row gets nothing.
	if len(certificateRepo.byUser) != 2 {
		t.Fatalf("got %d certificates, want 2", len(certificateRepo.byUser))
	}
	if _, ok := certificateRepo.byUser["u3"]; ok {
		t.Error("pending member got a certificate")
	}

	// The full name goes on the certificate when set, else the username.
	if len(renderer.rendered) != 2 {
		t.Fatalf("rendered %d certificates, want 2", len(renderer.rendered))
	}
	names := map[string]bool{}
	for _, name := range renderer.rendered {
		names[name] = true
	}
	if !names["Dana Iyer"] || !names["eli"] {
		t.Errorf("rendered names = %v", renderer.rendered)
	}
}

func TestIssueForTeamIsIdempotent(t *testing.T) {
	svc, certificateRepo, teamRepo, userRepo, renderer := newCertificateServiceForTest(t)
	ctx := context.Background()

	if err := userRepo.Create(ctx, nil, &model.User{ID: "u1", Username: "dana", Email: "dana@example.com", Role: model.RoleParticipant}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	seedTeam(t, teamRepo, "team-1", "u1")

	if err := svc.IssueForTeam(ctx, "team-1"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.IssueForTeam(ctx, "team-1"); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(certificateRepo.byUser) != 1 {
		t.Errorf("got %d certificates, want 1", len(certificateRepo.byUser))
	}
	// The second run does not re-render.
	if len(renderer.rendered) != 1 {
		t.Errorf("rendered %d times, want 1", len(renderer.rendered))
	}
}

func TestGetForUserHonorsUnlockTime(t *testing.T) {
	svc, certificateRepo, _, _, _ := newCertificateServiceForTest(t)
	ctx := context.Background()

	if err := certificateRepo.Create(ctx, &model.Certificate{ID: "c1", UserID: "u1", FilePath: "certificates/certificate_dana.png"}); err != nil {
		t.Fatalf("seed certificate: %v", err)
	}

	config.AppConfig.CertificateUnlockAt = time.Now().Add(time.Hour)
	defer func() { config.AppConfig.CertificateUnlockAt = time.Time{} }()

	if _, err := svc.GetForUser(ctx, "u1"); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("locked err = %v, want ErrForbidden", err)
	}

	config.AppConfig.CertificateUnlockAt = time.Now().Add(-time.Hour)
	cert, err := svc.GetForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("unlocked: %v", err)
	}
	if cert.FilePath != "certificates/certificate_dana.png" {
		t.Errorf("file path = %q", cert.FilePath)
	}

	// No certificate yet stays a plain not-found.
	if _, err := svc.GetForUser(ctx, "u2"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
}
