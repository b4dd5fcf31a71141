package service

import (
	"context"
	"errors"
	"testing"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

func TestSignupAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret123",
		FullName: "Dana Iyer",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if resp.Token == "" {
		t.Error("signup returned no token")
	}
	// Self-service signup is participant-only.
	if resp.User.Role != model.RoleParticipant {
		t.Errorf("role = %q, want participant", resp.User.Role)
	}
	if resp.User.HashedPassword != "" {
		t.Error("hashed password leaked in response")
	}

	// Login works by email and by username.
	for _, field := range []string{"dana@example.com", "dana"} {
		got, err := svc.Login(ctx, LoginRequest{LoginField: field, Password: "secret123"})
		if err != nil {
			t.Fatalf("Login via %q: %v", field, err)
		}
		if got.User.ID != resp.User.ID {
			t.Errorf("login via %q returned user %s", field, got.User.ID)
		}
	}
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Username: "dana", Email: "dana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// Unknown user and wrong password both come back as the same error.
	if _, err := svc.Login(ctx, LoginRequest{LoginField: "nobody", Password: "secret123"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("unknown user err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{LoginField: "dana", Password: "wrong"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("wrong password err = %v, want ErrUnauthorized", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Username: "dana", Email: "dana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupRequest{Username: "dana", Email: "other@example.com", Password: "secret123"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("duplicate signup err = %v, want ErrConflict", err)
	}
}
