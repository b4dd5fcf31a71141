package service

import (
	"context"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/common/security"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"
)

type ProfileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// UpdateProfileRequest covers account and profile edits in one payload;
// absent fields are left unchanged.
type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	RollNumber  *string `json:"roll_number,omitempty"`
	About       *string `json:"about,omitempty"`
	Branch      *string `json:"branch,omitempty"`
	YearOfStudy *int    `json:"year_of_study,omitempty"`
	Linkedin    *string `json:"linkedin,omitempty"`
	Github      *string `json:"github,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("email cannot be empty: %w", common.ErrValidation)
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.RollNumber != nil {
		user.RollNumber = req.RollNumber
	}
	if req.About != nil {
		user.About = req.About
	}
	if req.Branch != nil {
		user.Branch = req.Branch
	}
	if req.YearOfStudy != nil {
		user.YearOfStudy = req.YearOfStudy
	}
	if req.Linkedin != nil {
		user.Linkedin = req.Linkedin
	}
	if req.Github != nil {
		user.Github = req.Github
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("old and new password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !security.CheckPasswordHash(req.OldPassword, user.HashedPassword) {
		return fmt.Errorf("old password does not match: %w", common.ErrUnauthorized)
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}
