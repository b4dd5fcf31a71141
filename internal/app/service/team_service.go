package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"
	"hackfest_backend/internal/platform/config"

	"github.com/google/uuid"
)

// TeamService owns the membership lifecycle: team creation, join requests,
// invites, leader decisions and exits. All status changes go through the
// transition table in the model package.
type TeamService struct {
	teamRepo  repository.TeamRepository
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
}

func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, eventRepo repository.EventRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo, eventRepo: eventRepo}
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

func generateJoinCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TeamService) CreateTeam(ctx context.Context, userID string, req CreateTeamRequest) (*model.Team, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("team name is required: %w", common.ErrValidation)
	}

	taken, err := s.teamRepo.HasAcceptedMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("participant already belongs to a team: %w", common.ErrConflict)
	}

	team := &model.Team{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		JoinCode: generateJoinCode(),
		LeaderID: userID,
		MaxSize:  config.AppConfig.DefaultTeamMaxSize,
	}
	// The leader's own membership row is born accepted; it never passes
	// through pending.
	leader := &model.TeamMember{
		ID:            uuid.NewString(),
		TeamID:        team.ID,
		ParticipantID: userID,
		Role:          model.MemberRoleLeader,
		Status:        model.MemberAccepted,
	}

	if err := s.teamRepo.CreateTeamWithLeader(ctx, team, leader); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	team.AcceptedCount = 1
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	return s.teamRepo.ListTeams(ctx)
}

// GetMyTeam returns the requester's team. The leader sees every membership row
// including pending join requests; other members see accepted rows only.
func (s *TeamService) GetMyTeam(ctx context.Context, userID string) (*model.Team, error) {
	team, err := s.teamRepo.FindTeamForParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.teamRepo.GetMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID == userID {
		team.Members = members
	} else {
		for _, m := range members {
			if m.Status == model.MemberAccepted {
				team.Members = append(team.Members, m)
			}
		}
	}
	return team, nil
}

// DeleteTeam removes the requester's team; leader only. Memberships, invites,
// the submission and its scores cascade away with it.
func (s *TeamService) DeleteTeam(ctx context.Context, userID string) error {
	team, err := s.teamRepo.FindTeamForParticipant(ctx, userID)
	if err != nil {
		return err
	}
	if team.LeaderID != userID {
		return fmt.Errorf("only the team leader may delete the team: %w", common.ErrForbidden)
	}
	return s.teamRepo.DeleteTeam(ctx, team.ID)
}

// ExitTeam deletes the requester's own accepted membership row. A leader
// cannot exit; deleting the team is the only way out of leadership.
func (s *TeamService) ExitTeam(ctx context.Context, userID string) error {
	team, err := s.teamRepo.FindTeamForParticipant(ctx, userID)
	if err != nil {
		return err
	}
	if team.LeaderID == userID {
		return fmt.Errorf("leader cannot exit; delete the team instead: %w", common.ErrForbidden)
	}
	member, err := s.teamRepo.GetMemberByTeamAndParticipant(ctx, team.ID, userID)
	if err != nil {
		return err
	}
	return s.teamRepo.DeleteMember(ctx, member.ID)
}

// RequestJoin files a pending membership row. The one-accepted-team rule is a
// service-level check, not a storage constraint.
func (s *TeamService) RequestJoin(ctx context.Context, userID, teamID string) (*model.TeamMember, error) {
	taken, err := s.teamRepo.HasAcceptedMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("participant already belongs to a team: %w", common.ErrConflict)
	}

	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.AcceptedCount >= team.MaxSize {
		return nil, fmt.Errorf("team is full: %w", common.ErrConflict)
	}

	member := &model.TeamMember{
		ID:            uuid.NewString(),
		TeamID:        team.ID,
		ParticipantID: userID,
		Role:          model.MemberRoleMember,
		Status:        model.MemberPending,
	}
	// A duplicate (team, participant) pair trips the unique constraint here.
	if err := s.teamRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RespondToJoinRequest lets the team leader accept or decline a pending join
// request. Decline keeps the row as rejected rather than deleting it.
func (s *TeamService) RespondToJoinRequest(ctx context.Context, requesterID, memberID string, accept bool) (*model.TeamMember, error) {
	member, err := s.teamRepo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	team, err := s.teamRepo.FindTeamByID(ctx, member.TeamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != requesterID {
		return nil, fmt.Errorf("only the team leader may decide join requests: %w", common.ErrForbidden)
	}

	next := model.MemberRejected
	if accept {
		next = model.MemberAccepted
	}
	if err := member.Transition(next); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrConflict, err)
	}

	if accept {
		if team.AcceptedCount >= team.MaxSize {
			return nil, fmt.Errorf("team is full: %w", common.ErrConflict)
		}
		// The requester may have been accepted elsewhere while this request
		// sat pending.
		taken, err := s.teamRepo.HasAcceptedMembership(ctx, member.ParticipantID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("participant already belongs to a team: %w", common.ErrConflict)
		}
	}

	if err := s.teamRepo.UpdateMemberStatus(ctx, member.ID, member.Status); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember lets the leader drop an accepted member. The row stays behind
// with status removed.
func (s *TeamService) RemoveMember(ctx context.Context, requesterID, memberID string) error {
	member, err := s.teamRepo.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	team, err := s.teamRepo.FindTeamByID(ctx, member.TeamID)
	if err != nil {
		return err
	}
	if team.LeaderID != requesterID {
		return fmt.Errorf("only the team leader may remove members: %w", common.ErrForbidden)
	}
	if member.ParticipantID == requesterID {
		return fmt.Errorf("leader cannot remove themselves; delete the team instead: %w", common.ErrForbidden)
	}
	if err := member.Transition(model.MemberRemoved); err != nil {
		return fmt.Errorf("%w: %s", common.ErrConflict, err)
	}
	return s.teamRepo.UpdateMemberStatus(ctx, member.ID, member.Status)
}

type InviteRequest struct {
	Email string `json:"email"`
}

func (s *TeamService) InviteByEmail(ctx context.Context, requesterID string, req InviteRequest) (*model.TeamInvite, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("a valid email address is required: %w", common.ErrValidation)
	}
	team, err := s.teamRepo.FindTeamForParticipant(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != requesterID {
		return nil, fmt.Errorf("only the team leader may invite: %w", common.ErrForbidden)
	}

	invite := &model.TeamInvite{
		ID:           uuid.NewString(),
		TeamID:       team.ID,
		InvitedEmail: strings.ToLower(strings.TrimSpace(req.Email)),
		Status:       model.InvitePending,
	}
	if err := s.teamRepo.CreateInvite(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

func (s *TeamService) ListMyInvites(ctx context.Context, userID string) ([]model.TeamInvite, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.teamRepo.ListPendingInvitesForEmail(ctx, strings.ToLower(user.Email))
}

// RespondToInvite accepts or declines an invite addressed to the requester's
// email. Acceptance reconciles against a join-request row for the same pair
// instead of inserting a duplicate.
func (s *TeamService) RespondToInvite(ctx context.Context, userID, inviteID string, accept bool) error {
	invite, err := s.teamRepo.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(invite.InvitedEmail, user.Email) {
		return fmt.Errorf("invite is addressed to a different email: %w", common.ErrForbidden)
	}
	if invite.Status != model.InvitePending {
		return fmt.Errorf("invite already %s: %w", invite.Status, common.ErrConflict)
	}

	if !accept {
		return s.teamRepo.UpdateInviteStatus(ctx, invite.ID, model.InviteDeclined)
	}

	taken, err := s.teamRepo.HasAcceptedMembership(ctx, userID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("participant already belongs to a team: %w", common.ErrConflict)
	}
	team, err := s.teamRepo.FindTeamByID(ctx, invite.TeamID)
	if err != nil {
		return err
	}
	if team.AcceptedCount >= team.MaxSize {
		return fmt.Errorf("team is full: %w", common.ErrConflict)
	}

	existing, err := s.teamRepo.GetMemberByTeamAndParticipant(ctx, team.ID, userID)
	switch {
	case err == nil:
		// A join request for the same team is already on file; promote it.
		if err := existing.Transition(model.MemberAccepted); err != nil {
			return fmt.Errorf("%w: %s", common.ErrConflict, err)
		}
		if err := s.teamRepo.UpdateMemberStatus(ctx, existing.ID, existing.Status); err != nil {
			return err
		}
	case errors.Is(err, common.ErrNotFound):
		member := &model.TeamMember{
			ID:            uuid.NewString(),
			TeamID:        team.ID,
			ParticipantID: userID,
			Role:          model.MemberRoleMember,
			Status:        model.MemberAccepted,
		}
		if err := s.teamRepo.CreateMember(ctx, member); err != nil {
			return err
		}
	default:
		return err
	}

	return s.teamRepo.UpdateInviteStatus(ctx, invite.ID, model.InviteAccepted)
}

// SelectProblem assigns a problem statement to the requester's team. At most
// config.ProblemTeamLimit teams may hold the same problem.
func (s *TeamService) SelectProblem(ctx context.Context, requesterID, problemID string) error {
	team, err := s.teamRepo.FindTeamForParticipant(ctx, requesterID)
	if err != nil {
		return err
	}
	if team.LeaderID != requesterID {
		return fmt.Errorf("only the team leader may select the problem: %w", common.ErrForbidden)
	}
	if _, err := s.eventRepo.FindProblemByID(ctx, problemID); err != nil {
		return err
	}
	return s.teamRepo.SelectProblem(ctx, team.ID, problemID, config.AppConfig.ProblemTeamLimit)
}
