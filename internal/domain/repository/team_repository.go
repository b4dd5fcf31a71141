package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

type TeamRepository interface {
	// CreateTeamWithLeader inserts the team and its accepted leader membership
	// row in one transaction.
	CreateTeamWithLeader(ctx context.Context, team *model.Team, leader *model.TeamMember) error
	FindTeamByID(ctx context.Context, id string) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	// FindTeamForParticipant returns the team where the user holds an accepted
	// membership, or ErrNotFound.
	FindTeamForParticipant(ctx context.Context, participantID string) (*model.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	// SelectProblem assigns the problem unless teamLimit teams already hold it;
	// in that case it returns ErrConflict and changes nothing.
	SelectProblem(ctx context.Context, teamID, problemID string, teamLimit int) error

	CreateMember(ctx context.Context, member *model.TeamMember) error
	GetMember(ctx context.Context, memberID string) (*model.TeamMember, error)
	GetMemberByTeamAndParticipant(ctx context.Context, teamID, participantID string) (*model.TeamMember, error)
	GetMembers(ctx context.Context, teamID string) ([]model.TeamMember, error)
	UpdateMemberStatus(ctx context.Context, memberID string, status model.MemberStatus) error
	DeleteMember(ctx context.Context, memberID string) error
	HasAcceptedMembership(ctx context.Context, participantID string) (bool, error)
	CountAcceptedMembers(ctx context.Context, teamID string) (int, error)

	CreateInvite(ctx context.Context, invite *model.TeamInvite) error
	GetInvite(ctx context.Context, inviteID string) (*model.TeamInvite, error)
	ListPendingInvitesForEmail(ctx context.Context, email string) ([]model.TeamInvite, error)
	UpdateInviteStatus(ctx context.Context, inviteID string, status model.InviteStatus) error
}

type pgTeamRepository struct {
	db *sql.DB
}

func NewPgTeamRepository(db *sql.DB) TeamRepository {
	return &pgTeamRepository{db: db}
}

func (r *pgTeamRepository) CreateTeamWithLeader(ctx context.Context, team *model.Team, leader *model.TeamMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.CreateTeamWithLeader begin: %w", err)
	}
	defer tx.Rollback()

	teamQuery := `INSERT INTO teams (id, name, join_code, leader_id, max_size)
	              VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, teamQuery, team.ID, team.Name, team.JoinCode, team.LeaderID, team.MaxSize); err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("team join code collision: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.CreateTeamWithLeader team: %w", err)
	}

	memberQuery := `INSERT INTO team_members (id, team_id, participant_id, role, status)
	                VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, memberQuery, leader.ID, leader.TeamID, leader.ParticipantID, leader.Role, leader.Status); err != nil {
		return fmt.Errorf("pgTeamRepository.CreateTeamWithLeader leader row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgTeamRepository.CreateTeamWithLeader commit: %w", err)
	}
	return nil
}

const teamSelect = `
	SELECT t.id, t.name, t.join_code, t.leader_id, t.problem_id, t.max_size, t.created_at,
	       u.username AS leader_username, p.title AS problem_title,
	       (SELECT COUNT(*) FROM team_members m WHERE m.team_id = t.id AND m.status = 'accepted') AS accepted_count
	FROM teams t
	JOIN users u ON u.id = t.leader_id
	LEFT JOIN problem_statements p ON p.id = t.problem_id`

func scanTeam(row interface{ Scan(...interface{}) error }) (*model.Team, error) {
	team := &model.Team{}
	err := row.Scan(
		&team.ID, &team.Name, &team.JoinCode, &team.LeaderID, &team.ProblemID,
		&team.MaxSize, &team.CreatedAt, &team.LeaderUsername, &team.ProblemTitle,
		&team.AcceptedCount,
	)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *pgTeamRepository) FindTeamByID(ctx context.Context, id string) (*model.Team, error) {
	query := teamSelect + ` WHERE t.id = $1`
	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.FindTeamByID: %w", err)
	}
	return team, nil
}

func (r *pgTeamRepository) ListTeams(ctx context.Context) ([]model.Team, error) {
	query := teamSelect + ` ORDER BY t.created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListTeams: %w", err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("pgTeamRepository.ListTeams scan: %w", err)
		}
		teams = append(teams, *team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListTeams rows.Err: %w", err)
	}
	return teams, nil
}

func (r *pgTeamRepository) FindTeamForParticipant(ctx context.Context, participantID string) (*model.Team, error) {
	query := teamSelect + `
	JOIN team_members tm ON tm.team_id = t.id
	WHERE tm.participant_id = $1 AND tm.status = 'accepted'`
	team, err := scanTeam(r.db.QueryRowContext(ctx, query, participantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.FindTeamForParticipant: %w", err)
	}
	return team, nil
}

func (r *pgTeamRepository) DeleteTeam(ctx context.Context, id string) error {
	// Members, invites, submission and its scores go with it via FK cascades.
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.DeleteTeam: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTeamRepository) SelectProblem(ctx context.Context, teamID, problemID string, teamLimit int) error {
	// The capacity check and the assignment happen in one statement so two
	// teams racing for the last slot cannot both win.
	query := `UPDATE teams SET problem_id = $1
	          WHERE id = $2
	            AND (SELECT COUNT(*) FROM teams WHERE problem_id = $1 AND id <> $2) < $3`
	result, err := r.db.ExecContext(ctx, query, problemID, teamID, teamLimit)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.SelectProblem: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("problem statement already held by the maximum number of teams: %w", common.ErrConflict)
	}
	return nil
}

func (r *pgTeamRepository) CreateMember(ctx context.Context, member *model.TeamMember) error {
	query := `INSERT INTO team_members (id, team_id, participant_id, role, status)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, member.ID, member.TeamID, member.ParticipantID, member.Role, member.Status)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("membership row already exists for this team and participant: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.CreateMember: %w", err)
	}
	return nil
}

const memberSelect = `
	SELECT m.id, m.team_id, m.participant_id, m.role, m.status, m.joined_at, u.username
	FROM team_members m
	JOIN users u ON u.id = m.participant_id`

func scanMember(row interface{ Scan(...interface{}) error }) (*model.TeamMember, error) {
	member := &model.TeamMember{}
	err := row.Scan(
		&member.ID, &member.TeamID, &member.ParticipantID, &member.Role,
		&member.Status, &member.JoinedAt, &member.ParticipantUsername,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *pgTeamRepository) GetMember(ctx context.Context, memberID string) (*model.TeamMember, error) {
	query := memberSelect + ` WHERE m.id = $1`
	member, err := scanMember(r.db.QueryRowContext(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.GetMember: %w", err)
	}
	return member, nil
}

func (r *pgTeamRepository) GetMemberByTeamAndParticipant(ctx context.Context, teamID, participantID string) (*model.TeamMember, error) {
	query := memberSelect + ` WHERE m.team_id = $1 AND m.participant_id = $2`
	member, err := scanMember(r.db.QueryRowContext(ctx, query, teamID, participantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.GetMemberByTeamAndParticipant: %w", err)
	}
	return member, nil
}

func (r *pgTeamRepository) GetMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	query := memberSelect + ` WHERE m.team_id = $1 ORDER BY m.joined_at`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.GetMembers: %w", err)
	}
	defer rows.Close()

	var members []model.TeamMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("pgTeamRepository.GetMembers scan: %w", err)
		}
		members = append(members, *member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeamRepository.GetMembers rows.Err: %w", err)
	}
	return members, nil
}

func (r *pgTeamRepository) UpdateMemberStatus(ctx context.Context, memberID string, status model.MemberStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE team_members SET status = $1 WHERE id = $2`, status, memberID)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.UpdateMemberStatus: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTeamRepository) DeleteMember(ctx context.Context, memberID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.DeleteMember: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTeamRepository) HasAcceptedMembership(ctx context.Context, participantID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM team_members WHERE participant_id = $1 AND status = 'accepted')`
	if err := r.db.QueryRowContext(ctx, query, participantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgTeamRepository.HasAcceptedMembership: %w", err)
	}
	return exists, nil
}

func (r *pgTeamRepository) CountAcceptedMembers(ctx context.Context, teamID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND status = 'accepted'`
	if err := r.db.QueryRowContext(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgTeamRepository.CountAcceptedMembers: %w", err)
	}
	return count, nil
}

func (r *pgTeamRepository) CreateInvite(ctx context.Context, invite *model.TeamInvite) error {
	query := `INSERT INTO team_invites (id, team_id, invited_email, status)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, invite.ID, invite.TeamID, invite.InvitedEmail, invite.Status)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.CreateInvite: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) GetInvite(ctx context.Context, inviteID string) (*model.TeamInvite, error) {
	query := `SELECT i.id, i.team_id, i.invited_email, i.status, i.invited_at, t.name
	          FROM team_invites i
	          JOIN teams t ON t.id = i.team_id
	          WHERE i.id = $1`
	invite := &model.TeamInvite{}
	err := r.db.QueryRowContext(ctx, query, inviteID).Scan(
		&invite.ID, &invite.TeamID, &invite.InvitedEmail, &invite.Status, &invite.InvitedAt, &invite.TeamName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.GetInvite: %w", err)
	}
	return invite, nil
}

func (r *pgTeamRepository) ListPendingInvitesForEmail(ctx context.Context, email string) ([]model.TeamInvite, error) {
	query := `SELECT i.id, i.team_id, i.invited_email, i.status, i.invited_at, t.name
	          FROM team_invites i
	          JOIN teams t ON t.id = i.team_id
	          WHERE i.invited_email = $1 AND i.status = 'pending'
	          ORDER BY i.invited_at`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListPendingInvitesForEmail: %w", err)
	}
	defer rows.Close()

	var invites []model.TeamInvite
	for rows.Next() {
		invite := model.TeamInvite{}
		if err := rows.Scan(&invite.ID, &invite.TeamID, &invite.InvitedEmail, &invite.Status, &invite.InvitedAt, &invite.TeamName); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.ListPendingInvitesForEmail scan: %w", err)
		}
		invites = append(invites, invite)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListPendingInvitesForEmail rows.Err: %w", err)
	}
	return invites, nil
}

func (r *pgTeamRepository) UpdateInviteStatus(ctx context.Context, inviteID string, status model.InviteStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE team_invites SET status = $1 WHERE id = $2`, status, inviteID)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.UpdateInviteStatus: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
