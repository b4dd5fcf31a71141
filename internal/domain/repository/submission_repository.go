package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	FindByTeamID(ctx context.Context, teamID string) (*model.Submission, error)
	Update(ctx context.Context, submission *model.Submission) error
	SetPlanPath(ctx context.Context, id, planPath string) error
	ListAll(ctx context.Context) ([]model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionSelect = `
	SELECT s.id, s.team_id, s.problem_id, s.project_title, s.ideation_text,
	       s.plan_path, s.repo_link, s.demo_link, s.submitted_at, s.updated_at,
	       t.name AS team_name, p.title AS problem_title
	FROM submissions s
	JOIN teams t ON t.id = s.team_id
	LEFT JOIN problem_statements p ON p.id = s.problem_id`

func scanSubmission(row interface{ Scan(...interface{}) error }) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(
		&s.ID, &s.TeamID, &s.ProblemID, &s.ProjectTitle, &s.IdeationText,
		&s.PlanPath, &s.RepoLink, &s.DemoLink, &s.SubmittedAt, &s.UpdatedAt,
		&s.TeamName, &s.ProblemTitle,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgSubmissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	query := `INSERT INTO submissions (id, team_id, problem_id, project_title, ideation_text, repo_link, demo_link)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		submission.ID, submission.TeamID, submission.ProblemID, submission.ProjectTitle,
		submission.IdeationText, submission.RepoLink, submission.DemoLink,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("submission already exists for this team: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	query := submissionSelect + ` WHERE s.id = $1`
	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return submission, nil
}

func (r *pgSubmissionRepository) FindByTeamID(ctx context.Context, teamID string) (*model.Submission, error) {
	query := submissionSelect + ` WHERE s.team_id = $1`
	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByTeamID: %w", err)
	}
	return submission, nil
}

func (r *pgSubmissionRepository) Update(ctx context.Context, submission *model.Submission) error {
	query := `UPDATE submissions SET
	            project_title = $1, ideation_text = $2, repo_link = $3, demo_link = $4,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		submission.ProjectTitle, submission.IdeationText, submission.RepoLink, submission.DemoLink, submission.ID,
	)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSubmissionRepository) SetPlanPath(ctx context.Context, id, planPath string) error {
	query := `UPDATE submissions SET plan_path = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, planPath, id)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.SetPlanPath: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSubmissionRepository) ListAll(ctx context.Context) ([]model.Submission, error) {
	query := submissionSelect + ` ORDER BY s.submitted_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListAll scan: %w", err)
		}
		submissions = append(submissions, *submission)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListAll rows.Err: %w", err)
	}
	return submissions, nil
}
