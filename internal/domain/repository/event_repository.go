package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

// EventRepository serves the public landing-page data: schedule, problem
// statements, organizers, FAQs and resource links.
type EventRepository interface {
	ListScheduleItems(ctx context.Context) ([]model.ScheduleItem, error)
	CreateProblem(ctx context.Context, problem *model.ProblemStatement) error
	ListProblemStatements(ctx context.Context) ([]model.ProblemStatement, error)
	FindProblemByID(ctx context.Context, id string) (*model.ProblemStatement, error)
	ListOrganizers(ctx context.Context) ([]model.Organizer, error)
	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	ListResources(ctx context.Context) ([]model.Resource, error)
}

type pgEventRepository struct {
	db *sql.DB
}

func NewPgEventRepository(db *sql.DB) EventRepository {
	return &pgEventRepository{db: db}
}

func (r *pgEventRepository) ListScheduleItems(ctx context.Context) ([]model.ScheduleItem, error) {
	query := `SELECT id, day, start_time, end_time, time_display_override, title, details
	          FROM schedule_items ORDER BY day, start_time`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListScheduleItems: %w", err)
	}
	defer rows.Close()

	var items []model.ScheduleItem
	for rows.Next() {
		item := model.ScheduleItem{}
		if err := rows.Scan(&item.ID, &item.Day, &item.StartTime, &item.EndTime, &item.TimeDisplayOverride, &item.Title, &item.Details); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListScheduleItems scan: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListScheduleItems rows.Err: %w", err)
	}
	return items, nil
}

func (r *pgEventRepository) CreateProblem(ctx context.Context, problem *model.ProblemStatement) error {
	query := `INSERT INTO problem_statements (id, title, slug, description) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, problem.ID, problem.Title, problem.Slug, problem.Description)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("problem slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgEventRepository.CreateProblem: %w", err)
	}
	return nil
}

func (r *pgEventRepository) ListProblemStatements(ctx context.Context) ([]model.ProblemStatement, error) {
	query := `SELECT p.id, p.title, p.slug, p.description,
	                 (SELECT COUNT(*) FROM teams t WHERE t.problem_id = p.id) AS teams_working
	          FROM problem_statements p ORDER BY p.title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListProblemStatements: %w", err)
	}
	defer rows.Close()

	var problems []model.ProblemStatement
	for rows.Next() {
		p := model.ProblemStatement{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.TeamsWorking); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListProblemStatements scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListProblemStatements rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgEventRepository) FindProblemByID(ctx context.Context, id string) (*model.ProblemStatement, error) {
	query := `SELECT p.id, p.title, p.slug, p.description,
	                 (SELECT COUNT(*) FROM teams t WHERE t.problem_id = p.id) AS teams_working
	          FROM problem_statements p WHERE p.id = $1`
	p := &model.ProblemStatement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.TeamsWorking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEventRepository.FindProblemByID: %w", err)
	}
	return p, nil
}

func (r *pgEventRepository) ListOrganizers(ctx context.Context) ([]model.Organizer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, role_designation, contact_info FROM organizers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListOrganizers: %w", err)
	}
	defer rows.Close()

	var organizers []model.Organizer
	for rows.Next() {
		o := model.Organizer{}
		if err := rows.Scan(&o.ID, &o.Name, &o.RoleDesignation, &o.ContactInfo); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListOrganizers scan: %w", err)
		}
		organizers = append(organizers, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListOrganizers rows.Err: %w", err)
	}
	return organizers, nil
}

func (r *pgEventRepository) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, question, answer FROM faqs ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListFAQs: %w", err)
	}
	defer rows.Close()

	var faqs []model.FAQ
	for rows.Next() {
		f := model.FAQ{}
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListFAQs scan: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListFAQs rows.Err: %w", err)
	}
	return faqs, nil
}

func (r *pgEventRepository) ListResources(ctx context.Context) ([]model.Resource, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, file_link FROM resources ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListResources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		res := model.Resource{}
		if err := rows.Scan(&res.ID, &res.Title, &res.FileLink); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListResources scan: %w", err)
		}
		resources = append(resources, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListResources rows.Err: %w", err)
	}
	return resources, nil
}
