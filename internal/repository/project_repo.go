package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p model.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, title, description, status, assignee_ids, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Title, p.Description, p.Status, p.AssigneeIDs, p.DueDate, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, status, assignee_ids, due_date,
		        created_at, updated_at, deleted_at, deleted_by
		 FROM projects WHERE id::text = $1 AND deleted_at IS NULL`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.AssigneeIDs, &p.DueDate,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt, &p.DeletedBy)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, model.ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context, vis Visibility) ([]model.Project, error) {
	query := `SELECT id, title, description, status, assignee_ids, due_date,
	                 created_at, updated_at, deleted_at, deleted_by
	          FROM projects` + vis.whereClause() + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.AssigneeIDs, &p.DueDate,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt, &p.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET title = $2, description = $3, status = $4, updated_at = $5
		 WHERE id::text = $1 AND deleted_at IS NULL`,
		p.ID, p.Title, p.Description, p.Status, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// LiveTaskIDs lists the live tasks a project delete must cascade over.
func (r *ProjectRepository) LiveTaskIDs(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM tasks WHERE project_id::text = $1 AND deleted_at IS NULL ORDER BY created_at`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list project task ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
