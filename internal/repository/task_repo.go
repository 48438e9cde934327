package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t model.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, project_id, title, description, status, assignee_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.AssigneeID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, title, description, status, assignee_id,
		        created_at, updated_at, deleted_at, deleted_by
		 FROM tasks WHERE id::text = $1 AND deleted_at IS NULL`, id).
		Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssigneeID,
			&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt, &t.DeletedBy)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, model.ErrTaskNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("find task by id: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string, vis Visibility) ([]model.Task, error) {
	query := `SELECT id, project_id, title, description, status, assignee_id,
	                 created_at, updated_at, deleted_at, deleted_by
	          FROM tasks WHERE project_id::text = $1` + vis.andClause() + ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssigneeID,
			&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt, &t.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t model.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $2, description = $3, status = $4, assignee_id = $5, updated_at = $6
		 WHERE id::text = $1 AND deleted_at IS NULL`,
		t.ID, t.Title, t.Description, t.Status, t.AssigneeID, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}
