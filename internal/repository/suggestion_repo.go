package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

type SuggestionRepository struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepository(pool *pgxpool.Pool) *SuggestionRepository {
	return &SuggestionRepository{pool: pool}
}

func (r *SuggestionRepository) Create(ctx context.Context, s model.Suggestion) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO suggestions (id, title, description, category, submitted_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Title, s.Description, s.Category, s.SubmittedBy, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create suggestion: %w", err)
	}
	return nil
}

func (r *SuggestionRepository) FindByID(ctx context.Context, id string) (model.Suggestion, error) {
	var s model.Suggestion
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, category, submitted_by,
		        created_at, updated_at, deleted_at, deleted_by
		 FROM suggestions WHERE id::text = $1 AND deleted_at IS NULL`, id).
		Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.SubmittedBy,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.DeletedBy)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Suggestion{}, model.ErrSuggestionNotFound
	}
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("find suggestion by id: %w", err)
	}
	return s, nil
}

func (r *SuggestionRepository) List(ctx context.Context, vis Visibility) ([]model.Suggestion, error) {
	query := `SELECT id, title, description, category, submitted_by,
	                 created_at, updated_at, deleted_at, deleted_by
	          FROM suggestions` + vis.whereClause() + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := make([]model.Suggestion, 0)
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.SubmittedBy,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

func (r *SuggestionRepository) CreateResponse(ctx context.Context, resp model.SuggestionResponse) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO suggestion_responses (id, suggestion_id, message, responded_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		resp.ID, resp.SuggestionID, resp.Message, resp.RespondedBy, resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("create suggestion response: %w", err)
	}
	return nil
}

func (r *SuggestionRepository) ListResponses(ctx context.Context, suggestionID string, vis Visibility) ([]model.SuggestionResponse, error) {
	query := `SELECT id, suggestion_id, message, responded_by, created_at, deleted_at, deleted_by
	          FROM suggestion_responses WHERE suggestion_id::text = $1` + vis.andClause() + ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, suggestionID)
	if err != nil {
		return nil, fmt.Errorf("list suggestion responses: %w", err)
	}
	defer rows.Close()

	responses := make([]model.SuggestionResponse, 0)
	for rows.Next() {
		var resp model.SuggestionResponse
		if err := rows.Scan(&resp.ID, &resp.SuggestionID, &resp.Message, &resp.RespondedBy,
			&resp.CreatedAt, &resp.DeletedAt, &resp.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan suggestion response: %w", err)
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// LiveResponseIDs lists the live responses a suggestion delete cascades over.
func (r *SuggestionRepository) LiveResponseIDs(ctx context.Context, suggestionID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM suggestion_responses WHERE suggestion_id::text = $1 AND deleted_at IS NULL ORDER BY created_at`,
		suggestionID)
	if err != nil {
		return nil, fmt.Errorf("list suggestion response ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan suggestion response id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
