package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m model.Message) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO messages (id, sender_id, subject, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.SenderID, m.Subject, m.Body, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (model.Message, error) {
	var m model.Message
	err := r.pool.QueryRow(ctx,
		`SELECT id, sender_id, subject, body, created_at, deleted_at, deleted_by
		 FROM messages WHERE id::text = $1 AND deleted_at IS NULL`, id).
		Scan(&m.ID, &m.SenderID, &m.Subject, &m.Body, &m.CreatedAt, &m.DeletedAt, &m.DeletedBy)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Message{}, model.ErrMessageNotFound
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("find message by id: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) List(ctx context.Context, vis Visibility) ([]model.Message, error) {
	query := `SELECT id, sender_id, subject, body, created_at, deleted_at, deleted_by
	          FROM messages` + vis.whereClause() + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.Subject, &m.Body, &m.CreatedAt,
			&m.DeletedAt, &m.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
