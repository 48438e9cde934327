package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

type CollectionRepository struct {
	pool *pgxpool.Pool
}

func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

func (r *CollectionRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO collections (host_name, collection_date, sandwich_count, submitted_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.HostName, c.CollectionDate, c.SandwichCount, c.SubmittedBy, c.CreatedAt, c.UpdatedAt).
		Scan(&c.ID)
	if err != nil {
		return model.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	return c, nil
}

func (r *CollectionRepository) FindByID(ctx context.Context, id string) (model.Collection, error) {
	var c model.Collection
	err := r.pool.QueryRow(ctx,
		`SELECT id, host_name, collection_date, sandwich_count, submitted_by,
		        created_at, updated_at, deleted_at, deleted_by
		 FROM collections WHERE id::text = $1 AND deleted_at IS NULL`, id).
		Scan(&c.ID, &c.HostName, &c.CollectionDate, &c.SandwichCount, &c.SubmittedBy,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt, &c.DeletedBy)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Collection{}, model.ErrCollectionNotFound
	}
	if err != nil {
		return model.Collection{}, fmt.Errorf("find collection by id: %w", err)
	}
	return c, nil
}

func (r *CollectionRepository) List(ctx context.Context, vis Visibility) ([]model.Collection, error) {
	query := `SELECT id, host_name, collection_date, sandwich_count, submitted_by,
	                 created_at, updated_at, deleted_at, deleted_by
	          FROM collections` + vis.whereClause() + ` ORDER BY collection_date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]model.Collection, 0)
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.HostName, &c.CollectionDate, &c.SandwichCount, &c.SubmittedBy,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt, &c.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// CountLiveByHostName counts the live collection records logged under a host
// name. A non-zero count blocks deleting that host.
func (r *CollectionRepository) CountLiveByHostName(ctx context.Context, hostName string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM collections WHERE host_name = $1 AND deleted_at IS NULL`,
		hostName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count collections for host: %w", err)
	}
	return count, nil
}
