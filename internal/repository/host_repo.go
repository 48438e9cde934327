package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

type HostRepository struct {
	pool *pgxpool.Pool
}

func NewHostRepository(pool *pgxpool.Pool) *HostRepository {
	return &HostRepository{pool: pool}
}

func (r *HostRepository) Create(ctx context.Context, host model.Host) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO hosts (id, name, address, status, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		host.ID, host.Name, host.Address, host.Status, host.Notes, host.CreatedAt, host.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}
	return nil
}

// FindByID returns one live host.
func (r *HostRepository) FindByID(ctx context.Context, id string) (model.Host, error) {
	var h model.Host
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, address, status, notes, created_at, updated_at, deleted_at, deleted_by
		 FROM hosts WHERE id::text = $1 AND deleted_at IS NULL`, id).
		Scan(&h.ID, &h.Name, &h.Address, &h.Status, &h.Notes,
			&h.CreatedAt, &h.UpdatedAt, &h.DeletedAt, &h.DeletedBy)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Host{}, model.ErrHostNotFound
	}
	if err != nil {
		return model.Host{}, fmt.Errorf("find host by id: %w", err)
	}
	return h, nil
}

func (r *HostRepository) List(ctx context.Context, vis Visibility) ([]model.Host, error) {
	query := `SELECT id, name, address, status, notes, created_at, updated_at, deleted_at, deleted_by
	          FROM hosts` + vis.whereClause() + ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	defer rows.Close()

	hosts := make([]model.Host, 0)
	for rows.Next() {
		var h model.Host
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Status, &h.Notes,
			&h.CreatedAt, &h.UpdatedAt, &h.DeletedAt, &h.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan host: %w", err)
		}
		hosts = append(hosts, h)
	}
	return hosts, rows.Err()
}

func (r *HostRepository) Update(ctx context.Context, host model.Host) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hosts SET name = $2, address = $3, status = $4, notes = $5, updated_at = $6
		 WHERE id::text = $1 AND deleted_at IS NULL`,
		host.ID, host.Name, host.Address, host.Status, host.Notes, host.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update host: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrHostNotFound
	}
	return nil
}

// LiveContactIDs lists the live contacts a host delete must cascade over.
func (r *HostRepository) LiveContactIDs(ctx context.Context, hostID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM host_contacts WHERE host_id::text = $1 AND deleted_at IS NULL ORDER BY created_at`,
		hostID)
	if err != nil {
		return nil, fmt.Errorf("list host contact ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan host contact id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *HostRepository) CreateContact(ctx context.Context, contact model.HostContact) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO host_contacts (id, host_id, name, role, phone, email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		contact.ID, contact.HostID, contact.Name, contact.Role, contact.Phone, contact.Email,
		contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create host contact: %w", err)
	}
	return nil
}

func (r *HostRepository) ListContacts(ctx context.Context, hostID string, vis Visibility) ([]model.HostContact, error) {
	query := `SELECT id, host_id, name, role, phone, email, created_at, updated_at, deleted_at, deleted_by
	          FROM host_contacts WHERE host_id::text = $1` + vis.andClause() + ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, hostID)
	if err != nil {
		return nil, fmt.Errorf("list host contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.HostContact, 0)
	for rows.Next() {
		var c model.HostContact
		if err := rows.Scan(&c.ID, &c.HostID, &c.Name, &c.Role, &c.Phone, &c.Email,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt, &c.DeletedBy); err != nil {
			return nil, fmt.Errorf("scan host contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
