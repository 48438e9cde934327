package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SoftDeleteRepository owns the three lifecycle transitions of a record:
// live -> tombstoned (SoftDelete), tombstoned -> live (Restore) and
// tombstoned -> gone (PermanentlyDelete). Each transition runs in one
// transaction so the row mutation and its ledger write commit together, and
// each guards its precondition inside the mutating statement itself, which is
// what makes two racing calls resolve to exactly one winner.
//
// Record ids are compared as text (id::text = $1) so uuid and bigserial
// primary keys go through the same code path.
type SoftDeleteRepository struct {
	pool *pgxpool.Pool
}

func NewSoftDeleteRepository(pool *pgxpool.Pool) *SoftDeleteRepository {
	return &SoftDeleteRepository{pool: pool}
}

// SoftDelete tombstones one live record and appends exactly one ledger entry
// holding the full pre-deletion row image. A missing or already-tombstoned
// record returns (false, nil) with nothing written.
func (r *SoftDeleteRepository) SoftDelete(ctx context.Context, table Table, id string, actorID string, reason string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin soft delete: %w", err)
	}
	defer tx.Rollback(ctx)

	// Snapshot before the tombstone update so record_data is the pre-deletion
	// image. FOR UPDATE holds the row against a concurrent delete between
	// snapshot and update.
	var snapshot []byte
	err = tx.QueryRow(ctx, fmt.Sprintf(
		`SELECT to_jsonb(t) FROM %s t WHERE t.id::text = $1 AND t.deleted_at IS NULL FOR UPDATE`,
		table.name), id).Scan(&snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot %s record: %w", table.name, err)
	}

	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET deleted_at = $2, deleted_by = $3 WHERE id::text = $1 AND deleted_at IS NULL`,
		table.name), id, now, actorID)
	if err != nil {
		return false, fmt.Errorf("tombstone %s record: %w", table.name, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO deletion_audit
		 (id, table_name, record_id, deleted_at, deleted_by, deletion_reason, record_data, can_restore)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)`,
		uuid.NewString(), table.name, id, now, actorID, reason, snapshot)
	if err != nil {
		return false, fmt.Errorf("write deletion audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit soft delete: %w", err)
	}
	return true, nil
}

// Restore clears the tombstone of one record and marks its latest outstanding
// ledger entry restored. Only that one entry is touched, even when repeated
// delete/restore cycles have left older entries behind. Returns (false, nil)
// when the record is absent or not currently tombstoned.
func (r *SoftDeleteRepository) Restore(ctx context.Context, table Table, id string, actorID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET deleted_at = NULL, deleted_by = NULL WHERE id::text = $1 AND deleted_at IS NOT NULL`,
		table.name), id)
	if err != nil {
		return false, fmt.Errorf("restore %s record: %w", table.name, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE deletion_audit SET restored_at = $1, restored_by = $2
		 WHERE id = (
		 	SELECT id FROM deletion_audit
		 	WHERE table_name = $3 AND record_id = $4 AND restored_at IS NULL
		 	ORDER BY deleted_at DESC
		 	LIMIT 1
		 )`,
		time.Now().UTC(), actorID, table.name, id)
	if err != nil {
		return false, fmt.Errorf("mark audit entry restored: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit restore: %w", err)
	}
	return true, nil
}

// PermanentlyDelete physically removes an already-tombstoned record and
// revokes restorability on its ledger entries. The entries themselves stay:
// they are the durable history. A live record cannot be purged.
func (r *SoftDeleteRepository) PermanentlyDelete(ctx context.Context, table Table, id string, actorID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id::text = $1 AND deleted_at IS NOT NULL`,
		table.name), id)
	if err != nil {
		return false, fmt.Errorf("purge %s record: %w", table.name, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	// Every historical snapshot of the record is equally unrestorable once
	// the row is gone, so the flag flips on all of them.
	_, err = tx.Exec(ctx,
		`UPDATE deletion_audit SET can_restore = false WHERE table_name = $1 AND record_id = $2`,
		table.name, id)
	if err != nil {
		return false, fmt.Errorf("revoke restorability: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit purge: %w", err)
	}
	return true, nil
}
