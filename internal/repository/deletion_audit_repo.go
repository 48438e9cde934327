package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

const maxHistoryLimit = 200

// DeletionAuditRepository reads the deletion ledger. Entries are ordered most
// recent first and paginated by keyset cursor on (deleted_at, id), so pages
// stay stable while new tombstones are appended.
type DeletionAuditRepository struct {
	pool *pgxpool.Pool
}

func NewDeletionAuditRepository(pool *pgxpool.Pool) *DeletionAuditRepository {
	return &DeletionAuditRepository{pool: pool}
}

func (r *DeletionAuditRepository) History(ctx context.Context, filter model.HistoryFilter) (model.HistoryPage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	where := make([]string, 0, 3)
	args := make([]any, 0, 4)
	argIdx := 1

	if table := strings.TrimSpace(filter.TableName); table != "" {
		where = append(where, fmt.Sprintf("table_name = $%d", argIdx))
		args = append(args, table)
		argIdx++
	}
	if record := strings.TrimSpace(filter.RecordID); record != "" {
		where = append(where, fmt.Sprintf("record_id = $%d", argIdx))
		args = append(args, record)
		argIdx++
	}
	if filter.Cursor != "" {
		cursorAt, cursorID, err := decodeHistoryCursor(filter.Cursor)
		if err != nil {
			return model.HistoryPage{}, err
		}
		where = append(where, fmt.Sprintf("(deleted_at, id) < ($%d::timestamptz, $%d::uuid)", argIdx, argIdx+1))
		args = append(args, cursorAt, cursorID)
		argIdx += 2
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	// Fetch one extra row to learn whether another page exists.
	query := fmt.Sprintf(
		`SELECT id, table_name, record_id, deleted_at, deleted_by, deletion_reason,
		        record_data, can_restore, restored_at, restored_by
		 FROM deletion_audit %s
		 ORDER BY deleted_at DESC, id DESC
		 LIMIT $%d`, whereClause, argIdx)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return model.HistoryPage{}, fmt.Errorf("query deletion history: %w", err)
	}
	defer rows.Close()

	entries := make([]model.DeletionAuditEntry, 0, limit)
	for rows.Next() {
		var e model.DeletionAuditEntry
		var recordData []byte
		if err := rows.Scan(
			&e.ID, &e.TableName, &e.RecordID, &e.DeletedAt, &e.DeletedBy, &e.DeletionReason,
			&recordData, &e.CanRestore, &e.RestoredAt, &e.RestoredBy,
		); err != nil {
			return model.HistoryPage{}, fmt.Errorf("scan deletion audit entry: %w", err)
		}

		if len(recordData) > 0 {
			var data any
			if jsonErr := json.Unmarshal(recordData, &data); jsonErr == nil {
				e.RecordData = data
			}
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return model.HistoryPage{}, fmt.Errorf("read deletion history: %w", err)
	}

	page := model.HistoryPage{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		last := page.Entries[limit-1]
		page.NextCursor = encodeHistoryCursor(last.DeletedAt, last.ID)
	}

	return page, nil
}

func encodeHistoryCursor(deletedAt time.Time, id string) string {
	raw := deletedAt.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeHistoryCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed history cursor", model.ErrInvalidInput)
	}

	at, id, found := strings.Cut(string(raw), "|")
	if !found {
		return time.Time{}, "", fmt.Errorf("%w: malformed history cursor", model.ErrInvalidInput)
	}

	deletedAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed history cursor", model.ErrInvalidInput)
	}

	return deletedAt, id, nil
}
