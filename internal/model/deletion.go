package model

import "time"

// SystemActor is recorded as deleted_by when no acting user is supplied.
const SystemActor = "system"

// DeletionAuditEntry is one row of the deletion ledger. Entries outlive the
// records they describe: there is intentionally no foreign key back to the
// source table, so a purged row keeps its history.
type DeletionAuditEntry struct {
	ID             string     `json:"id"`
	TableName      string     `json:"table_name"`
	RecordID       string     `json:"record_id"`
	DeletedAt      time.Time  `json:"deleted_at"`
	DeletedBy      string     `json:"deleted_by"`
	DeletionReason string     `json:"deletion_reason"`
	RecordData     any        `json:"record_data,omitempty"`
	CanRestore     bool       `json:"can_restore"`
	RestoredAt     *time.Time `json:"restored_at,omitempty"`
	RestoredBy     *string    `json:"restored_by,omitempty"`
}

// HistoryFilter narrows a ledger query. Zero values mean "no filter".
type HistoryFilter struct {
	TableName string
	RecordID  string
	Cursor    string
	Limit     int
}

// HistoryPage is one page of ledger entries plus the cursor for the next
// page. An empty NextCursor means the history is exhausted.
type HistoryPage struct {
	Entries    []DeletionAuditEntry `json:"entries"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

// BulkResult tallies a best-effort batch delete. Failed counts ids that were
// missing or already tombstoned; a storage error aborts the batch instead.
type BulkResult struct {
	Succeeded int `json:"success"`
	Failed    int `json:"failed"`
}
