package service

import (
	"context"
	"errors"
	"fmt"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

const defaultDeletionReason = "record deleted"

// TombstoneWriter is the row-level soft-delete primitive. The service never
// touches entity SQL for deletes; everything funnels through this so each
// transition produces exactly one ledger entry.
type TombstoneWriter interface {
	SoftDelete(ctx context.Context, table repository.Table, id string, actorID string, reason string) (bool, error)
	Restore(ctx context.Context, table repository.Table, id string, actorID string) (bool, error)
	PermanentlyDelete(ctx context.Context, table repository.Table, id string, actorID string) (bool, error)
}

type HistoryReader interface {
	History(ctx context.Context, filter model.HistoryFilter) (model.HistoryPage, error)
}

// ChildRule names a dependent table and how to enumerate the live children
// of a parent. Children are tombstoned before their parent, each with its own
// ledger entry.
type ChildRule struct {
	Table   repository.Table
	LiveIDs func(ctx context.Context, parentID string) ([]string, error)
}

// BlockerRule counts live dependents that represent committed business facts.
// A non-zero count aborts the delete with a ConflictError before any write.
type BlockerRule struct {
	Dependent string
	Count     func(ctx context.Context, parentID string) (int, error)
}

type EntityRule struct {
	Children []ChildRule
	Blockers []BlockerRule
}

// DeletionService orchestrates the soft-delete lifecycle: per-entity cascade
// and blocking rules around the tombstone writer, restore, purge, bulk
// deletes, and ledger queries. The acting user is always an explicit
// parameter; there is no ambient current-user state.
type DeletionService struct {
	writer       TombstoneWriter
	ledger       HistoryReader
	rules        map[string]EntityRule
	historyLimit int
}

func NewDeletionService(writer TombstoneWriter, ledger HistoryReader, historyLimit int) *DeletionService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &DeletionService{
		writer:       writer,
		ledger:       ledger,
		rules:        make(map[string]EntityRule),
		historyLimit: historyLimit,
	}
}

// RegisterRule attaches cascade/blocker rules to a table. Tables without a
// rule soft-delete as plain single records.
func (s *DeletionService) RegisterRule(table repository.Table, rule EntityRule) {
	s.rules[table.Name()] = rule
}

// SoftDelete tombstones one record after applying its entity rule: blockers
// first (a hit aborts with ConflictError and zero writes), then live children
// oldest-first, then the record itself. Returns false when the record is
// missing or already tombstoned.
func (s *DeletionService) SoftDelete(ctx context.Context, tableName string, id string, actorID string, reason string) (bool, error) {
	table, err := repository.TableByName(tableName)
	if err != nil {
		return false, err
	}

	actorID = defaultActor(actorID)
	if reason == "" {
		reason = defaultDeletionReason
	}

	rule := s.rules[table.Name()]
	for _, blocker := range rule.Blockers {
		count, err := blocker.Count(ctx, id)
		if err != nil {
			return false, fmt.Errorf("check %s dependents: %w", blocker.Dependent, err)
		}
		if count > 0 {
			return false, &model.ConflictError{
				Table:         table.Name(),
				RecordID:      id,
				Dependent:     blocker.Dependent,
				BlockingCount: count,
			}
		}
	}

	for _, child := range rule.Children {
		childIDs, err := child.LiveIDs(ctx, id)
		if err != nil {
			return false, fmt.Errorf("list %s children: %w", child.Table.Name(), err)
		}
		cascadeReason := fmt.Sprintf("cascade: %s %s deleted", table.Name(), id)
		for _, childID := range childIDs {
			if _, err := s.writer.SoftDelete(ctx, child.Table, childID, actorID, cascadeReason); err != nil {
				return false, err
			}
		}
	}

	return s.writer.SoftDelete(ctx, table, id, actorID, reason)
}

// Restore reverses the latest tombstone of one record. False means the
// record does not exist or is not currently tombstoned.
func (s *DeletionService) Restore(ctx context.Context, tableName string, id string, actorID string) (bool, error) {
	table, err := repository.TableByName(tableName)
	if err != nil {
		return false, err
	}
	return s.writer.Restore(ctx, table, id, defaultActor(actorID))
}

// Purge physically deletes an already-tombstoned record and revokes
// restorability in the ledger. The caller is responsible for having verified
// elevated privilege.
func (s *DeletionService) Purge(ctx context.Context, tableName string, id string, actorID string) (bool, error) {
	table, err := repository.TableByName(tableName)
	if err != nil {
		return false, err
	}
	return s.writer.PermanentlyDelete(ctx, table, id, defaultActor(actorID))
}

// BulkSoftDelete applies the rule-aware delete per id. Ids that are missing,
// already tombstoned, or blocked by dependents count as failed without
// aborting the batch; storage errors abort.
func (s *DeletionService) BulkSoftDelete(ctx context.Context, tableName string, ids []string, actorID string, reason string) (model.BulkResult, error) {
	var result model.BulkResult
	for _, id := range ids {
		ok, err := s.SoftDelete(ctx, tableName, id, actorID, reason)
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			result.Failed++
			continue
		}
		if err != nil {
			return result, err
		}
		if ok {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}
	return result, nil
}

// History pages through the deletion ledger, most recent first. Table and
// record filters are optional; the ledger may legitimately hold table names
// that are no longer registered, so they are not validated here.
func (s *DeletionService) History(ctx context.Context, filter model.HistoryFilter) (model.HistoryPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.historyLimit
	}
	return s.ledger.History(ctx, filter)
}

func defaultActor(actorID string) string {
	if actorID == "" {
		return model.SystemActor
	}
	return actorID
}
