package repository

import (
	"strings"

	"nonprofit-ops/internal/model"
)

// Visibility selects which deletion states a read returns. The default
// everywhere is live-only; anything else must be requested explicitly.
type Visibility string

const (
	VisibilityLive    Visibility = "live"
	VisibilityAll     Visibility = "all"
	VisibilityDeleted Visibility = "deleted"
)

func ParseVisibility(raw string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(VisibilityLive):
		return VisibilityLive, nil
	case string(VisibilityAll):
		return VisibilityAll, nil
	case string(VisibilityDeleted):
		return VisibilityDeleted, nil
	default:
		return "", model.ErrInvalidInput
	}
}

// predicate returns the deletion-state filter, or "" for VisibilityAll.
// Deleted-only is its own explicit IS NOT NULL predicate; it must never be
// expressed as a negation of the live clause.
func (v Visibility) predicate() string {
	switch v {
	case VisibilityDeleted:
		return "deleted_at IS NOT NULL"
	case VisibilityAll:
		return ""
	default:
		return "deleted_at IS NULL"
	}
}

// whereClause renders the filter with a leading WHERE, for queries with no
// other conditions.
func (v Visibility) whereClause() string {
	if p := v.predicate(); p != "" {
		return " WHERE " + p
	}
	return ""
}

// andClause renders the filter with a leading AND, for queries that already
// have a WHERE.
func (v Visibility) andClause() string {
	if p := v.predicate(); p != "" {
		return " AND " + p
	}
	return ""
}
