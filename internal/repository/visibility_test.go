package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nonprofit-ops/internal/model"
)

func TestParseVisibility(t *testing.T) {
	t.Run("empty defaults to live", func(t *testing.T) {
		vis, err := ParseVisibility("")
		assert.NoError(t, err)
		assert.Equal(t, VisibilityLive, vis)
	})

	t.Run("accepts known modes case-insensitively", func(t *testing.T) {
		for raw, want := range map[string]Visibility{
			"live":      VisibilityLive,
			"ALL":       VisibilityAll,
			" deleted ": VisibilityDeleted,
		} {
			vis, err := ParseVisibility(raw)
			assert.NoError(t, err, raw)
			assert.Equal(t, want, vis, raw)
		}
	})

	t.Run("rejects unknown modes", func(t *testing.T) {
		_, err := ParseVisibility("trashed")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestVisibilityPredicates(t *testing.T) {
	assert.Equal(t, " WHERE deleted_at IS NULL", VisibilityLive.whereClause())
	assert.Equal(t, "", VisibilityAll.whereClause())

	// Deleted-only must be a positive IS NOT NULL check; live rows can never
	// satisfy it regardless of how the rest of the query is shaped.
	assert.Equal(t, " WHERE deleted_at IS NOT NULL", VisibilityDeleted.whereClause())
	assert.Equal(t, " AND deleted_at IS NOT NULL", VisibilityDeleted.andClause())
	assert.Equal(t, " AND deleted_at IS NULL", VisibilityLive.andClause())
}
