package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nonprofit-ops/internal/model"
)

func TestTableByName(t *testing.T) {
	t.Run("resolves registered tables", func(t *testing.T) {
		for _, name := range TableNames() {
			table, err := TableByName(name)
			assert.NoError(t, err)
			assert.Equal(t, name, table.Name())
		}
	})

	t.Run("rejects anything outside the registry", func(t *testing.T) {
		for _, raw := range []string{"", "refresh_tokens", "deletion_audit", "hosts; --"} {
			_, err := TableByName(raw)
			assert.ErrorIs(t, err, model.ErrUnknownTable, raw)
		}
	})
}
