package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nonprofit-ops/internal/model"
)

func TestHistoryCursorRoundTrip(t *testing.T) {
	deletedAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	id := "0d9f9b0e-4c57-4a8f-9a37-1f2f6a0f31ab"

	cursor := encodeHistoryCursor(deletedAt, id)
	gotAt, gotID, err := decodeHistoryCursor(cursor)

	require.NoError(t, err)
	assert.True(t, gotAt.Equal(deletedAt))
	assert.Equal(t, id, gotID)
}

func TestDecodeHistoryCursorRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"not base64 !!",
		"aGVsbG8",       // decodes but has no separator
		"fDEyMzR8NTY3OA", // separator but unparseable timestamp
	} {
		_, _, err := decodeHistoryCursor(raw)
		assert.ErrorIs(t, err, model.ErrInvalidInput, raw)
	}
}
