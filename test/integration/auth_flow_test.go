//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nonprofit-ops/internal/model"
)

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/hosts", "/api/v1/admin/deletions", "/api/v1/auth/me"} {
		status, env := doJSON(t, http.MethodGet, server.URL+path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	}
}

func TestTombstonedUserCannotLogIn(t *testing.T) {
	server, token := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, status)

	var me model.AuthUser
	decodeData(t, env, &me)
	require.NotEmpty(t, me.ID)

	// Users soft-delete through the same machinery as everything else.
	status, env = doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/deletions/bulk", map[string]any{
		"table_name": "users",
		"record_ids": []string{me.ID},
		"reason":     "offboarded",
	}, token)
	require.Equal(t, http.StatusOK, status)

	var result model.BulkResult
	decodeData(t, env, &result)
	require.Equal(t, 1, result.Succeeded)

	// The account is locked out of login immediately.
	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login",
		map[string]string{"username": "admin", "password": "admin123!"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// Live-only lookups no longer see the account.
	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
}
