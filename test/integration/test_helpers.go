//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nonprofit-ops/internal/config"
	"nonprofit-ops/internal/database"
	"nonprofit-ops/internal/handler"
	"nonprofit-ops/internal/middleware"
	"nonprofit-ops/internal/repository"
	"nonprofit-ops/internal/router"
	"nonprofit-ops/internal/service"
)

const truncateSQL = `TRUNCATE users, refresh_tokens, hosts, host_contacts,
	collections, projects, tasks, suggestions, suggestion_responses,
	messages, deletion_audit RESTART IDENTITY CASCADE`

// newTestServer stands up the whole API against the database named by
// TEST_DATABASE_URL, wiped clean, with a seeded super_admin logged in.
func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, dbURL, 5, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.Pool.Exec(ctx, truncateSQL)
	require.NoError(t, err)

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	hostRepo := repository.NewHostRepository(pool)
	collectionRepo := repository.NewCollectionRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	suggestionRepo := repository.NewSuggestionRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	softDeleteRepo := repository.NewSoftDeleteRepository(pool)
	auditRepo := repository.NewDeletionAuditRepository(pool)

	authService, err := service.NewAuthService("test-secret", 15*time.Minute, 24*time.Hour, userRepo, tokenRepo)
	require.NoError(t, err)
	require.NoError(t, authService.SeedAdmin(ctx, "admin", "admin123!"))
	authMiddleware := middleware.NewAuthMiddleware(authService)

	deletionService := service.NewDeletionService(softDeleteRepo, auditRepo, 50)
	service.RegisterDefaultRules(deletionService, hostRepo, collectionRepo, projectRepo, suggestionRepo)

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
		HistoryPageLimit: 50,
		BulkDeleteMaxIDs: 100,
	}

	server := httptest.NewServer(router.New(cfg, db, authMiddleware, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Host:       handler.NewHostHandler(service.NewHostService(hostRepo, deletionService)),
		Collection: handler.NewCollectionHandler(service.NewCollectionService(collectionRepo, deletionService)),
		Project:    handler.NewProjectHandler(service.NewProjectService(projectRepo, taskRepo, deletionService)),
		Suggestion: handler.NewSuggestionHandler(service.NewSuggestionService(suggestionRepo, deletionService)),
		Message:    handler.NewMessageHandler(service.NewMessageService(messageRepo, deletionService)),
		Deletion:   handler.NewDeletionHandler(deletionService, cfg.BulkDeleteMaxIDs),
	}))
	t.Cleanup(server.Close)

	return server, login(t, server, "admin", "admin123!")
}

func login(t *testing.T, server *httptest.Server, username string, password string) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.Success)
	require.NotEmpty(t, parsed.Data.AccessToken)

	return parsed.Data.AccessToken
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		NextCursor string `json:"next_cursor"`
		Count      int    `json:"count"`
	} `json:"meta"`
}

func doJSON(t *testing.T, method string, url string, payload any, accessToken string) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}
