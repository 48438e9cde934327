//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nonprofit-ops/internal/model"
)

func createHost(t *testing.T, serverURL string, token string, name string) model.Host {
	t.Helper()

	status, env := doJSON(t, http.MethodPost, serverURL+"/api/v1/hosts",
		map[string]string{"name": name, "address": "12 Main St"}, token)
	require.Equal(t, http.StatusCreated, status)

	var host model.Host
	decodeData(t, env, &host)
	return host
}

func listHosts(t *testing.T, serverURL string, token string, visibility string) []model.Host {
	t.Helper()

	url := serverURL + "/api/v1/hosts"
	if visibility != "" {
		url += "?visibility=" + visibility
	}
	status, env := doJSON(t, http.MethodGet, url, nil, token)
	require.Equal(t, http.StatusOK, status)

	var hosts []model.Host
	decodeData(t, env, &hosts)
	return hosts
}

func TestHostSoftDeleteLifecycle(t *testing.T) {
	server, token := newTestServer(t)

	host := createHost(t, server.URL, token, "First Baptist Church")

	status, _ := doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID,
		map[string]string{"reason": "host closed down"}, token)
	require.Equal(t, http.StatusOK, status)

	// Gone from the default listing but visible to admins asking for deleted.
	assert.Empty(t, listHosts(t, server.URL, token, ""))
	deleted := listHosts(t, server.URL, token, "deleted")
	require.Len(t, deleted, 1)
	assert.Equal(t, host.ID, deleted[0].ID)
	require.NotNil(t, deleted[0].DeletedAt)

	// A second delete finds nothing live.
	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, status)

	// Exactly one ledger entry, carrying reason and snapshot.
	status, env := doJSON(t, http.MethodGet,
		server.URL+"/api/v1/admin/deletions?table=hosts&record_id="+host.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	var entries []model.DeletionAuditEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "host closed down", entries[0].DeletionReason)
	assert.True(t, entries[0].CanRestore)
	assert.NotNil(t, entries[0].RecordData)
}

func TestRestoreRoundTrip(t *testing.T) {
	server, token := newTestServer(t)

	host := createHost(t, server.URL, token, "Roosevelt Elementary")

	status, _ := doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/deletions/restore",
		map[string]string{"table_name": "hosts", "record_id": host.ID}, token)
	require.Equal(t, http.StatusOK, status)

	live := listHosts(t, server.URL, token, "")
	require.Len(t, live, 1)
	assert.Equal(t, "Roosevelt Elementary", live[0].Name)
	assert.Nil(t, live[0].DeletedAt)

	// The ledger entry survives, marked restored.
	status, env := doJSON(t, http.MethodGet,
		server.URL+"/api/v1/admin/deletions?table=hosts&record_id="+host.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	var entries []model.DeletionAuditEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 1)
	assert.NotNil(t, entries[0].RestoredAt)

	// Restoring again is a no-op on a live record.
	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/deletions/restore",
		map[string]string{"table_name": "hosts", "record_id": host.ID}, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPurgeIsTerminal(t *testing.T) {
	server, token := newTestServer(t)

	host := createHost(t, server.URL, token, "Temporary Site")

	status, _ := doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/admin/deletions/purge",
		map[string]string{"table_name": "hosts", "record_id": host.ID}, token)
	require.Equal(t, http.StatusOK, status)

	// The row is gone from every visibility mode.
	assert.Empty(t, listHosts(t, server.URL, token, "all"))

	// But the ledger remembers it, now unrestorable.
	status, env := doJSON(t, http.MethodGet,
		server.URL+"/api/v1/admin/deletions?table=hosts&record_id="+host.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	var entries []model.DeletionAuditEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].CanRestore)

	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/deletions/restore",
		map[string]string{"table_name": "hosts", "record_id": host.ID}, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHostDeleteBlockedByCollections(t *testing.T) {
	server, token := newTestServer(t)

	host := createHost(t, server.URL, token, "Grace Lutheran")

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/collections", map[string]any{
		"host_name":       "Grace Lutheran",
		"collection_date": "2026-08-27",
		"sandwich_count":  120,
	}, token)
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID, nil, token)
	require.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "1 associated collection")

	// Nothing was written: the host is still live and the ledger is empty.
	assert.Len(t, listHosts(t, server.URL, token, ""), 1)

	status, env = doJSON(t, http.MethodGet,
		server.URL+"/api/v1/admin/deletions?table=hosts", nil, token)
	require.Equal(t, http.StatusOK, status)

	var entries []model.DeletionAuditEntry
	decodeData(t, env, &entries)
	assert.Empty(t, entries)
}

func TestHostDeleteCascadesOverContacts(t *testing.T) {
	server, token := newTestServer(t)

	host := createHost(t, server.URL, token, "Community Center")

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/hosts/"+host.ID+"/contacts",
		map[string]string{"name": "Pat Doyle", "phone": "555-0102"}, token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID,
		map[string]string{"reason": "site consolidated"}, token)
	require.Equal(t, http.StatusOK, status)

	// Two ledger entries: the contact first, then the host.
	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/deletions", nil, token)
	require.Equal(t, http.StatusOK, status)

	var entries []model.DeletionAuditEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 2)

	byTable := map[string]model.DeletionAuditEntry{}
	for _, e := range entries {
		byTable[e.TableName] = e
	}
	require.Contains(t, byTable, "hosts")
	require.Contains(t, byTable, "host_contacts")
	assert.Equal(t, "site consolidated", byTable["hosts"].DeletionReason)
	assert.Contains(t, byTable["host_contacts"].DeletionReason, "cascade: hosts "+host.ID)
	assert.False(t, byTable["host_contacts"].DeletedAt.After(byTable["hosts"].DeletedAt))
}

func TestProjectDeleteCascadesOverTasks(t *testing.T) {
	server, token := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/projects",
		map[string]string{"title": "Volunteer drive"}, token)
	require.Equal(t, http.StatusCreated, status)
	var project model.Project
	decodeData(t, env, &project)

	for _, title := range []string{"Print flyers", "Book venue"} {
		status, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/projects/"+project.ID+"/tasks",
			map[string]string{"title": title}, token)
		require.Equal(t, http.StatusCreated, status)
	}

	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/projects/"+project.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/deletions", nil, token)
	require.Equal(t, http.StatusOK, status)

	var entries []model.DeletionAuditEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 3)

	var taskEntries, projectEntries int
	for _, e := range entries {
		switch e.TableName {
		case "tasks":
			taskEntries++
		case "projects":
			projectEntries++
		}
	}
	assert.Equal(t, 2, taskEntries)
	assert.Equal(t, 1, projectEntries)

	status, env = doJSON(t, http.MethodGet,
		server.URL+"/api/v1/projects/"+project.ID+"/tasks?visibility=all", nil, token)
	// The project itself is tombstoned, so its detail routes report 404.
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBulkDeletePartialSuccess(t *testing.T) {
	server, token := newTestServer(t)

	live := createHost(t, server.URL, token, "Live Host")
	tombstoned := createHost(t, server.URL, token, "Already Gone")

	status, _ := doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+tombstoned.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/deletions/bulk", map[string]any{
		"table_name": "hosts",
		"record_ids": []string{live.ID, tombstoned.ID, "no-such-id"},
		"reason":     "seasonal cleanup",
	}, token)
	require.Equal(t, http.StatusOK, status)

	var result model.BulkResult
	decodeData(t, env, &result)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
}

func TestDeletionHistoryPagination(t *testing.T) {
	server, token := newTestServer(t)

	for _, name := range []string{"Site A", "Site B", "Site C"} {
		host := createHost(t, server.URL, token, name)
		status, _ := doJSON(t, http.MethodDelete, server.URL+"/api/v1/hosts/"+host.ID, nil, token)
		require.Equal(t, http.StatusOK, status)
	}

	status, env := doJSON(t, http.MethodGet,
		server.URL+"/api/v1/admin/deletions?limit=2", nil, token)
	require.Equal(t, http.StatusOK, status)

	var first []model.DeletionAuditEntry
	decodeData(t, env, &first)
	require.Len(t, first, 2)
	require.NotNil(t, env.Meta)
	require.NotEmpty(t, env.Meta.NextCursor)

	status, env = doJSON(t, http.MethodGet,
		server.URL+"/api/v1/admin/deletions?limit=2&cursor="+env.Meta.NextCursor, nil, token)
	require.Equal(t, http.StatusOK, status)

	var second []model.DeletionAuditEntry
	decodeData(t, env, &second)
	require.Len(t, second, 1)

	// No overlap between pages; most recent first.
	seen := map[string]bool{}
	for _, e := range append(first, second...) {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
	assert.True(t, first[0].DeletedAt.After(second[0].DeletedAt) || first[0].DeletedAt.Equal(second[0].DeletedAt))
}
