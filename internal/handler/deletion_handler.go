package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
	"nonprofit-ops/pkg/apierror"
)

// DeletionHandler exposes the admin surface over the deletion ledger:
// history paging, restore, purge and bulk soft deletes.
type DeletionHandler struct {
	service    *service.DeletionService
	maxBulkIDs int
}

func NewDeletionHandler(service *service.DeletionService, maxBulkIDs int) *DeletionHandler {
	if maxBulkIDs <= 0 {
		maxBulkIDs = 100
	}
	return &DeletionHandler{service: service, maxBulkIDs: maxBulkIDs}
}

func (h *DeletionHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.HistoryFilter{
		TableName: strings.TrimSpace(q.Get("table")),
		RecordID:  strings.TrimSpace(q.Get("record_id")),
		Cursor:    q.Get("cursor"),
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, apierror.BadRequest("invalid limit", "limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	page, err := h.service.History(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page.Entries, &model.Meta{
		NextCursor: page.NextCursor,
		Count:      len(page.Entries),
	})
}

func (h *DeletionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req model.RestoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(req.TableName) == "" || strings.TrimSpace(req.RecordID) == "" {
		writeError(w, apierror.BadRequest("table_name and record_id are required", ""))
		return
	}

	actor := actorFromRequest(r)
	ok, err := h.service.Restore(r.Context(), req.TableName, req.RecordID, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Record not found or not deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "restored"}, nil)
}

// Purge physically removes a tombstoned record. The router gates this
// behind super_admin; after a purge the ledger entries stay but can no
// longer be restored.
func (h *DeletionHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var req model.PurgeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(req.TableName) == "" || strings.TrimSpace(req.RecordID) == "" {
		writeError(w, apierror.BadRequest("table_name and record_id are required", ""))
		return
	}

	actor := actorFromRequest(r)
	ok, err := h.service.Purge(r.Context(), req.TableName, req.RecordID, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Record not found or not deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "purged"}, nil)
}

func (h *DeletionHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req model.BulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(req.TableName) == "" || len(req.RecordIDs) == 0 {
		writeError(w, apierror.BadRequest("table_name and record_ids are required", ""))
		return
	}
	if len(req.RecordIDs) > h.maxBulkIDs {
		writeError(w, apierror.BadRequest(
			"too many record_ids",
			fmt.Sprintf("at most %d ids per request", h.maxBulkIDs),
		))
		return
	}

	actor := actorFromRequest(r)
	result, err := h.service.BulkSoftDelete(r.Context(), req.TableName, req.RecordIDs, actor.ID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}
