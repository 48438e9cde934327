package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
)

type CollectionHandler struct {
	service *service.CollectionService
}

func NewCollectionHandler(service *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	collections, err := h.service.List(r.Context(), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, collections, &model.Meta{Count: len(collections)})
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	collection, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, collection, nil)
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := actorFromRequest(r)
	collection, err := h.service.Create(r.Context(), req, actor.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, collection, nil)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	actor := actorFromRequest(r)
	ok, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actor.ID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Collection not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}
