package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
)

type SuggestionHandler struct {
	service *service.SuggestionService
}

func NewSuggestionHandler(service *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	suggestions, err := h.service.List(r.Context(), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, suggestions, &model.Meta{Count: len(suggestions)})
}

func (h *SuggestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSuggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := actorFromRequest(r)
	suggestion, err := h.service.Create(r.Context(), req, actor.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, suggestion, nil)
}

// Delete soft-deletes the suggestion along with its live responses.
func (h *SuggestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeNotFoundOutcome(w, "Suggestion not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}

func (h *SuggestionHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	responses, err := h.service.ListResponses(r.Context(), chi.URLParam(r, "id"), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, responses, &model.Meta{Count: len(responses)})
}

func (h *SuggestionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSuggestionResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := actorFromRequest(r)
	response, err := h.service.Respond(r.Context(), chi.URLParam(r, "id"), req, actor.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, response, nil)
}
