package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
)

type MessageHandler struct {
	service *service.MessageService
}

func NewMessageHandler(service *service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.service.List(r.Context(), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, messages, &model.Meta{Count: len(messages)})
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := actorFromRequest(r)
	message, err := h.service.Create(r.Context(), req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, message, nil)
}

// Delete retracts a message. Senders may retract their own; admins any.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	actor := actorFromRequest(r)
	ok, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actor, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Message not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}
