package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
)

type HostHandler struct {
	service *service.HostService
}

func NewHostHandler(service *service.HostService) *HostHandler {
	return &HostHandler{service: service}
}

func (h *HostHandler) List(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hosts, err := h.service.List(r.Context(), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, hosts, &model.Meta{Count: len(hosts)})
}

func (h *HostHandler) Get(w http.ResponseWriter, r *http.Request) {
	host, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, host, nil)
}

func (h *HostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateHostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	host, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, host, nil)
}

func (h *HostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateHostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	host, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, host, nil)
}

// Delete soft-deletes a host. Contacts cascade with it; live collections
// against the host's name block the whole operation with a 409.
func (h *HostHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeNotFoundOutcome(w, "Host not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}

func (h *HostHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	contacts, err := h.service.ListContacts(r.Context(), chi.URLParam(r, "id"), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, contacts, &model.Meta{Count: len(contacts)})
}

func (h *HostHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.service.AddContact(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, contact, nil)
}

func (h *HostHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	actor := actorFromRequest(r)
	ok, err := h.service.DeleteContact(r.Context(), chi.URLParam(r, "id"), actor.ID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Contact not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}
