package handler

import (
	"net/http"
	"strings"

	"nonprofit-ops/internal/middleware"
	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
	"nonprofit-ops/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, apierror.BadRequest("username and password are required", ""))
		return
	}

	pair, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, pair, nil)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pair, err := h.service.Refresh(r.Context(), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, pair, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.service.Logout(r.Context(), strings.TrimSpace(req.RefreshToken))
	writeSuccess(w, http.StatusOK, map[string]string{"status": "logged out"}, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}
