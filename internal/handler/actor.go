package handler

import (
	"net/http"

	"nonprofit-ops/internal/middleware"
	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
	"nonprofit-ops/pkg/apierror"
)

// actorFromRequest pulls the acting user out of the request's auth claims.
// The acting user is always threaded explicitly into service calls; nothing
// downstream reads it from ambient state.
func actorFromRequest(r *http.Request) model.AuthUser {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return model.AuthUser{}
	}
	return model.AuthUser{ID: claims.UserID, Username: claims.Username, Role: claims.Role}
}

func isAdmin(actor model.AuthUser) bool {
	return actor.Role == model.RoleAdmin || actor.Role == model.RoleSuperAdmin
}

// visibilityFromRequest parses ?visibility= and gates non-live reads behind
// admin roles, so tombstoned rows never leak into ordinary listings.
func visibilityFromRequest(r *http.Request) (repository.Visibility, error) {
	vis, err := repository.ParseVisibility(r.URL.Query().Get("visibility"))
	if err != nil {
		return "", apierror.BadRequest("invalid visibility", "expected live, all or deleted")
	}

	if vis != repository.VisibilityLive && !isAdmin(actorFromRequest(r)) {
		return "", model.ErrForbidden
	}

	return vis, nil
}
