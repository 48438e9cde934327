package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nonprofit-ops/internal/config"
	"nonprofit-ops/internal/database"
	"nonprofit-ops/internal/handler"
	"nonprofit-ops/internal/middleware"
)

// Handlers bundles the HTTP handlers so the route table stays readable as the
// surface grows.
type Handlers struct {
	Auth       *handler.AuthHandler
	Host       *handler.HostHandler
	Collection *handler.CollectionHandler
	Project    *handler.ProjectHandler
	Suggestion *handler.SuggestionHandler
	Message    *handler.MessageHandler
	Deletion   *handler.DeletionHandler
}

func New(cfg *config.Config, db *database.DB, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Health(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Group(func(authed chi.Router) {
			authed.Use(authMiddleware.RequireAuth)

			editors := authMiddleware.RequireRoles("editor", "admin", "super_admin")
			admins := authMiddleware.RequireRoles("admin", "super_admin")

			authed.Get("/hosts", h.Host.List)
			authed.Get("/hosts/{id}", h.Host.Get)
			authed.With(editors).Post("/hosts", h.Host.Create)
			authed.With(editors).Put("/hosts/{id}", h.Host.Update)
			authed.With(editors).Delete("/hosts/{id}", h.Host.Delete)
			authed.Get("/hosts/{id}/contacts", h.Host.ListContacts)
			authed.With(editors).Post("/hosts/{id}/contacts", h.Host.AddContact)
			authed.With(editors).Delete("/contacts/{id}", h.Host.DeleteContact)

			authed.Get("/collections", h.Collection.List)
			authed.Get("/collections/{id}", h.Collection.Get)
			authed.Post("/collections", h.Collection.Create)
			authed.With(editors).Delete("/collections/{id}", h.Collection.Delete)

			authed.Get("/projects", h.Project.List)
			authed.Get("/projects/{id}", h.Project.Get)
			authed.With(editors).Post("/projects", h.Project.Create)
			authed.With(editors).Put("/projects/{id}", h.Project.Update)
			authed.With(editors).Delete("/projects/{id}", h.Project.Delete)
			authed.Get("/projects/{id}/tasks", h.Project.ListTasks)
			authed.With(editors).Post("/projects/{id}/tasks", h.Project.CreateTask)
			authed.With(editors).Put("/tasks/{taskID}", h.Project.UpdateTask)
			authed.With(editors).Delete("/tasks/{taskID}", h.Project.DeleteTask)

			authed.Get("/suggestions", h.Suggestion.List)
			authed.Post("/suggestions", h.Suggestion.Create)
			authed.With(admins).Delete("/suggestions/{id}", h.Suggestion.Delete)
			authed.Get("/suggestions/{id}/responses", h.Suggestion.ListResponses)
			authed.With(admins).Post("/suggestions/{id}/responses", h.Suggestion.Respond)

			authed.Get("/messages", h.Message.List)
			authed.Post("/messages", h.Message.Create)
			// Ownership is enforced in the service; senders retract their own.
			authed.Delete("/messages/{id}", h.Message.Delete)

			authed.Route("/admin/deletions", func(admin chi.Router) {
				admin.Use(admins)
				admin.Get("/", h.Deletion.History)
				admin.Post("/restore", h.Deletion.Restore)
				admin.Post("/bulk", h.Deletion.BulkDelete)
				admin.With(authMiddleware.RequireRoles("super_admin")).Delete("/purge", h.Deletion.Purge)
			})
		})
	})

	return r
}
