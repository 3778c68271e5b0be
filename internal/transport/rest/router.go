package rest

import (
	"net/http"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	"github.com/frahmantamala/rbac-dashboard/internal/auth"
	"github.com/frahmantamala/rbac-dashboard/internal/content"
	"github.com/frahmantamala/rbac-dashboard/internal/transport/middleware"
	"github.com/frahmantamala/rbac-dashboard/internal/transport/swagger"
	"github.com/frahmantamala/rbac-dashboard/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Auth        *auth.Handler
	RBAC        *auth.RBACAuthorization
	User        *user.Handler
	Content     *content.Handler
	ActivityLog *activitylog.Handler
}

func RegisterAllRoutes(router *chi.Mux, cfg internal.ServerConfig, h Handlers) {
	// Apply global middleware
	router.Use(middleware.CORS(cfg.Origins()))
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientInfo)
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)

	// OpenAPI document and Swagger UI live outside the API prefix
	openAPIPath := cfg.OpenAPIPath
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, openAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}

	router.Route(prefix, func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/ping", h.Health.Ping)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", h.Auth.Register)
			ar.Post("/login", h.Auth.Login)
			ar.Post("/logout", h.Auth.Logout)
		})

		// Everything below re-reads the caller's account on each request
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/profile", h.Auth.Profile)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(h.RBAC.RequireAdmin())
				ur.Get("/", h.User.GetUsers)
				ur.Patch("/{id}/role", h.User.UpdateRole)
				ur.Delete("/{id}", h.User.DeleteUser)
			})

			pr.Route("/content", func(cr chi.Router) {
				cr.Group(func(vr chi.Router) {
					vr.Use(h.RBAC.RequireViewer())
					vr.Get("/", h.Content.GetContentList)
					vr.Get("/stats", h.Content.GetStats)
					vr.Get("/{id}", h.Content.GetContent)
				})

				// ownership is enforced by the service, there is no admin bypass
				cr.Group(func(er chi.Router) {
					er.Use(h.RBAC.RequireEditor())
					er.Post("/", h.Content.CreateContent)
					er.Put("/{id}", h.Content.UpdateContent)
					er.Delete("/{id}", h.Content.DeleteContent)
				})
			})

			pr.Group(func(lr chi.Router) {
				lr.Use(h.RBAC.RequireAdmin())
				lr.Get("/logs", h.ActivityLog.GetLogs)
			})
		})
	})
}
