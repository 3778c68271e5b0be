package rest

import (
	"log/slog"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	activitylogPostgres "github.com/frahmantamala/rbac-dashboard/internal/activitylog/postgres"
	"github.com/frahmantamala/rbac-dashboard/internal/auth"
	authPostgres "github.com/frahmantamala/rbac-dashboard/internal/auth/postgres"
	"github.com/frahmantamala/rbac-dashboard/internal/content"
	contentPostgres "github.com/frahmantamala/rbac-dashboard/internal/content/postgres"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	"github.com/frahmantamala/rbac-dashboard/internal/user"
	userPostgres "github.com/frahmantamala/rbac-dashboard/internal/user/postgres"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// API is the fully wired HTTP application.
type API struct {
	Router   *chi.Mux
	Recorder *activitylog.Recorder
	Tokens   *auth.JWTTokenGenerator
}

// NewAPI wires repositories, services and handlers onto a fresh router.
// gormDB and sqlDB must share the same connection pool.
func NewAPI(cfg *internal.Config, gormDB *gorm.DB, sqlDB *sqlx.DB, logger *slog.Logger) *API {
	base := transport.NewBaseHandler(logger)

	recorder := activitylog.NewRecorder(
		activitylogPostgres.NewActivityLogRepository(gormDB),
		activitylog.RecorderConfig{
			QueueSize:    cfg.Audit.QueueSize,
			Workers:      cfg.Audit.Workers,
			WriteTimeout: cfg.Audit.WriteTimeout,
		},
		logger.With("component", "audit"),
	)

	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)

	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokens, recorder, cfg.Security.BCryptCost, logger)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), recorder, logger)
	contentService := content.NewService(contentPostgres.NewContentRepository(gormDB), recorder, logger)
	logService := activitylog.NewService(activitylogPostgres.NewActivityLogRepository(gormDB), logger)

	router := chi.NewRouter()
	RegisterAllRoutes(router, cfg.Server, Handlers{
		Health:      NewHealthHandler(base, sqlDB, cfg.Database.Driver),
		Auth:        auth.NewHandler(base, authService),
		RBAC:        auth.NewRBACAuthorization(auth.NewRoleChecker(), base),
		User:        user.NewHandler(base, userService),
		Content:     content.NewHandler(base, contentService),
		ActivityLog: activitylog.NewHandler(base, logService),
	})

	return &API{
		Router:   router,
		Recorder: recorder,
		Tokens:   tokens,
	}
}
