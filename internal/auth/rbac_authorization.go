package auth

import (
	"net/http"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	"github.com/frahmantamala/rbac-dashboard/pkg/logger"
)

// RBACAuthorization produces the per-route role gates. They must run after
// AuthMiddleware, which is what puts the principal in the context.
type RBACAuthorization struct {
	*transport.BaseHandler
	checker RoleChecker
}

func NewRBACAuthorization(checker RoleChecker, baseHandler *transport.BaseHandler) *RBACAuthorization {
	if checker == nil {
		checker = NewRoleChecker()
	}
	return &RBACAuthorization{
		BaseHandler: baseHandler,
		checker:     checker,
	}
}

// RequireRole rejects requests without a principal (401) or whose stored
// role is below min (403).
func (ra *RBACAuthorization) RequireRole(min rbac.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.HandleError(w, r, internal.ErrMissingToken)
				return
			}

			if !ra.checker.HasRole(principal.Role, min) {
				logger.From(r.Context()).Warn("access denied: insufficient role",
					"user_id", principal.ID,
					"role", string(principal.Role),
					"required_role", string(min),
					"path", r.URL.Path)
				ra.HandleError(w, r, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireViewer() func(http.Handler) http.Handler {
	return ra.RequireRole(rbac.RoleViewer)
}

func (ra *RBACAuthorization) RequireEditor() func(http.Handler) http.Handler {
	return ra.RequireRole(rbac.RoleEditor)
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(rbac.RoleAdmin)
}
