package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	"github.com/frahmantamala/rbac-dashboard/internal/user"
	"github.com/frahmantamala/rbac-dashboard/pkg/logger"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*user.User, error)
	Authenticate(ctx context.Context, dto LoginDTO) (*LoginResult, error)
	Profile(ctx context.Context, userID int64) (*user.User, error)
	Logout(ctx context.Context, token string)
	ResolveUser(ctx context.Context, token string) (*internal.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	u, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    u,
	})
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	result, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		LoginResult: result,
	})
}

// Profile handles GET /auth/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	current, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	u, err := h.Service.Profile(r.Context(), current.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProfileResponse{User: u})
}

// Logout handles POST /auth/logout. It always succeeds; a valid bearer
// token only determines whether an audit entry is written.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout(r.Context(), transport.ExtractTokenFromHeader(r))
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// AuthMiddleware resolves the bearer token to a live account and attaches
// it to the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := h.Service.ResolveUser(r.Context(), transport.ExtractTokenFromHeader(r))
		if err != nil {
			logger.From(r.Context()).Info("auth middleware: request rejected", "error", err, "path", r.URL.Path)
			h.HandleError(w, r, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), principal)
		ctx = logger.With(ctx, "user_id", principal.ID, "role", string(principal.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
