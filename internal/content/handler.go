package content

import (
	"context"
	"net/http"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, actor *internal.User) (*ListResponse, error)
	Get(ctx context.Context, actor *internal.User, id int64) (*Content, error)
	Create(ctx context.Context, actor *internal.User, dto CreateContentDTO) (*Content, error)
	Update(ctx context.Context, actor *internal.User, id int64, dto UpdateContentDTO) (*Content, error)
	Delete(ctx context.Context, actor *internal.User, id int64) error
	Stats(ctx context.Context, actor *internal.User) (*Stats, error)
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

// GetContentList handles GET /content
func (h *Handler) GetContentList(w http.ResponseWriter, r *http.Request) {
	actor, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	result, err := h.Service.List(r.Context(), actor)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// GetContent handles GET /content/{id}
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	item, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemResponse{Content: item, UserRole: actor.Role})
}

// CreateContent handles POST /content
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	var dto CreateContentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	item, err := h.Service.Create(r.Context(), actor, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, MutationResponse{Message: "Content created successfully", Content: item})
}

// UpdateContent handles PUT /content/{id}
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	var dto UpdateContentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	item, err := h.Service.Update(r.Context(), actor, id, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MutationResponse{Message: "Content updated successfully", Content: item})
}

// DeleteContent handles DELETE /content/{id}
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if err := h.Service.Delete(r.Context(), actor, id); err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Content deleted successfully"})
}

// GetStats handles GET /content/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, err := h.CurrentUser(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	stats, err := h.Service.Stats(r.Context(), actor)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}
