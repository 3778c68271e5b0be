package activitylog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/rbac-dashboard/internal/transport"
)

type ServiceAPI interface {
	ListLogs(ctx context.Context, page, limit int) (*LogsPage, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetLogs handles GET /logs?page=&limit=
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page")
	limit := queryInt(r, "limit")

	result, err := h.Service.ListLogs(r.Context(), page, limit)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// queryInt returns 0 for missing or malformed values so the service applies its defaults.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
