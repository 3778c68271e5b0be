package activitylog

import (
	"time"

	activitylogDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/activitylog"
)

type Action string

const (
	ActionLogin         Action = "login"
	ActionLogout        Action = "logout"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionCreateUser    Action = "create_user"
	ActionChangeRole    Action = "change_role"
	ActionUpdateUser    Action = "update_user"
	ActionDeleteUser    Action = "delete_user"
	ActionCreateContent Action = "create_content"
	ActionUpdateContent Action = "update_content"
	ActionDeleteContent Action = "delete_content"
)

// Resource names used across the audit trail.
const (
	ResourceAuth    = "auth"
	ResourceUsers   = "users"
	ResourceContent = "content"
)

// Actor is the subset of the acting user shown next to each log.
type Actor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Log struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	User      *Actor         `json:"user"`
	Action    Action         `json:"action"`
	Resource  string         `json:"resource"`
	Details   map[string]any `json:"details,omitempty"`
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type LogsPage struct {
	Logs        []*Log `json:"logs"`
	Total       int64  `json:"total"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

func FromDataModel(l *activitylogDatamodel.ActivityLog) *Log {
	out := &Log{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    Action(l.Action),
		Resource:  l.Resource,
		Details:   map[string]any(l.Details),
		IPAddress: l.IPAddress,
		UserAgent: l.UserAgent,
		Timestamp: l.OccurredAt,
	}
	if l.User != nil {
		out.User = &Actor{ID: l.User.ID, Username: l.User.Username, Email: l.User.Email}
	}
	return out
}
