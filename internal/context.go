package internal

import (
	"context"
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
)

type ctxKey string

const (
	ContextUserKey   ctxKey = "user"
	ContextClientKey ctxKey = "client"
)

// User is the authenticated principal attached to a request. Role is the
// value read from the store when the request was authorized, never the
// one embedded in the token.
type User struct {
	ID       int64
	Username string
	Email    string
	Role     rbac.Role
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok && u != nil
}

// ClientInfo describes the caller for audit purposes.
type ClientInfo struct {
	IP        string
	UserAgent string
}

func ContextWithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, ContextClientKey, info)
}

func ClientInfoFromContext(ctx context.Context) ClientInfo {
	if ctx == nil {
		return ClientInfo{}
	}
	info, _ := ctx.Value(ContextClientKey).(ClientInfo)
	return info
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
