package middleware

import (
	"net"
	"net/http"

	"github.com/frahmantamala/rbac-dashboard/internal"
)

// ClientInfo records the caller's address and user agent for the audit trail.
// Mount it after chi's RealIP so proxied requests report the original client.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := internal.ContextWithClientInfo(r.Context(), internal.ClientInfo{
			IP:        clientIP(r.RemoteAddr),
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
