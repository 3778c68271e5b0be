package auth_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/auth"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RBACAuthorization", func() {
	var authz *auth.RBACAuthorization

	BeforeEach(func() {
		authz = auth.NewRBACAuthorization(nil, transport.NewBaseHandler(quietLogger))
	})

	serve := func(gate func(http.Handler) http.Handler, role rbac.Role) int {
		h := gate(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if role != "" {
			req = req.WithContext(internal.ContextWithUser(req.Context(), &internal.User{ID: 1, Role: role}))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	DescribeTable("gates",
		func(gate string, role rbac.Role, expected int) {
			gates := map[string]func(http.Handler) http.Handler{
				"viewer": authz.RequireViewer(),
				"editor": authz.RequireEditor(),
				"admin":  authz.RequireAdmin(),
			}
			Expect(serve(gates[gate], role)).To(Equal(expected))
		},
		Entry("viewer gate lets a viewer in", "viewer", rbac.RoleViewer, http.StatusOK),
		Entry("viewer gate lets an admin in", "viewer", rbac.RoleAdmin, http.StatusOK),
		Entry("editor gate stops a viewer", "editor", rbac.RoleViewer, http.StatusForbidden),
		Entry("editor gate lets an editor in", "editor", rbac.RoleEditor, http.StatusOK),
		Entry("editor gate lets an admin in", "editor", rbac.RoleAdmin, http.StatusOK),
		Entry("admin gate stops an editor", "admin", rbac.RoleEditor, http.StatusForbidden),
		Entry("admin gate lets an admin in", "admin", rbac.RoleAdmin, http.StatusOK),
		Entry("no principal is unauthenticated", "viewer", rbac.Role(""), http.StatusUnauthorized),
	)

	It("treats an unknown stored role as below every floor", func() {
		Expect(serve(authz.RequireViewer(), rbac.Role("owner"))).To(Equal(http.StatusForbidden))
	})
})
