package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	"github.com/frahmantamala/rbac-dashboard/internal/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	actor    *internal.User
	targetID int64
	dto      user.UpdateRoleDTO
	err      error
}

func (s *stubService) ListUsers(context.Context) ([]*user.User, error) {
	return []*user.User{{ID: 1, Username: "root", Role: rbac.RoleAdmin}}, s.err
}

func (s *stubService) UpdateRole(_ context.Context, actor *internal.User, targetID int64, dto user.UpdateRoleDTO) (*user.User, error) {
	s.actor, s.targetID, s.dto = actor, targetID, dto
	if s.err != nil {
		return nil, s.err
	}
	return &user.User{ID: targetID, Role: dto.Parsed()}, nil
}

func (s *stubService) DeleteUser(_ context.Context, actor *internal.User, targetID int64) error {
	s.actor, s.targetID = actor, targetID
	return s.err
}

var _ = Describe("Handler", func() {
	var (
		svc    *stubService
		router *chi.Mux
		admin  *internal.User
	)

	BeforeEach(func() {
		svc = &stubService{}
		admin = &internal.User{ID: 1, Username: "root", Role: rbac.RoleAdmin}
		handler := user.NewHandler(transport.NewBaseHandler(quietLogger), svc)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), admin)))
			})
		})
		router.Get("/users", handler.GetUsers)
		router.Patch("/users/{id}/role", handler.UpdateRole)
		router.Delete("/users/{id}", handler.DeleteUser)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("wraps the list in a users field", func() {
		w := do(http.MethodGet, "/users", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string][]map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["users"]).To(HaveLen(1))
		Expect(body["users"][0]).NotTo(HaveKey("passwordHash"))
	})

	It("passes the acting user, target and role to the service", func() {
		w := do(http.MethodPatch, "/users/2/role", `{"role":"editor"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.actor).To(Equal(admin))
		Expect(svc.targetID).To(Equal(int64(2)))
		Expect(svc.dto.Role).To(Equal("editor"))
		Expect(w.Body.String()).To(ContainSubstring("User role updated successfully"))
	})

	It("rejects a non-numeric id with 400", func() {
		w := do(http.MethodDelete, "/users/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_ID"))
	})

	It("returns 400 for self-deletion", func() {
		svc.err = internal.ErrSelfDelete
		w := do(http.MethodDelete, "/users/1", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("Cannot delete your own account"))
	})

	It("returns 404 for an unknown target", func() {
		svc.err = internal.ErrUserNotFound
		w := do(http.MethodPatch, "/users/99/role", `{"role":"viewer"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("confirms a deletion", func() {
		w := do(http.MethodDelete, "/users/2", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("User deleted successfully"))
	})
})
