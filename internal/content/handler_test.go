package content_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/content"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	created content.CreateContentDTO
	updated content.UpdateContentDTO
	id      int64
	err     error
}

func (s *stubService) List(_ context.Context, actor *internal.User) (*content.ListResponse, error) {
	return &content.ListResponse{Content: []*content.Content{}, UserRole: actor.Role}, s.err
}

func (s *stubService) Get(_ context.Context, _ *internal.User, id int64) (*content.Content, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &content.Content{ID: id, Title: "t", Tags: []string{}}, nil
}

func (s *stubService) Create(_ context.Context, actor *internal.User, dto content.CreateContentDTO) (*content.Content, error) {
	s.created = dto
	if s.err != nil {
		return nil, s.err
	}
	return &content.Content{ID: 1, Title: dto.Title, AuthorID: actor.ID, Status: content.StatusPublished}, nil
}

func (s *stubService) Update(_ context.Context, _ *internal.User, id int64, dto content.UpdateContentDTO) (*content.Content, error) {
	s.id, s.updated = id, dto
	if s.err != nil {
		return nil, s.err
	}
	return &content.Content{ID: id}, nil
}

func (s *stubService) Delete(_ context.Context, _ *internal.User, id int64) error {
	s.id = id
	return s.err
}

func (s *stubService) Stats(_ context.Context, actor *internal.User) (*content.Stats, error) {
	return &content.Stats{TotalContent: 5, UserRole: actor.Role}, s.err
}

var _ = Describe("Handler", func() {
	var (
		svc    *stubService
		router *chi.Mux
		actor  *internal.User
	)

	BeforeEach(func() {
		svc = &stubService{}
		actor = &internal.User{ID: 2, Username: "alice", Role: rbac.RoleEditor}
		handler := content.NewHandler(transport.NewBaseHandler(quietLogger), svc)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), actor)))
			})
		})
		router.Get("/content", handler.GetContentList)
		router.Get("/content/stats", handler.GetStats)
		router.Get("/content/{id}", handler.GetContent)
		router.Post("/content", handler.CreateContent)
		router.Put("/content/{id}", handler.UpdateContent)
		router.Delete("/content/{id}", handler.DeleteContent)
	})

	do := func(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var decoded map[string]any
		ExpectWithOffset(1, json.Unmarshal(w.Body.Bytes(), &decoded)).To(Succeed())
		return w, decoded
	}

	It("echoes the caller's role with the list", func() {
		w, body := do(http.MethodGet, "/content", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body).To(HaveKeyWithValue("userRole", "editor"))
		Expect(body).To(HaveKey("total"))
	})

	It("routes stats ahead of the id pattern", func() {
		w, body := do(http.MethodGet, "/content/stats", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body).To(HaveKeyWithValue("totalContent", BeNumerically("==", 5)))
		Expect(svc.id).To(BeZero())
	})

	It("wraps a single item with the caller's role", func() {
		w, body := do(http.MethodGet, "/content/7", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.id).To(Equal(int64(7)))
		Expect(body["content"]).To(HaveKeyWithValue("title", "t"))
		Expect(body).To(HaveKeyWithValue("userRole", "editor"))
	})

	It("creates with 201", func() {
		w, body := do(http.MethodPost, "/content", `{"title":"Hi","content":"body","type":"post","tags":["x"],"parentContent":3}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(body).To(HaveKeyWithValue("message", "Content created successfully"))
		Expect(svc.created.Tags).To(Equal([]string{"x"}))
		Expect(svc.created.ParentContent).To(HaveValue(Equal(int64(3))))
	})

	It("distinguishes an omitted tags field from an empty one", func() {
		do(http.MethodPut, "/content/7", `{"title":"new"}`)
		Expect(svc.updated.Tags).To(BeNil())
		Expect(svc.updated.Content).To(BeNil())

		do(http.MethodPut, "/content/7", `{"tags":[]}`)
		Expect(svc.updated.Tags).NotTo(BeNil())
		Expect(svc.updated.Tags).To(BeEmpty())
	})

	It("maps ownership failures to 403", func() {
		svc.err = internal.ErrNotContentOwner
		w, body := do(http.MethodDelete, "/content/7", "")
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(body["error"]).To(HaveKeyWithValue("code", "NOT_CONTENT_OWNER"))
	})

	It("rejects a zero id", func() {
		w, _ := do(http.MethodGet, "/content/0", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for missing content", func() {
		svc.err = internal.ErrContentNotFound
		w, _ := do(http.MethodPut, "/content/9", `{"title":"x"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
