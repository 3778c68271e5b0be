package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/auth"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/frahmantamala/rbac-dashboard/internal/transport"
	"github.com/frahmantamala/rbac-dashboard/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// stubService answers from canned values and remembers what it was asked.
type stubService struct {
	registered  auth.RegisterDTO
	loginResult *auth.LoginResult
	err         error
	principal   *internal.User
	loggedOut   string
}

func (s *stubService) Register(_ context.Context, dto auth.RegisterDTO) (*user.User, error) {
	s.registered = dto
	if s.err != nil {
		return nil, s.err
	}
	return &user.User{ID: 1, Username: dto.Username, Email: dto.Email, Role: rbac.RoleViewer}, nil
}

func (s *stubService) Authenticate(context.Context, auth.LoginDTO) (*auth.LoginResult, error) {
	return s.loginResult, s.err
}

func (s *stubService) Profile(_ context.Context, id int64) (*user.User, error) {
	return &user.User{ID: id, Username: "alice"}, s.err
}

func (s *stubService) Logout(_ context.Context, token string) {
	s.loggedOut = token
}

func (s *stubService) ResolveUser(_ context.Context, token string) (*internal.User, error) {
	if token == "" {
		return nil, internal.ErrMissingToken
	}
	if s.principal == nil {
		return nil, internal.ErrInvalidToken
	}
	return s.principal, nil
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	ExpectWithOffset(1, json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
	return body
}

func errorCode(w *httptest.ResponseRecorder) string {
	body := decode(w)
	errBody, ok := body["error"].(map[string]any)
	ExpectWithOffset(1, ok).To(BeTrue(), w.Body.String())
	return errBody["code"].(string)
}

var _ = Describe("Handler", func() {
	var (
		svc     *stubService
		handler *auth.Handler
	)

	BeforeEach(func() {
		svc = &stubService{}
		handler = auth.NewHandler(transport.NewBaseHandler(quietLogger), svc)
	})

	It("creates an account with 201", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"carol","email":"carol@example.com","password":"secret1"}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		body := decode(w)
		Expect(body["message"]).To(Equal("User registered successfully"))
		Expect(body["user"]).To(HaveKeyWithValue("username", "carol"))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))
	})

	It("rejects malformed JSON before reaching the service", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal("INVALID_REQUEST_BODY"))
		Expect(svc.registered.Username).To(BeEmpty())
	})

	It("maps a conflict to 400", func() {
		svc.err = internal.ErrEmailTaken
		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"carol","email":"carol@example.com","password":"secret1"}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal("EMAIL_TAKEN"))
	})

	It("flattens the login result next to the message", func() {
		svc.loginResult = &auth.LoginResult{Token: "tok", User: &user.User{ID: 1, Role: rbac.RoleEditor}}
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		body := decode(w)
		Expect(body).To(HaveKeyWithValue("message", "Login successful"))
		Expect(body).To(HaveKeyWithValue("token", "tok"))
		Expect(body).To(HaveKey("expiresAt"))
		Expect(body["user"]).To(HaveKeyWithValue("role", "editor"))
	})

	It("answers bad credentials with 401", func() {
		svc.err = internal.ErrInvalidCredentials
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal("INVALID_CREDENTIALS"))
	})

	It("always lets a client log out", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		w := httptest.NewRecorder()

		handler.Logout(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(HaveKeyWithValue("message", "Logout successful"))
		Expect(svc.loggedOut).To(Equal("abc.def.ghi"))
	})

	Describe("AuthMiddleware", func() {
		var reached *internal.User

		protected := func() http.Handler {
			return handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached, _ = internal.UserFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
		}

		BeforeEach(func() {
			reached = nil
		})

		It("returns 401 without a bearer token", func() {
			w := httptest.NewRecorder()
			protected().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(errorCode(w)).To(Equal("MISSING_TOKEN"))
			Expect(reached).To(BeNil())
		})

		It("returns 401 for a token that does not resolve", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			req.Header.Set("Authorization", "Bearer nope")
			w := httptest.NewRecorder()

			protected().ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(errorCode(w)).To(Equal("INVALID_TOKEN"))
		})

		It("attaches the resolved principal", func() {
			svc.principal = &internal.User{ID: 5, Username: "alice", Role: rbac.RoleEditor}
			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			req.Header.Set("Authorization", "bearer good")
			w := httptest.NewRecorder()

			protected().ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(reached).To(Equal(svc.principal))
		})
	})
})
