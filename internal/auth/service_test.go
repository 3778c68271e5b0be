package auth_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	"github.com/frahmantamala/rbac-dashboard/internal/auth"
	userDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is an in-memory credential store.
type mockUserRepository struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*userDatamodel.User
	err       error
	createErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{nextID: 1, users: map[int64]*userDatamodel.User{}}
}

func (m *mockUserRepository) add(username, email, password string, role rbac.Role, active bool) *userDatamodel.User {
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	Expect(err).NotTo(HaveOccurred())
	u := &userDatamodel.User{Username: username, Email: email, PasswordHash: hash, Role: string(role), IsActive: active}
	Expect(m.Create(context.Background(), u)).To(Succeed())
	return u
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*userDatamodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id int64) (*userDatamodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *mockUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Create(_ context.Context, u *userDatamodel.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepository) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *mockUserRepository) setRole(id int64, role rbac.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Role = string(role)
}

func (m *mockUserRepository) remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

var _ = Describe("Service", func() {
	var (
		repo    *mockUserRepository
		audit   *mockRecorder
		tokens  *auth.JWTTokenGenerator
		service *auth.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		audit = &mockRecorder{}
		tokens = auth.NewJWTTokenGenerator("service-test-secret-1234", 0)
		service = auth.NewService(repo, tokens, audit, bcrypt.MinCost, quietLogger)
		ctx = context.Background()
	})

	Describe("Register", func() {
		It("defaults the role to viewer and never returns the hash", func() {
			u, err := service.Register(ctx, auth.RegisterDTO{Username: "carol", Email: " Carol@Example.com ", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.Role).To(Equal(rbac.RoleViewer))
			Expect(u.Email).To(Equal("carol@example.com"))

			stored, _ := repo.GetByID(ctx, u.ID)
			Expect(stored.PasswordHash).NotTo(Equal("secret1"))
			Expect(auth.VerifyPassword(stored.PasswordHash, "secret1")).To(Succeed())
		})

		It("honours a requested role and audits the creation", func() {
			u, err := service.Register(ctx, auth.RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "secret1", Role: "editor"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(rbac.RoleEditor))

			entries := audit.Entries()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ActorID).To(Equal(u.ID))
			Expect(entries[0].Action).To(Equal(activitylog.ActionCreateUser))
			Expect(entries[0].Details).To(HaveKeyWithValue("role", "editor"))
		})

		It("rejects an unknown role", func() {
			_, err := service.Register(ctx, auth.RegisterDTO{Username: "mallory", Email: "m@example.com", Password: "secret1", Role: "owner"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("rejects short usernames and passwords", func() {
			_, err := service.Register(ctx, auth.RegisterDTO{Username: "ab", Email: "ab@example.com", Password: "123"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("reports a taken email before a taken username", func() {
			repo.add("alice", "alice@example.com", "secret1", rbac.RoleEditor, true)

			_, err := service.Register(ctx, auth.RegisterDTO{Username: "alice", Email: "ALICE@example.com", Password: "secret1"})
			Expect(err).To(MatchError(internal.ErrEmailTaken))

			_, err = service.Register(ctx, auth.RegisterDTO{Username: "alice", Email: "other@example.com", Password: "secret1"})
			Expect(err).To(MatchError(internal.ErrUsernameTaken))
			Expect(audit.Entries()).To(BeEmpty())
		})

		It("passes through a conflict raised by the store", func() {
			repo.createErr = internal.ErrUserExists
			_, err := service.Register(ctx, auth.RegisterDTO{Username: "race", Email: "race@example.com", Password: "secret1"})
			Expect(err).To(MatchError(internal.ErrUserExists))
		})
	})

	Describe("Authenticate", func() {
		var alice *userDatamodel.User

		BeforeEach(func() {
			alice = repo.add("alice", "alice@example.com", "secret1", rbac.RoleEditor, true)
		})

		It("issues a token and stamps the last login", func() {
			result, err := service.Authenticate(ctx, auth.LoginDTO{Email: "alice@example.com", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).NotTo(BeEmpty())
			Expect(result.User.Role).To(Equal(rbac.RoleEditor))
			Expect(result.User.LastLogin).NotTo(BeNil())

			claims, err := tokens.Verify(result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(alice.ID))

			Expect(audit.Entries()).To(ContainElement(recorded{alice.ID, activitylog.ActionLogin, activitylog.ResourceAuth, map[string]any{"success": true}}))
		})

		It("gives the same answer for unknown email and wrong password", func() {
			_, unknownErr := service.Authenticate(ctx, auth.LoginDTO{Email: "nobody@example.com", Password: "secret1"})
			_, wrongErr := service.Authenticate(ctx, auth.LoginDTO{Email: "alice@example.com", Password: "nope123"})

			Expect(unknownErr).To(MatchError(internal.ErrInvalidCredentials))
			Expect(wrongErr).To(MatchError(internal.ErrInvalidCredentials))
			Expect(unknownErr.Error()).To(Equal(wrongErr.Error()))
		})

		It("audits a failed attempt against a known account only", func() {
			_, _ = service.Authenticate(ctx, auth.LoginDTO{Email: "nobody@example.com", Password: "secret1"})
			Expect(audit.Entries()).To(BeEmpty())

			_, _ = service.Authenticate(ctx, auth.LoginDTO{Email: "alice@example.com", Password: "wrong12"})
			entries := audit.Entries()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Details).To(HaveKeyWithValue("success", false))
		})

		It("refuses inactive accounts", func() {
			bob := repo.add("bob", "bob@example.com", "secret1", rbac.RoleViewer, false)
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: bob.Email, Password: "secret1"})
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("wraps store failures as internal errors", func() {
			repo.err = errors.New("connection refused")
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "alice@example.com", Password: "secret1"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("ResolveUser", func() {
		var (
			alice *userDatamodel.User
			token string
		)

		BeforeEach(func() {
			alice = repo.add("alice", "alice@example.com", "secret1", rbac.RoleEditor, true)
			result, err := service.Authenticate(ctx, auth.LoginDTO{Email: alice.Email, Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())
			token = result.Token
		})

		It("requires a token", func() {
			_, err := service.ResolveUser(ctx, "")
			Expect(err).To(MatchError(internal.ErrMissingToken))
		})

		It("rejects a bad token", func() {
			_, err := service.ResolveUser(ctx, token+"x")
			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("uses the stored role rather than the one in the token", func() {
			repo.setRole(alice.ID, rbac.RoleViewer)

			principal, err := service.ResolveUser(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.ID).To(Equal(alice.ID))
			Expect(principal.Role).To(Equal(rbac.RoleViewer))
		})

		It("rejects a token whose account was deleted", func() {
			repo.remove(alice.ID)
			_, err := service.ResolveUser(ctx, token)
			Expect(err).To(MatchError(internal.ErrUserInactive))
		})

		It("rejects an expired token", func() {
			tokens.Now = func() time.Time { return time.Now().Add(25 * time.Hour) }
			_, err := service.ResolveUser(ctx, token)
			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("Logout", func() {
		It("audits only when the token is valid", func() {
			alice := repo.add("alice", "alice@example.com", "secret1", rbac.RoleEditor, true)
			token, _, err := tokens.Issue(alice.ID, rbac.RoleEditor)
			Expect(err).NotTo(HaveOccurred())

			service.Logout(ctx, "")
			service.Logout(ctx, "garbage")
			Expect(audit.Entries()).To(BeEmpty())

			service.Logout(ctx, token)
			entries := audit.Entries()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Action).To(Equal(activitylog.ActionLogout))
			Expect(entries[0].ActorID).To(Equal(alice.ID))
		})
	})

	Describe("Profile", func() {
		It("returns the public view", func() {
			alice := repo.add("alice", "alice@example.com", "secret1", rbac.RoleEditor, true)
			u, err := service.Profile(ctx, alice.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("alice"))
		})

		It("fails for a missing account", func() {
			_, err := service.Profile(ctx, 404)
			Expect(err).To(MatchError(internal.ErrUserInactive))
		})
	})
})
