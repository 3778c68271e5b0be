package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	userDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/frahmantamala/rbac-dashboard/internal/user"
)

// RepositoryAPI is the credential store. Lookups return (nil, nil) when
// nothing matches.
type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type Service struct {
	repo       RepositoryAPI
	tokens     TokenGenerator
	audit      activitylog.RecorderAPI
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, tokens TokenGenerator, audit activitylog.RecorderAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		audit:      audit,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an account. No token is issued; the client logs in afterwards.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("Failed to register user", err)
	}
	if taken {
		return nil, internal.ErrEmailTaken
	}

	taken, err = s.repo.ExistsByUsername(ctx, dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("Failed to register user", err)
	}
	if taken {
		return nil, internal.ErrUsernameTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Failed to register user", err)
	}

	record := &userDatamodel.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         string(dto.RequestedRole()),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("Failed to register user", err)
	}

	s.audit.Record(ctx, record.ID, activitylog.ActionCreateUser, activitylog.ResourceAuth, map[string]any{
		"username": record.Username,
		"role":     record.Role,
	})

	s.logger.Info("user registered", "user_id", record.ID, "role", record.Role)
	return user.FromDataModel(record), nil
}

// Authenticate checks credentials and issues a session token carrying the stored role.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("Failed to log in", err)
	}
	// unknown emails leave no audit entry: there is no actor to attribute it to
	if record == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !record.IsActive || VerifyPassword(record.PasswordHash, dto.Password) != nil {
		s.audit.Record(ctx, record.ID, activitylog.ActionLogin, activitylog.ResourceAuth, map[string]any{
			"success": false,
		})
		return nil, internal.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, record.ID, now); err != nil {
		return nil, internal.NewInternalError("Failed to log in", err)
	}
	record.LastLogin = &now

	token, expiresAt, err := s.tokens.Issue(record.ID, rbac.Role(record.Role))
	if err != nil {
		return nil, internal.NewInternalError("Failed to issue token", err)
	}

	s.audit.Record(ctx, record.ID, activitylog.ActionLogin, activitylog.ResourceAuth, map[string]any{
		"success": true,
	})

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.FromDataModel(record),
	}, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*user.User, error) {
	record, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, internal.NewInternalError("Failed to load profile", err)
	}
	if record == nil || !record.IsActive {
		return nil, internal.ErrUserInactive
	}
	return user.FromDataModel(record), nil
}

// Logout never fails. Tokens are stateless, so all it does is leave an
// audit entry when the presented token is still valid.
func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return
	}
	s.audit.Record(ctx, claims.UserID, activitylog.ActionLogout, activitylog.ResourceAuth, nil)
}

// ResolveUser authenticates a bearer token and reloads the account it
// names. The returned principal carries the role currently stored, so a
// demotion or deactivation takes effect on the very next request.
func (s *Service) ResolveUser(ctx context.Context, token string) (*internal.User, error) {
	if token == "" {
		return nil, internal.ErrMissingToken
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	record, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, internal.NewInternalError("Failed to authenticate", err)
	}
	if record == nil || !record.IsActive {
		return nil, internal.ErrUserInactive
	}

	return &internal.User{
		ID:       record.ID,
		Username: record.Username,
		Email:    record.Email,
		Role:     rbac.Role(record.Role),
	}, nil
}
