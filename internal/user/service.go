package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	userDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
)

// RepositoryAPI returns (nil, nil) from GetByID when the user does not exist.
type RepositoryAPI interface {
	List(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	UpdateRole(ctx context.Context, id int64, role rbac.Role) (*userDatamodel.User, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	audit  activitylog.RecorderAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, audit activitylog.RecorderAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

// ListUsers returns every account, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("Failed to fetch users", err)
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

// UpdateRole changes another user's role. The checks run in a fixed order:
// payload, self-targeting, existence.
func (s *Service) UpdateRole(ctx context.Context, actor *internal.User, targetID int64, dto UpdateRoleDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if !rbac.CanManageUser(actor.ID, targetID) {
		return nil, internal.ErrSelfRoleChange
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, internal.NewInternalError("Failed to update user role", err)
	}
	if target == nil {
		return nil, internal.ErrUserNotFound
	}

	oldRole := target.Role
	newRole := dto.Parsed()

	updated, err := s.repo.UpdateRole(ctx, targetID, newRole)
	if err != nil {
		s.logger.Error("failed to update role", "error", err, "target_id", targetID)
		return nil, internal.NewInternalError("Failed to update user role", err)
	}
	if updated == nil {
		return nil, internal.ErrUserNotFound
	}

	s.audit.Record(ctx, actor.ID, activitylog.ActionChangeRole, activitylog.ResourceUsers, map[string]any{
		"targetUser": target.Username,
		"oldRole":    oldRole,
		"newRole":    string(newRole),
	})

	s.logger.Info("user role changed", "actor_id", actor.ID, "target_id", targetID, "old_role", oldRole, "new_role", newRole)
	return FromDataModel(updated), nil
}

// DeleteUser removes another user's account. Content and audit entries
// written by that user are kept.
func (s *Service) DeleteUser(ctx context.Context, actor *internal.User, targetID int64) error {
	if !rbac.CanManageUser(actor.ID, targetID) {
		return internal.ErrSelfDelete
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return internal.NewInternalError("Failed to delete user", err)
	}
	if target == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		s.logger.Error("failed to delete user", "error", err, "target_id", targetID)
		return internal.NewInternalError("Failed to delete user", err)
	}

	s.audit.Record(ctx, actor.ID, activitylog.ActionDeleteUser, activitylog.ResourceUsers, map[string]any{
		"deletedUser":     target.Username,
		"deletedUserRole": target.Role,
	})

	s.logger.Info("user deleted", "actor_id", actor.ID, "target_id", targetID)
	return nil
}
