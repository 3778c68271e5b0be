package user

import (
	"strings"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
)

type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d UpdateRoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("role", strings.TrimSpace(d.Role)).Required().OneOf(internal.ErrCodeInvalidRole,
		string(rbac.RoleAdmin), string(rbac.RoleEditor), string(rbac.RoleViewer))
	return v.Validate()
}

func (d UpdateRoleDTO) Parsed() rbac.Role {
	return rbac.Role(strings.TrimSpace(d.Role))
}
