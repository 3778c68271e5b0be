package auth

import (
	"strings"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
)

type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Normalize trims input and lower-cases the email so uniqueness is case-insensitive.
func (d *RegisterDTO) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Role = strings.TrimSpace(d.Role)
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MinLength(3).MaxLength(50)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("role", d.Role).Optional().OneOf(internal.ErrCodeInvalidRole,
		string(rbac.RoleAdmin), string(rbac.RoleEditor), string(rbac.RoleViewer))
	return v.Validate()
}

// RequestedRole returns the role asked for, or the default for new accounts.
func (d RegisterDTO) RequestedRole() rbac.Role {
	if d.Role == "" {
		return rbac.DefaultRole
	}
	return rbac.Role(d.Role)
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginDTO) Normalize() {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	return v.Validate()
}
