package auth

import "github.com/frahmantamala/rbac-dashboard/internal/core/rbac"

// RoleChecker decides whether an actor's stored role clears a route's floor.
type RoleChecker interface {
	HasRole(actual, required rbac.Role) bool
}

type DefaultRoleChecker struct{}

func NewRoleChecker() RoleChecker {
	return DefaultRoleChecker{}
}

func (DefaultRoleChecker) HasRole(actual, required rbac.Role) bool {
	return actual.Satisfies(required)
}
