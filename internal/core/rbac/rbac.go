// Package rbac holds the role ladder and the access decisions derived from it.
// Everything here is pure so that handlers, middleware and services agree on
// a single definition of who may do what.
package rbac

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// DefaultRole is assigned to self-registered accounts that did not ask for one.
const DefaultRole = RoleViewer

var rank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

func AllRoles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleViewer}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Satisfies reports whether r is at least min on the viewer < editor < admin ladder.
// Unknown roles never satisfy anything.
func (r Role) Satisfies(min Role) bool {
	have, ok := rank[r]
	if !ok {
		return false
	}
	need, ok := rank[min]
	if !ok {
		return false
	}
	return have >= need
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("role must be one of admin, editor, viewer; got %q", s)
	}
	return r, nil
}

// SeesUnpublished reports whether a role may read draft and archived content.
func SeesUnpublished(r Role) bool {
	return r.Satisfies(RoleEditor)
}

// CanModifyContent is the ownership gate for content update and delete.
// Admins get no bypass: only the author may change their own content.
func CanModifyContent(actorID, authorID int64) bool {
	return actorID == authorID
}

// CanManageUser guards role changes and deletions against self-targeting.
func CanManageUser(actorID, targetID int64) bool {
	return actorID != targetID
}
