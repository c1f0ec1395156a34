package domain

import "strings"

// Role is a caller-asserted privilege label. The set of roles is
// closed; anything outside it is treated as the least-privileged role.
type Role string

const (
	// RoleAdmin sees every document and unredacted answers.
	RoleAdmin Role = "admin"
	// RoleManager sees every document but redacted answers.
	RoleManager Role = "manager"
	// RoleEmployee sees unrestricted documents and redacted answers.
	RoleEmployee Role = "employee"
	// RolePublic is the least-privileged fallback role.
	RolePublic Role = "public"
)

// Permissions describes what a role may see.
type Permissions struct {
	// AllDocuments grants access to every document regardless of
	// per-source restrictions.
	AllDocuments bool

	// SensitiveInfo disables redaction of sensitive terms in answers.
	SensitiveInfo bool
}

// ParseRole normalizes a caller-supplied role string. Unknown values
// map to RolePublic, so "unknown role" is never an error condition.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	case RoleEmployee:
		return RoleEmployee
	default:
		return RolePublic
	}
}

// Permissions returns the fixed permission set for the role.
// The switch is exhaustive over the closed role set; the default arm
// only catches Role values that bypassed ParseRole.
func (r Role) Permissions() Permissions {
	switch r {
	case RoleAdmin:
		return Permissions{AllDocuments: true, SensitiveInfo: true}
	case RoleManager:
		return Permissions{AllDocuments: true, SensitiveInfo: false}
	case RoleEmployee:
		return Permissions{AllDocuments: false, SensitiveInfo: false}
	case RolePublic:
		return Permissions{AllDocuments: false, SensitiveInfo: false}
	default:
		return Permissions{AllDocuments: false, SensitiveInfo: false}
	}
}

// AllRoles lists every known role, most privileged first.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee, RolePublic}
}
