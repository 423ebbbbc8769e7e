// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including site settings
	RoleAdmin UserRole = "admin"

	// Can create, publish, and retire editions
	RoleEditor UserRole = "editor"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleEditor:
		return 30
	case RoleMember:
		return 10
	default:
		return 0
	}
}
