package entity

import "strings"

type UserRole string

const (
	RoleStaff      UserRole = "STAFF"
	RoleSupervizor UserRole = "SUPERVIZOR"
	RoleManager    UserRole = "MANAGER"
	RoleDeveloper  UserRole = "DEVELOPER"
	RoleKasiyer    UserRole = "KASIYER"
	// RoleUnset is stored as NULL.
	RoleUnset UserRole = ""
)

// ParseRole normalizes free-form input to a known role, or RoleUnset.
func ParseRole(s string) UserRole {
	switch r := UserRole(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleStaff, RoleSupervizor, RoleManager, RoleDeveloper, RoleKasiyer:
		return r
	default:
		return RoleUnset
	}
}

type User struct {
	BaseNoDelete
	Username     string   `db:"username"`
	PasswordHash string   `db:"password"`
	FullName     string   `db:"full_name"`
	Role         UserRole `db:"role"`
	Phone        *string  `db:"phone"`
}
