package domain

// Role is the closed set of account roles. Comparison is exact match; no
// hierarchy, except that Admin bypasses identity checks and the profile
// visibility rules.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleAuthor Role = "Author"
	RoleNone   Role = "None"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleNone:
		return true
	}
	return false
}

// Code returns the numeric representation stored in the users table.
func (r Role) Code() int {
	switch r {
	case RoleAdmin:
		return 0
	case RoleAuthor:
		return 1
	default:
		return 2
	}
}

// RoleFromCode converts a stored numeric code back to a Role. Unknown codes
// collapse to RoleNone rather than failing: a row must always load.
func RoleFromCode(code int) Role {
	switch code {
	case 0:
		return RoleAdmin
	case 1:
		return RoleAuthor
	default:
		return RoleNone
	}
}
