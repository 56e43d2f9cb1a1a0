package model

// Role identifies which dashboard a user signs in to.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r may manage other students' assessments.
func (r Role) IsStaff() bool {
	return r == RoleTeacher || r == RoleAdmin
}
