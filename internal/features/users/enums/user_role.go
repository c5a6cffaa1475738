package users_enums

// UserRole is account-wide and fixed at registration.
type UserRole string

const (
	UserRoleProfessor UserRole = "PROFESSOR"
	UserRoleStudent   UserRole = "STUDENT"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleProfessor, UserRoleStudent:
		return true
	default:
		return false
	}
}
