package users_enums

// MembershipRole is the permission tier a user holds within one project.
type MembershipRole string

const (
	MembershipRoleLead   MembershipRole = "LEAD"
	MembershipRoleAdmin  MembershipRole = "ADMIN"
	MembershipRoleMember MembershipRole = "MEMBER"
)

// IsValid validates the MembershipRole
func (r MembershipRole) IsValid() bool {
	switch r {
	case MembershipRoleLead, MembershipRoleAdmin, MembershipRoleMember:
		return true
	default:
		return false
	}
}
