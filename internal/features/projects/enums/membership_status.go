package projects_enums

// MembershipStatus is the approval state of a join request. The only legal
// transition is PENDING to ACTIVE.
type MembershipStatus string

const (
	MembershipStatusPending MembershipStatus = "PENDING"
	MembershipStatusActive  MembershipStatus = "ACTIVE"
)

func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusPending, MembershipStatusActive:
		return true
	default:
		return false
	}
}
