package types

// MembershipType distinguishes the role a staff user holds on an engagement.
type MembershipType string

const (
	MembershipTypeTeamMember MembershipType = "TEAM_MEMBER"
	MembershipTypeReviewer   MembershipType = "REVIEWER"
)

func (t MembershipType) Valid() bool {
	return t == MembershipTypeTeamMember || t == MembershipTypeReviewer
}

// MembershipStatus tracks the lifecycle of a membership row.
type MembershipStatus int

const (
	MembershipStatusActive   MembershipStatus = 1
	MembershipStatusInactive MembershipStatus = 2
	MembershipStatusRevoked  MembershipStatus = 3
)

func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusInactive, MembershipStatusRevoked:
		return true
	}
	return false
}
