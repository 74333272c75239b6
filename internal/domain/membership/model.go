package membership

import (
	"github.com/engagehq/engage-api/internal/types"
)

// Membership links a staff user to an engagement with a role. A membership
// is versioned: revoking or changing the role writes a new row with a bumped
// version and flips is_latest on the superseded row.
type Membership struct {
	ID int64 `db:"id" json:"id"`

	EngagementID int64 `db:"engagement_id" json:"engagement_id"`
	UserID       int64 `db:"user_id" json:"user_id"`

	Type   types.MembershipType   `db:"type" json:"type"`
	Status types.MembershipStatus `db:"status" json:"status"`

	IsLatest bool `db:"is_latest" json:"is_latest"`
	Version  int  `db:"version" json:"version"`

	types.BaseModel
}
