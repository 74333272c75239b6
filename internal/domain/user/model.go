package user

import (
	"fmt"

	"github.com/engagehq/engage-api/internal/types"
)

// UserStatus is the account state of a staff user.
type UserStatus int

const (
	UserStatusActive   UserStatus = 1
	UserStatusInactive UserStatus = 2
)

// User is a staff user provisioned from the identity provider on first
// login. ExternalID is the subject claim of the user's token.
type User struct {
	ID int64 `db:"id" json:"id"`

	ExternalID string `db:"external_id" json:"external_id"`
	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Email      string `db:"email" json:"email"`

	Status   UserStatus `db:"status" json:"status"`
	TenantID int64      `db:"tenant_id" json:"tenant_id"`

	types.BaseModel
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
