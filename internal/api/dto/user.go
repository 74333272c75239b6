package dto

import (
	"github.com/engagehq/engage-api/internal/domain/user"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

// CreateUserRequest provisions a staff user from the caller's token claims
// on first login.
type CreateUserRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" binding:"required,email"`
}

func (r *CreateUserRequest) Validate() error {
	if r.ExternalID == "" {
		return ierr.NewError("external_id is required").
			WithHint("The identity provider subject is required").
			Mark(ierr.ErrValidation)
	}
	if r.Email == "" {
		return ierr.NewError("email is required").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type UpdateUserRequest struct {
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Status    *user.UserStatus `json:"status,omitempty"`
}

type UserResponse struct {
	*user.User
}

// ListUsersResponse represents a paginated list of staff users
type ListUsersResponse = types.ListResponse[*UserResponse]
