package dto

import (
	"github.com/engagehq/engage-api/internal/domain/membership"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateMembershipRequest struct {
	UserID int64                `json:"user_id" binding:"required"`
	Type   types.MembershipType `json:"type" binding:"required"`
}

func (r *CreateMembershipRequest) Validate() error {
	if r.UserID == 0 {
		return ierr.NewError("user_id is required").
			WithHint("A membership must reference a staff user").
			Mark(ierr.ErrValidation)
	}
	if !r.Type.Valid() {
		return ierr.NewError("invalid membership type").
			WithHint("Membership type must be TEAM_MEMBER or REVIEWER").
			WithReportableDetails(map[string]any{"type": string(r.Type)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UpdateMembershipStatusRequest revokes or reactivates a membership.
type UpdateMembershipStatusRequest struct {
	Status types.MembershipStatus `json:"status" binding:"required"`
}

func (r *UpdateMembershipStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return ierr.NewError("invalid membership status").
			WithHint("The requested membership status is not known").
			WithReportableDetails(map[string]any{"status": int(r.Status)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type MembershipResponse struct {
	*membership.Membership

	// User is expanded when the membership is listed per engagement
	User *UserResponse `json:"user,omitempty"`
}

type ListMembershipsResponse struct {
	Items []*MembershipResponse `json:"items"`
}
