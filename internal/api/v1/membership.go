package v1

import (
	"net/http"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipService service.MembershipService
	logger            *logger.Logger
}

func NewMembershipHandler(membershipService service.MembershipService, logger *logger.Logger) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService, logger: logger}
}

// @Summary Add a team member to an engagement
// @Description Creates an active membership for the user on the engagement
// @Tags Memberships
// @Accept json
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Param membership body dto.CreateMembershipRequest true "Membership request"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/members [post]
// @Security BearerAuth
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.membershipService.CreateMembership(c.Request.Context(), engagementID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List an engagement's team members
// @Description Returns the latest membership version per user
// @Tags Memberships
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Success 200 {object} dto.ListMembershipsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/members [get]
// @Security BearerAuth
func (h *MembershipHandler) GetMemberships(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.membershipService.GetMembershipsByEngagement(c.Request.Context(), engagementID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Change a membership's status
// @Description Revokes or reinstates a user's membership on an engagement.
// The change is recorded as a new membership version
// @Tags Memberships
// @Accept json
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Param user_id path int true "User ID"
// @Param status body dto.UpdateMembershipStatusRequest true "New status"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/members/{user_id}/status [patch]
// @Security BearerAuth
func (h *MembershipHandler) UpdateMembershipStatus(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateMembershipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.membershipService.UpdateMembershipStatus(c.Request.Context(), engagementID, userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
