package v1

import (
	"net/http"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       service.UserService
	membershipService service.MembershipService
	logger            *logger.Logger
}

func NewUserHandler(
	userService service.UserService,
	membershipService service.MembershipService,
	logger *logger.Logger,
) *UserHandler {
	return &UserHandler{
		userService:       userService,
		membershipService: membershipService,
		logger:            logger,
	}
}

// @Summary Provision the calling staff user
// @Description Creates the staff user record from the caller's token claims
// on first login and refreshes name and email on subsequent ones
// @Tags Users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User claims"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /users [put]
// @Security BearerAuth
func (h *UserHandler) CreateOrUpdateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.userService.CreateOrUpdateUser(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List staff users
// @Description Returns a filtered, paginated staff user listing
// @Tags Users
// @Produce json
// @Param filter query types.UserFilter true "Filter"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /users [get]
// @Security BearerAuth
func (h *UserHandler) GetUsers(c *gin.Context) {
	var filter types.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.userService.GetUsersPaginated(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get a staff user by ID
// @Description Retrieves a staff user by ID
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /users/{id} [get]
// @Security BearerAuth
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a staff user
// @Description Applies a partial update, including deactivation
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "User update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /users/{id} [patch]
// @Security BearerAuth
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.userService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List a user's assigned engagements
// @Description Returns the engagement ids the user holds an active
// membership on
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} int
// @Failure 404 {object} ierr.ErrorResponse
// @Router /users/{id}/engagements [get]
// @Security BearerAuth
func (h *UserHandler) GetAssignedEngagements(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	ids, err := h.membershipService.GetAssignedEngagementIDs(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ids)
}
