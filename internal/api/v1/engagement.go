package v1

import (
	"net/http"
	"strconv"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type EngagementHandler struct {
	engagementService service.EngagementService
	membershipService service.MembershipService
	logger            *logger.Logger
}

func NewEngagementHandler(
	engagementService service.EngagementService,
	membershipService service.MembershipService,
	logger *logger.Logger,
) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		membershipService: membershipService,
		logger:            logger,
	}
}

// @Summary Create a new engagement
// @Description Creates a new engagement in Draft status
// @Tags Engagements
// @Accept json
// @Produce json
// @Param engagement body dto.CreateEngagementRequest true "Engagement request"
// @Success 201 {object} dto.EngagementResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /engagements [post]
// @Security BearerAuth
func (h *EngagementHandler) CreateEngagement(c *gin.Context) {
	var req dto.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.engagementService.CreateEngagement(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get an engagement by ID
// @Description Retrieves an engagement by ID
// @Tags Engagements
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Success 200 {object} dto.EngagementResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id} [get]
func (h *EngagementHandler) GetEngagement(c *gin.Context) {
	id, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.engagementService.GetEngagement(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Search engagements
// @Description Returns a filtered, sorted and paginated engagement listing.
// Draft engagements are only visible to callers holding a team membership on
// them; admins see everything.
// @Tags Engagements
// @Accept json
// @Produce json
// @Param filter body types.EngagementFilter true "Search filter"
// @Success 200 {object} dto.ListEngagementsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /engagements/search [post]
// @Security BearerAuth
func (h *EngagementHandler) SearchEngagements(c *gin.Context) {
	var filter types.EngagementFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	if err := h.scopeDraftVisibility(c, &filter); err != nil {
		c.Error(err)
		return
	}

	response, err := h.engagementService.GetEngagementsPaginated(ctx, &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List engagements
// @Description Returns every engagement, optionally restricted to the given
// stored status codes
// @Tags Engagements
// @Produce json
// @Param status query []int false "Status codes" collectionFormat(multi)
// @Success 200 {array} dto.EngagementResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /engagements [get]
func (h *EngagementHandler) GetEngagements(c *gin.Context) {
	statusParams := c.QueryArray("status")
	if len(statusParams) == 0 {
		response, err := h.engagementService.GetAllEngagements(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	statuses := make([]types.EngagementStatus, 0, len(statusParams))
	for _, raw := range statusParams {
		code, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(ierr.NewError("invalid status code").
				WithHint("Status codes must be integers").
				WithReportableDetails(map[string]any{"status": raw}).
				Mark(ierr.ErrValidation))
			return
		}
		statuses = append(statuses, types.EngagementStatus(code))
	}

	response, err := h.engagementService.GetEngagementsByStatus(c.Request.Context(), statuses)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update an engagement
// @Description Applies a partial update. Absent fields keep their stored values
// @Tags Engagements
// @Accept json
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Param engagement body dto.UpdateEngagementRequest true "Engagement update"
// @Success 200 {object} dto.EngagementResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id} [put]
// @Security BearerAuth
func (h *EngagementHandler) UpdateEngagement(c *gin.Context) {
	id, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.engagementService.UpdateEngagement(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// scopeDraftVisibility restricts the filter's draft visibility to the
// caller's assigned engagements unless the caller is an admin. A nil
// AssignedEngagements slice means unrestricted access, an empty one hides
// every draft.
func (h *EngagementHandler) scopeDraftVisibility(c *gin.Context, filter *types.EngagementFilter) error {
	ctx := c.Request.Context()
	if lo.Contains(types.GetRoles(ctx), types.RoleAdmin) {
		filter.AssignedEngagements = nil
		return nil
	}

	userID := types.GetStaffUserID(ctx)
	if userID == 0 {
		filter.AssignedEngagements = []int64{}
		return nil
	}

	assigned, err := h.membershipService.GetAssignedEngagementIDs(ctx, userID)
	if err != nil {
		return err
	}
	if assigned == nil {
		assigned = []int64{}
	}
	filter.AssignedEngagements = assigned
	return nil
}
