package v1

import (
	"net/http"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/gin-gonic/gin"
)

type WidgetHandler struct {
	widgetService service.WidgetService
	logger        *logger.Logger
}

func NewWidgetHandler(widgetService service.WidgetService, logger *logger.Logger) *WidgetHandler {
	return &WidgetHandler{widgetService: widgetService, logger: logger}
}

// @Summary Create a widget
// @Description Adds a widget to an engagement. Each engagement holds at most
// one widget of a given type
// @Tags Widgets
// @Accept json
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Param widget body dto.CreateWidgetRequest true "Widget request"
// @Success 201 {object} dto.WidgetResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/widgets [post]
// @Security BearerAuth
func (h *WidgetHandler) CreateWidget(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.widgetService.CreateWidget(c.Request.Context(), engagementID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List widgets for an engagement
// @Description Returns the engagement's widgets in display order
// @Tags Widgets
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Success 200 {object} dto.ListWidgetsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/widgets [get]
func (h *WidgetHandler) GetWidgets(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.widgetService.GetWidgetsByEngagement(c.Request.Context(), engagementID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a widget
// @Description Applies a partial update to a widget
// @Tags Widgets
// @Accept json
// @Produce json
// @Param id path int true "Widget ID"
// @Param widget body dto.UpdateWidgetRequest true "Widget update"
// @Success 200 {object} dto.WidgetResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /widgets/{id} [patch]
// @Security BearerAuth
func (h *WidgetHandler) UpdateWidget(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.widgetService.UpdateWidget(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a widget
// @Description Removes a widget from its engagement
// @Tags Widgets
// @Produce json
// @Param id path int true "Widget ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /widgets/{id} [delete]
// @Security BearerAuth
func (h *WidgetHandler) DeleteWidget(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.widgetService.DeleteWidget(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reorder an engagement's widgets
// @Description Applies a new display order. The request must list every
// widget of the engagement exactly once
// @Tags Widgets
// @Accept json
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Param order body dto.ReorderWidgetsRequest true "New widget order"
// @Success 200 {object} dto.ListWidgetsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/widgets/sort_index [patch]
// @Security BearerAuth
func (h *WidgetHandler) ReorderWidgets(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.ReorderWidgetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.widgetService.ReorderWidgets(c.Request.Context(), engagementID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
