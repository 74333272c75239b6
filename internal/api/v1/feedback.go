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

type FeedbackHandler struct {
	feedbackService service.FeedbackService
	logger          *logger.Logger
}

func NewFeedbackHandler(feedbackService service.FeedbackService, logger *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, logger: logger}
}

// @Summary Submit site feedback
// @Description Records feedback from a visitor
// @Tags Feedback
// @Accept json
// @Produce json
// @Param feedback body dto.CreateFeedbackRequest true "Feedback request"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /feedbacks [post]
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.feedbackService.CreateFeedback(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List feedback
// @Description Returns a filtered, paginated feedback listing
// @Tags Feedback
// @Produce json
// @Param filter query types.FeedbackFilter true "Filter"
// @Success 200 {object} dto.ListFeedbackResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /feedbacks [get]
// @Security BearerAuth
func (h *FeedbackHandler) GetFeedbacks(c *gin.Context) {
	var filter types.FeedbackFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.feedbackService.GetFeedbackPaginated(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get feedback by ID
// @Description Retrieves one feedback record
// @Tags Feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /feedbacks/{id} [get]
// @Security BearerAuth
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update feedback
// @Description Applies a partial update, typically archiving after triage
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path int true "Feedback ID"
// @Param feedback body dto.UpdateFeedbackRequest true "Feedback update"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /feedbacks/{id} [patch]
// @Security BearerAuth
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.feedbackService.UpdateFeedback(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete feedback
// @Description Removes a feedback record
// @Tags Feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /feedbacks/{id} [delete]
// @Security BearerAuth
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.feedbackService.DeleteFeedback(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
