package v1

import (
	"net/http"

	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	logger         *logger.Logger
}

func NewCommentHandler(commentService service.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// @Summary Get a comment by ID
// @Description Retrieves a comment by ID
// @Tags Comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.CommentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /comments/{id} [get]
// @Security BearerAuth
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.commentService.GetComment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List comments for a survey
// @Description Returns a paginated listing of a survey's comments
// @Tags Comments
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param pagination query types.PaginationOptions true "Pagination"
// @Success 200 {object} dto.ListCommentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /surveys/{survey_id}/comments [get]
// @Security BearerAuth
func (h *CommentHandler) GetCommentsBySurvey(c *gin.Context) {
	surveyID, err := parseIDParam(c, "survey_id")
	if err != nil {
		c.Error(err)
		return
	}

	var pagination types.PaginationOptions
	if err := c.ShouldBindQuery(&pagination); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.commentService.GetCommentsBySurvey(c.Request.Context(), surveyID, &pagination)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
