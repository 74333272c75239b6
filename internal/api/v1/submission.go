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

type SubmissionHandler struct {
	submissionService service.SubmissionService
	commentService    service.CommentService
	logger            *logger.Logger
}

func NewSubmissionHandler(
	submissionService service.SubmissionService,
	commentService service.CommentService,
	logger *logger.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		commentService:    commentService,
		logger:            logger,
	}
}

// @Summary Submit a survey response
// @Description Records a survey response. Only open engagements accept
// responses
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission body dto.CreateSubmissionRequest true "Submission request"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.submissionService.CreateSubmission(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a submission by ID
// @Description Retrieves a submission by ID
// @Tags Submissions
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /submissions/{submission_id} [get]
// @Security BearerAuth
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, err := parseIDParam(c, "submission_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.submissionService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List submissions for a survey
// @Description Returns a paginated listing of a survey's submissions
// @Tags Submissions
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param pagination query types.PaginationOptions true "Pagination"
// @Success 200 {object} dto.ListSubmissionsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /surveys/{survey_id}/submissions [get]
// @Security BearerAuth
func (h *SubmissionHandler) GetSubmissionsBySurvey(c *gin.Context) {
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

	response, err := h.submissionService.GetSubmissionsBySurvey(c.Request.Context(), surveyID, &pagination)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Review a submission
// @Description Records the review outcome for a submission's comments
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Param review body dto.ReviewSubmissionRequest true "Review outcome"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /submissions/{submission_id}/review [put]
// @Security BearerAuth
func (h *SubmissionHandler) ReviewSubmission(c *gin.Context) {
	id, err := parseIDParam(c, "submission_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.submissionService.ReviewSubmission(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List comments for a submission
// @Description Returns the comments extracted from one submission
// @Tags Comments
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /submissions/{submission_id}/comments [get]
// @Security BearerAuth
func (h *SubmissionHandler) GetSubmissionComments(c *gin.Context) {
	submissionID, err := parseIDParam(c, "submission_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.commentService.GetCommentsBySubmission(c.Request.Context(), submissionID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
