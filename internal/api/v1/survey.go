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

type SurveyHandler struct {
	surveyService service.SurveyService
	logger        *logger.Logger
}

func NewSurveyHandler(surveyService service.SurveyService, logger *logger.Logger) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService, logger: logger}
}

// @Summary Create a new survey
// @Description Creates a new survey, optionally attached to an engagement
// @Tags Surveys
// @Accept json
// @Produce json
// @Param survey body dto.CreateSurveyRequest true "Survey request"
// @Success 201 {object} dto.SurveyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /surveys [post]
// @Security BearerAuth
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.surveyService.CreateSurvey(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a survey by ID
// @Description Retrieves a survey by ID
// @Tags Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Success 200 {object} dto.SurveyResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /surveys/{survey_id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id, err := parseIDParam(c, "survey_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.surveyService.GetSurvey(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List surveys
// @Description Returns a filtered, paginated survey listing
// @Tags Surveys
// @Produce json
// @Param filter query types.SurveyFilter true "Filter"
// @Success 200 {object} dto.ListSurveysResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /surveys [get]
// @Security BearerAuth
func (h *SurveyHandler) GetSurveys(c *gin.Context) {
	var filter types.SurveyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.surveyService.GetSurveys(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a survey
// @Description Applies a partial update to a survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param survey body dto.UpdateSurveyRequest true "Survey update"
// @Success 200 {object} dto.SurveyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /surveys/{survey_id} [put]
// @Security BearerAuth
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id, err := parseIDParam(c, "survey_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.surveyService.UpdateSurvey(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Link a survey to an engagement
// @Description Attaches an unlinked survey to an engagement
// @Tags Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param engagement_id path int true "Engagement ID"
// @Success 200 {object} dto.SurveyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /surveys/{survey_id}/link/engagement/{engagement_id} [put]
// @Security BearerAuth
func (h *SurveyHandler) LinkSurvey(c *gin.Context) {
	id, err := parseIDParam(c, "survey_id")
	if err != nil {
		c.Error(err)
		return
	}
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.surveyService.LinkSurvey(c.Request.Context(), id, engagementID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Unlink a survey from its engagement
// @Description Detaches a survey. Rejected once the survey holds submissions
// @Tags Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Success 200 {object} dto.SurveyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /surveys/{survey_id}/unlink [put]
// @Security BearerAuth
func (h *SurveyHandler) UnlinkSurvey(c *gin.Context) {
	id, err := parseIDParam(c, "survey_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.surveyService.UnlinkSurvey(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
