package v1

import (
	"net/http"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/gin-gonic/gin"
)

type MetadataHandler struct {
	metadataService service.MetadataService
	logger          *logger.Logger
}

func NewMetadataHandler(metadataService service.MetadataService, logger *logger.Logger) *MetadataHandler {
	return &MetadataHandler{metadataService: metadataService, logger: logger}
}

// @Summary Attach metadata to an engagement
// @Description Records a taxon value on the engagement. Taxa flagged
// one-per-engagement reject a second value
// @Tags Metadata
// @Accept json
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Param metadata body dto.CreateMetadataRequest true "Metadata request"
// @Success 201 {object} dto.MetadataResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/metadata [post]
// @Security BearerAuth
func (h *MetadataHandler) CreateMetadata(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.metadataService.CreateMetadata(c.Request.Context(), engagementID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List an engagement's metadata
// @Description Returns the engagement's metadata with expanded taxa
// @Tags Metadata
// @Produce json
// @Param engagement_id path int true "Engagement ID"
// @Success 200 {object} dto.ListMetadataResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /engagements/{engagement_id}/metadata [get]
// @Security BearerAuth
func (h *MetadataHandler) GetMetadata(c *gin.Context) {
	engagementID, err := parseIDParam(c, "engagement_id")
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.metadataService.GetMetadataByEngagement(c.Request.Context(), engagementID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a metadata value
// @Description Changes the stored value of one metadata row
// @Tags Metadata
// @Accept json
// @Produce json
// @Param id path int true "Metadata ID"
// @Param metadata body dto.UpdateMetadataRequest true "Metadata update"
// @Success 200 {object} dto.MetadataResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /metadata/{id} [patch]
// @Security BearerAuth
func (h *MetadataHandler) UpdateMetadata(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.metadataService.UpdateMetadata(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a metadata value
// @Description Removes one metadata row from its engagement
// @Tags Metadata
// @Produce json
// @Param id path int true "Metadata ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /metadata/{id} [delete]
// @Security BearerAuth
func (h *MetadataHandler) DeleteMetadata(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.metadataService.DeleteMetadata(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Create a taxon
// @Description Adds a taxon to the tenant's metadata taxonomy
// @Tags Metadata
// @Accept json
// @Produce json
// @Param taxon body dto.CreateTaxonRequest true "Taxon request"
// @Success 201 {object} dto.TaxonResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /taxa [post]
// @Security BearerAuth
func (h *MetadataHandler) CreateTaxon(c *gin.Context) {
	var req dto.CreateTaxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.metadataService.CreateTaxon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List taxa
// @Description Returns the tenant's metadata taxonomy in position order
// @Tags Metadata
// @Produce json
// @Success 200 {object} dto.ListTaxaResponse
// @Router /taxa [get]
// @Security BearerAuth
func (h *MetadataHandler) GetTaxa(c *gin.Context) {
	response, err := h.metadataService.GetTaxa(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a taxon
// @Description Applies a partial update to a taxon
// @Tags Metadata
// @Accept json
// @Produce json
// @Param id path int true "Taxon ID"
// @Param taxon body dto.UpdateTaxonRequest true "Taxon update"
// @Success 200 {object} dto.TaxonResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /taxa/{id} [patch]
// @Security BearerAuth
func (h *MetadataHandler) UpdateTaxon(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateTaxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.metadataService.UpdateTaxon(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a taxon
// @Description Removes a taxon and its values from the taxonomy
// @Tags Metadata
// @Produce json
// @Param id path int true "Taxon ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /taxa/{id} [delete]
// @Security BearerAuth
func (h *MetadataHandler) DeleteTaxon(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.metadataService.DeleteTaxon(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
