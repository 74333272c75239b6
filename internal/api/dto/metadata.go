package dto

import (
	"context"

	"github.com/engagehq/engage-api/internal/domain/metadata"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateMetadataRequest struct {
	TaxonID int64  `json:"taxon_id" binding:"required"`
	Value   string `json:"value" binding:"required"`

	ProjectID       string                   `json:"project_id,omitempty"`
	ProjectMetadata metadata.ProjectMetadata `json:"project_metadata,omitempty"`
}

func (r *CreateMetadataRequest) Validate() error {
	if r.TaxonID == 0 {
		return ierr.NewError("taxon_id is required").
			WithHint("A metadata entry must reference a taxon").
			Mark(ierr.ErrValidation)
	}
	if r.Value == "" {
		return ierr.NewError("value is required").
			WithHint("A metadata entry must carry a value").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateMetadataRequest) ToMetadata(ctx context.Context, engagementID int64) *metadata.EngagementMetadata {
	return &metadata.EngagementMetadata{
		EngagementID:    engagementID,
		TaxonID:         r.TaxonID,
		Value:           r.Value,
		ProjectID:       r.ProjectID,
		ProjectMetadata: r.ProjectMetadata,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

type UpdateMetadataRequest struct {
	Value           *string                   `json:"value,omitempty"`
	ProjectID       *string                   `json:"project_id,omitempty"`
	ProjectMetadata *metadata.ProjectMetadata `json:"project_metadata,omitempty"`
}

type MetadataResponse struct {
	*metadata.EngagementMetadata

	// Taxon is expanded so clients can render the attribute name
	Taxon *TaxonResponse `json:"taxon,omitempty"`
}

type ListMetadataResponse struct {
	Items []*MetadataResponse `json:"items"`
}

type CreateTaxonRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	DataType         string `json:"data_type"`
	Freeform         bool   `json:"freeform"`
	OnePerEngagement bool   `json:"one_per_engagement"`
}

func (r *CreateTaxonRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Taxon name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateTaxonRequest) ToTaxon(ctx context.Context, position int) *metadata.Taxon {
	dataType := r.DataType
	if dataType == "" {
		dataType = "text"
	}
	return &metadata.Taxon{
		TenantID:         types.GetTenantID(ctx),
		Name:             r.Name,
		Description:      r.Description,
		DataType:         dataType,
		Freeform:         r.Freeform,
		OnePerEngagement: r.OnePerEngagement,
		Position:         position,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

type UpdateTaxonRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	DataType         *string `json:"data_type,omitempty"`
	Freeform         *bool   `json:"freeform,omitempty"`
	OnePerEngagement *bool   `json:"one_per_engagement,omitempty"`
	Position         *int    `json:"position,omitempty"`
}

type TaxonResponse struct {
	*metadata.Taxon
}

type ListTaxaResponse struct {
	Items []*TaxonResponse `json:"items"`
}
