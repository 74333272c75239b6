package dto

import (
	"context"
	"encoding/json"

	"github.com/engagehq/engage-api/internal/domain/survey"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateSurveyRequest struct {
	Name         string          `json:"name" binding:"required"`
	FormJSON     json.RawMessage `json:"form_json,omitempty"`
	EngagementID *int64          `json:"engagement_id,omitempty"`
	IsHidden     bool            `json:"is_hidden"`
	IsTemplate   bool            `json:"is_template"`
}

func (r *CreateSurveyRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Survey name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateSurveyRequest) ToSurvey(ctx context.Context) *survey.Survey {
	formJSON := r.FormJSON
	if len(formJSON) == 0 {
		formJSON = json.RawMessage(`{}`)
	}
	return &survey.Survey{
		Name:         r.Name,
		FormJSON:     formJSON,
		EngagementID: r.EngagementID,
		IsHidden:     r.IsHidden,
		IsTemplate:   r.IsTemplate,
		TenantID:     types.GetTenantID(ctx),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

type UpdateSurveyRequest struct {
	Name       *string         `json:"name,omitempty"`
	FormJSON   json.RawMessage `json:"form_json,omitempty"`
	IsHidden   *bool           `json:"is_hidden,omitempty"`
	IsTemplate *bool           `json:"is_template,omitempty"`
}

// LinkSurveyRequest attaches an unlinked survey to an engagement.
type LinkSurveyRequest struct {
	EngagementID int64 `json:"engagement_id" binding:"required"`
}

type SurveyResponse struct {
	*survey.Survey
}

// ListSurveysResponse represents a paginated list of surveys
type ListSurveysResponse = types.ListResponse[*SurveyResponse]
