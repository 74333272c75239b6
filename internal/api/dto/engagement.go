package dto

import (
	"context"
	"encoding/json"
	"time"

	"github.com/engagehq/engage-api/internal/domain/engagement"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateEngagementRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	RichDescription json.RawMessage `json:"rich_description,omitempty"`
	Content         string          `json:"content"`
	RichContent     json.RawMessage `json:"rich_content,omitempty"`
	StartDate       time.Time       `json:"start_date" binding:"required"`
	EndDate         time.Time       `json:"end_date" binding:"required"`
	BannerFilename  string          `json:"banner_filename,omitempty"`
}

func (r *CreateEngagementRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Engagement name is required").
			Mark(ierr.ErrValidation)
	}
	if r.EndDate.Before(r.StartDate) {
		return ierr.NewError("end_date precedes start_date").
			WithHint("The engagement must end on or after the day it starts").
			WithReportableDetails(map[string]any{
				"start_date": r.StartDate,
				"end_date":   r.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateEngagementRequest) ToEngagement(ctx context.Context) *engagement.Engagement {
	tenantID := types.GetTenantID(ctx)
	return &engagement.Engagement{
		Name:            r.Name,
		Description:     r.Description,
		RichDescription: r.RichDescription,
		Content:         r.Content,
		RichContent:     r.RichContent,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StatusID:        types.EngagementStatusDraft,
		BannerFilename:  r.BannerFilename,
		TenantID:        &tenantID,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

// UpdateEngagementRequest carries a partial engagement update. Absent fields
// keep their stored values.
type UpdateEngagementRequest struct {
	Name            *string                 `json:"name,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	RichDescription json.RawMessage         `json:"rich_description,omitempty"`
	Content         *string                 `json:"content,omitempty"`
	RichContent     json.RawMessage         `json:"rich_content,omitempty"`
	StartDate       *time.Time              `json:"start_date,omitempty"`
	EndDate         *time.Time              `json:"end_date,omitempty"`
	StatusID        *types.EngagementStatus `json:"status_id,omitempty"`
	PublishedDate   *time.Time              `json:"published_date,omitempty"`
	ScheduledDate   *time.Time              `json:"scheduled_date,omitempty"`
	BannerFilename  *string                 `json:"banner_filename,omitempty"`
}

func (r *UpdateEngagementRequest) Validate() error {
	if r.StatusID != nil && !r.StatusID.Valid() {
		return ierr.NewError("invalid engagement status").
			WithHint("The requested status code is not a known engagement status").
			WithReportableDetails(map[string]any{"status_id": int(*r.StatusID)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type EngagementResponse struct {
	*engagement.Engagement

	// DisplayStatus is derived from the stored status and start date at
	// response time.
	DisplayStatus types.EngagementDisplayStatus `json:"display_status"`
}

func NewEngagementResponse(e *engagement.Engagement, now time.Time) *EngagementResponse {
	return &EngagementResponse{
		Engagement:    e,
		DisplayStatus: e.DisplayStatus(now),
	}
}

// ListEngagementsResponse represents a paginated list of engagements
type ListEngagementsResponse = types.ListResponse[*EngagementResponse]
