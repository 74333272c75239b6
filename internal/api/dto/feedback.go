package dto

import (
	"context"

	"github.com/engagehq/engage-api/internal/domain/feedback"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateFeedbackRequest struct {
	Rating         int                  `json:"rating"`
	CommentType    types.CommentType    `json:"comment_type"`
	Comment        string               `json:"comment"`
	Source         types.FeedbackSource `json:"source"`
	SubmissionPath string               `json:"submission_path"`
}

func (r *CreateFeedbackRequest) Validate() error {
	if r.Rating < 0 || r.Rating > 5 {
		return ierr.NewError("rating out of range").
			WithHint("Rating must be between 0 and 5").
			WithReportableDetails(map[string]any{"rating": r.Rating}).
			Mark(ierr.ErrValidation)
	}
	if r.Rating == 0 && r.Comment == "" {
		return ierr.NewError("empty feedback").
			WithHint("Feedback needs a rating or a comment").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateFeedbackRequest) ToFeedback(ctx context.Context) *feedback.Feedback {
	return &feedback.Feedback{
		Rating:         r.Rating,
		CommentType:    r.CommentType,
		Comment:        r.Comment,
		Source:         r.Source,
		Status:         types.FeedbackStatusUnreviewed,
		SubmissionPath: r.SubmissionPath,
		TenantID:       types.GetTenantID(ctx),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

type UpdateFeedbackRequest struct {
	Rating  *int                  `json:"rating,omitempty"`
	Comment *string               `json:"comment,omitempty"`
	Status  *types.FeedbackStatus `json:"status,omitempty"`
}

func (r *UpdateFeedbackRequest) Validate() error {
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return ierr.NewError("rating out of range").
			WithHint("Rating must be between 0 and 5").
			WithReportableDetails(map[string]any{"rating": *r.Rating}).
			Mark(ierr.ErrValidation)
	}
	if r.Status != nil && !r.Status.Valid() {
		return ierr.NewError("invalid feedback status").
			WithHint("The requested feedback status is not known").
			WithReportableDetails(map[string]any{"status": int(*r.Status)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type FeedbackResponse struct {
	*feedback.Feedback
}

// ListFeedbackResponse represents a paginated list of feedback
type ListFeedbackResponse = types.ListResponse[*FeedbackResponse]
