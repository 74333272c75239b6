package dto

import (
	"context"
	"encoding/json"

	"github.com/engagehq/engage-api/internal/domain/comment"
	"github.com/engagehq/engage-api/internal/domain/submission"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateSubmissionRequest struct {
	SurveyID       int64           `json:"survey_id" binding:"required"`
	ParticipantID  int64           `json:"participant_id"`
	SubmissionJSON json.RawMessage `json:"submission_json" binding:"required"`

	// Comments carries the free-text answers lifted out of the response
	// document so each can be reviewed individually.
	Comments []string `json:"comments,omitempty"`
}

func (r *CreateSubmissionRequest) Validate() error {
	if r.SurveyID == 0 {
		return ierr.NewError("survey_id is required").
			WithHint("A submission must reference a survey").
			Mark(ierr.ErrValidation)
	}
	if len(r.SubmissionJSON) == 0 {
		return ierr.NewError("submission_json is required").
			WithHint("A submission must carry a response document").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateSubmissionRequest) ToSubmission(ctx context.Context, engagementID int64) *submission.Submission {
	return &submission.Submission{
		SurveyID:        r.SurveyID,
		EngagementID:    engagementID,
		ParticipantID:   r.ParticipantID,
		SubmissionJSON:  r.SubmissionJSON,
		CommentStatusID: types.CommentStatusPending,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

// ToComments builds the review queue entries for the request's free-text
// answers. Call after the submission has been created so its id is set.
func (r *CreateSubmissionRequest) ToComments(ctx context.Context, sub *submission.Submission) []*comment.Comment {
	comments := make([]*comment.Comment, 0, len(r.Comments))
	for _, text := range r.Comments {
		if text == "" {
			continue
		}
		comments = append(comments, &comment.Comment{
			SurveyID:       sub.SurveyID,
			SubmissionID:   sub.ID,
			ParticipantID:  sub.ParticipantID,
			Text:           text,
			SubmissionDate: sub.CreatedDate,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	}
	return comments
}

// ReviewSubmissionRequest records the outcome of a comment review.
type ReviewSubmissionRequest struct {
	Status types.CommentStatus `json:"status" binding:"required"`
}

func (r *ReviewSubmissionRequest) Validate() error {
	if !r.Status.Valid() {
		return ierr.NewError("invalid comment status").
			WithHint("Review status must be pending, approved or rejected").
			WithReportableDetails(map[string]any{"status": int(r.Status)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type SubmissionResponse struct {
	*submission.Submission
}

// ListSubmissionsResponse represents a paginated list of submissions
type ListSubmissionsResponse = types.ListResponse[*SubmissionResponse]
