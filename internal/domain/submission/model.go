package submission

import (
	"encoding/json"
	"time"

	"github.com/engagehq/engage-api/internal/types"
)

// Submission is a participant's completed survey response.
type Submission struct {
	ID int64 `db:"id" json:"id"`

	SurveyID     int64 `db:"survey_id" json:"survey_id"`
	EngagementID int64 `db:"engagement_id" json:"engagement_id"`

	// ParticipantID identifies the (anonymized) respondent
	ParticipantID int64 `db:"participant_id" json:"participant_id"`

	// SubmissionJSON is the raw form response document
	SubmissionJSON json.RawMessage `db:"submission_json" json:"submission_json"`

	// CommentStatusID is the review state of the submission's comments
	CommentStatusID types.CommentStatus `db:"comment_status_id" json:"comment_status_id"`

	ReviewedBy *string    `db:"reviewed_by" json:"reviewed_by"`
	ReviewDate *time.Time `db:"review_date" json:"review_date"`

	types.BaseModel
}
