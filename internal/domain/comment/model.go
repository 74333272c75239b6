package comment

import (
	"time"

	"github.com/engagehq/engage-api/internal/types"
)

// Comment is a free-text answer extracted from a survey submission, subject
// to review before publication.
type Comment struct {
	ID int64 `db:"id" json:"id"`

	SurveyID      int64 `db:"survey_id" json:"survey_id"`
	SubmissionID  int64 `db:"submission_id" json:"submission_id"`
	ParticipantID int64 `db:"participant_id" json:"participant_id"`

	Text           string    `db:"text" json:"text"`
	SubmissionDate time.Time `db:"submission_date" json:"submission_date"`

	types.BaseModel
}
