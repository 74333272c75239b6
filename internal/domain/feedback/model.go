package feedback

import (
	"github.com/engagehq/engage-api/internal/types"
)

// Feedback is site feedback left by a visitor, optionally anonymous.
type Feedback struct {
	ID int64 `db:"id" json:"id"`

	// Rating is a 0-5 satisfaction score
	Rating int `db:"rating" json:"rating"`

	CommentType types.CommentType `db:"comment_type" json:"comment_type"`
	Comment     string            `db:"comment" json:"comment"`

	Source types.FeedbackSource `db:"source" json:"source"`
	Status types.FeedbackStatus `db:"status" json:"status"`

	// SubmissionPath is the client route the feedback was submitted from
	SubmissionPath string `db:"submission_path" json:"submission_path"`

	TenantID int64 `db:"tenant_id" json:"tenant_id"`

	types.BaseModel
}
