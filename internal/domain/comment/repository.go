package comment

import (
	"context"

	"github.com/engagehq/engage-api/internal/types"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	Get(ctx context.Context, id int64) (*Comment, error)
	ListBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) ([]*Comment, error)
	CountBySurvey(ctx context.Context, surveyID int64) (int, error)
	ListBySubmission(ctx context.Context, submissionID int64) ([]*Comment, error)
}
