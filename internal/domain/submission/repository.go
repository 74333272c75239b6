package submission

import (
	"context"

	"github.com/engagehq/engage-api/internal/types"
)

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id int64) (*Submission, error)
	ListBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) ([]*Submission, error)
	CountBySurvey(ctx context.Context, surveyID int64) (int, error)
	Update(ctx context.Context, s *Submission) error
}
