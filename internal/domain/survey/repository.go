package survey

import (
	"context"

	"github.com/engagehq/engage-api/internal/types"
)

type Repository interface {
	Create(ctx context.Context, s *Survey) error
	Get(ctx context.Context, id int64) (*Survey, error)
	List(ctx context.Context, filter *types.SurveyFilter) ([]*Survey, error)
	Count(ctx context.Context, filter *types.SurveyFilter) (int, error)
	ListByEngagement(ctx context.Context, engagementID int64) ([]*Survey, error)
	Update(ctx context.Context, s *Survey) error
}
