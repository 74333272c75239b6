package feedback

import (
	"context"

	"github.com/engagehq/engage-api/internal/types"
)

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	Get(ctx context.Context, id int64) (*Feedback, error)
	List(ctx context.Context, filter *types.FeedbackFilter) ([]*Feedback, error)
	Count(ctx context.Context, filter *types.FeedbackFilter) (int, error)
	Update(ctx context.Context, f *Feedback) error
	Delete(ctx context.Context, id int64) error
}
