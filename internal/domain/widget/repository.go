package widget

import "context"

type Repository interface {
	Create(ctx context.Context, w *Widget) error
	Get(ctx context.Context, id int64) (*Widget, error)
	ListByEngagement(ctx context.Context, engagementID int64) ([]*Widget, error)
	Update(ctx context.Context, w *Widget) error
	Delete(ctx context.Context, id int64) error
	// UpdateSortIndexes applies the given id -> sort index mapping in one
	// transaction so a reorder is all-or-nothing.
	UpdateSortIndexes(ctx context.Context, engagementID int64, order []int64) error
}
