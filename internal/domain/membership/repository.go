package membership

import "context"

type Repository interface {
	Create(ctx context.Context, m *Membership) error
	Get(ctx context.Context, id int64) (*Membership, error)
	ListByEngagement(ctx context.Context, engagementID int64) ([]*Membership, error)
	// GetLatest returns the latest membership row for a user on an
	// engagement, or a not-found error when none exists.
	GetLatest(ctx context.Context, engagementID, userID int64) (*Membership, error)
	// ListAssignedEngagementIDs returns the ids of engagements the user has
	// an active membership on. Used to scope draft visibility.
	ListAssignedEngagementIDs(ctx context.Context, userID int64) ([]int64, error)
	Update(ctx context.Context, m *Membership) error
	// WithTx runs fn inside a transaction so the supersede-then-insert
	// pair of a version bump commits or rolls back together.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
