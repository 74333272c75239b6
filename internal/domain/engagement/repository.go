package engagement

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/types"
)

// Repository provides access to engagement storage. Listing semantics: an
// engagement whose status_id does not reference an existing status row is
// excluded (inner join against engagement_status).
type Repository interface {
	Create(ctx context.Context, e *Engagement) error
	Get(ctx context.Context, id int64) (*Engagement, error)
	List(ctx context.Context, filter *types.EngagementFilter) ([]*Engagement, error)
	Count(ctx context.Context, filter *types.EngagementFilter) (int, error)
	ListByStatus(ctx context.Context, statusIDs []types.EngagementStatus) ([]*Engagement, error)
	Update(ctx context.Context, e *Engagement) error

	// CloseDue atomically transitions Published engagements whose end_date
	// precedes dateDue to Closed and returns the transitioned rows. No rows
	// matched means no write is issued.
	CloseDue(ctx context.Context, dateDue time.Time) ([]*Engagement, error)

	// PublishScheduledDue atomically transitions Scheduled engagements whose
	// scheduled_date is at or before now to Published, stamping
	// published_date, and returns the transitioned rows.
	PublishScheduledDue(ctx context.Context, now time.Time) ([]*Engagement, error)
}
