package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/engagehq/engage-api/internal/domain/engagement"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

// InMemoryEngagementStore mirrors the SQL listing semantics of the postgres
// repository, including synthetic status filters and metadata lookups.
type InMemoryEngagementStore struct {
	*InMemoryStore[*engagement.Engagement]

	// metadata backs the project metadata filters, standing in for the
	// engagement_metadata join.
	metadata *InMemoryMetadataStore
}

func NewInMemoryEngagementStore(metadata *InMemoryMetadataStore) *InMemoryEngagementStore {
	return &InMemoryEngagementStore{
		InMemoryStore: NewInMemoryStore[*engagement.Engagement](),
		metadata:      metadata,
	}
}

func (s *InMemoryEngagementStore) Create(ctx context.Context, e *engagement.Engagement) error {
	if e.ID == 0 {
		e.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, e.ID, e)
}

func (s *InMemoryEngagementStore) Get(ctx context.Context, id int64) (*engagement.Engagement, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("engagement %d not found", id)).
			WithHint("The engagement does not exist").
			Mark(ierr.ErrNotFound)
	}
	return e, nil
}

func (s *InMemoryEngagementStore) matches(e *engagement.Engagement, filter *types.EngagementFilter, now time.Time) bool {
	if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, e.StatusID) {
		return false
	}

	if opts := filter.SearchOptions; opts != nil {
		if opts.SearchText != "" &&
			!strings.Contains(strings.ToLower(e.Name), strings.ToLower(opts.SearchText)) {
			return false
		}
		if opts.CreatedFromDate != nil && e.CreatedDate.Before(*opts.CreatedFromDate) {
			return false
		}
		if opts.CreatedToDate != nil && e.CreatedDate.After(*opts.CreatedToDate) {
			return false
		}
		if opts.PublishedFromDate != nil &&
			(e.PublishedDate == nil || e.PublishedDate.Before(*opts.PublishedFromDate)) {
			return false
		}
		if opts.PublishedToDate != nil &&
			(e.PublishedDate == nil || e.PublishedDate.After(*opts.PublishedToDate)) {
			return false
		}

		if len(opts.EngagementStatus) > 0 && !s.matchesStatusUnion(e, opts.EngagementStatus, now) {
			return false
		}

		if opts.HasMetadataFilter() && !s.matchesMetadata(e.ID, opts) {
			return false
		}
	}

	if filter.AssignedEngagements != nil && e.StatusID == types.EngagementStatusDraft &&
		!lo.Contains(filter.AssignedEngagements, e.ID) {
		return false
	}

	return true
}

// matchesStatusUnion ORs the stored status codes with the synthetic
// Upcoming and Open conditions, matching the SQL clause.
func (s *InMemoryEngagementStore) matchesStatusUnion(e *engagement.Engagement, codes []int, now time.Time) bool {
	if lo.Contains(codes, int(e.StatusID)) {
		return true
	}
	for _, c := range codes {
		switch types.EngagementDisplayStatus(c) {
		case types.DisplayStatusUpcoming:
			if e.StatusID == types.EngagementStatusPublished && e.StartDate.After(now) {
				return true
			}
		case types.DisplayStatusOpen:
			if e.StatusID == types.EngagementStatusPublished && !e.StartDate.After(now) {
				return true
			}
		}
	}
	return false
}

func (s *InMemoryEngagementStore) matchesMetadata(engagementID int64, opts *types.EngagementSearchOptions) bool {
	if s.metadata == nil {
		return false
	}
	rows, _ := s.metadata.ListByEngagement(context.Background(), engagementID)
	for _, m := range rows {
		if opts.ProjectType != "" && m.ProjectMetadata.Type != opts.ProjectType {
			continue
		}
		if opts.ProjectName != "" && m.ProjectMetadata.ProjectName != opts.ProjectName {
			continue
		}
		if opts.ProjectID != "" && m.ProjectID != opts.ProjectID {
			continue
		}
		if opts.ApplicationNumber != "" && m.ProjectMetadata.ApplicationNumber != opts.ApplicationNumber {
			continue
		}
		if opts.ClientName != "" && m.ProjectMetadata.ClientName != opts.ClientName {
			continue
		}
		return true
	}
	return false
}

func engagementSortFn(p *types.PaginationOptions) SortFunc[*engagement.Engagement] {
	key := p.GetSortKey()
	desc := p.GetSortOrder() == types.OrderDesc

	less := func(a, b *engagement.Engagement) bool {
		switch key {
		case "id":
			return a.ID < b.ID
		case "name":
			return a.Name < b.Name
		case "start_date":
			return a.StartDate.Before(b.StartDate)
		case "end_date":
			return a.EndDate.Before(b.EndDate)
		case "published_date":
			if a.PublishedDate == nil {
				return b.PublishedDate != nil
			}
			if b.PublishedDate == nil {
				return false
			}
			return a.PublishedDate.Before(*b.PublishedDate)
		case "status_id":
			return a.StatusID < b.StatusID
		case "updated_date":
			return a.UpdatedDate.Before(b.UpdatedDate)
		default:
			return a.CreatedDate.Before(b.CreatedDate)
		}
	}

	if desc {
		return func(a, b *engagement.Engagement) bool { return less(b, a) }
	}
	return less
}

func (s *InMemoryEngagementStore) List(ctx context.Context, filter *types.EngagementFilter) ([]*engagement.Engagement, error) {
	now := time.Now().UTC()
	return s.InMemoryStore.List(ctx, filter,
		func(ctx context.Context, e *engagement.Engagement, _ interface{}) bool {
			return s.matches(e, filter, now)
		},
		engagementSortFn(filter.Pagination),
		filter.Pagination,
	)
}

func (s *InMemoryEngagementStore) Count(ctx context.Context, filter *types.EngagementFilter) (int, error) {
	now := time.Now().UTC()
	return s.InMemoryStore.Count(ctx, filter,
		func(ctx context.Context, e *engagement.Engagement, _ interface{}) bool {
			return s.matches(e, filter, now)
		},
	)
}

func (s *InMemoryEngagementStore) ListByStatus(ctx context.Context, statusIDs []types.EngagementStatus) ([]*engagement.Engagement, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, e *engagement.Engagement, _ interface{}) bool {
			return lo.Contains(statusIDs, e.StatusID)
		},
		func(a, b *engagement.Engagement) bool { return a.ID < b.ID },
		nil,
	)
}

func (s *InMemoryEngagementStore) Update(ctx context.Context, e *engagement.Engagement) error {
	if err := s.InMemoryStore.Update(ctx, e.ID, e); err != nil {
		return ierr.NewError(fmt.Sprintf("engagement %d not found", e.ID)).
			WithHint("The engagement does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryEngagementStore) CloseDue(ctx context.Context, dateDue time.Time) ([]*engagement.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var closed []*engagement.Engagement
	now := time.Now().UTC()
	for _, e := range s.items {
		if e.StatusID == types.EngagementStatusPublished && e.EndDate.Before(dateDue) {
			e.StatusID = types.EngagementStatusClosed
			e.UpdatedDate = now
			e.UpdatedBy = types.SystemUser
			closed = append(closed, e)
		}
	}
	return closed, nil
}

func (s *InMemoryEngagementStore) PublishScheduledDue(ctx context.Context, now time.Time) ([]*engagement.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var published []*engagement.Engagement
	utc := now.UTC()
	for _, e := range s.items {
		if e.StatusID == types.EngagementStatusScheduled &&
			e.ScheduledDate != nil && !e.ScheduledDate.After(now) {
			e.StatusID = types.EngagementStatusPublished
			e.PublishedDate = lo.ToPtr(utc)
			e.UpdatedDate = utc
			e.UpdatedBy = types.SystemUser
			published = append(published, e)
		}
	}
	return published, nil
}
