package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/engagement"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type EngagementService interface {
	CreateEngagement(ctx context.Context, req dto.CreateEngagementRequest) (*dto.EngagementResponse, error)
	GetEngagement(ctx context.Context, id int64) (*dto.EngagementResponse, error)
	GetEngagementsPaginated(ctx context.Context, filter *types.EngagementFilter) (*dto.ListEngagementsResponse, error)
	GetAllEngagements(ctx context.Context) ([]*dto.EngagementResponse, error)
	GetEngagementsByStatus(ctx context.Context, statusIDs []types.EngagementStatus) ([]*dto.EngagementResponse, error)
	UpdateEngagement(ctx context.Context, id int64, req dto.UpdateEngagementRequest) (*dto.EngagementResponse, error)

	// CloseEngagementsDue transitions every Published engagement whose end
	// date has passed (relative to local midnight) to Closed and returns the
	// transitioned records.
	CloseEngagementsDue(ctx context.Context) ([]*dto.EngagementResponse, error)

	// PublishScheduledEngagementsDue transitions every Scheduled engagement
	// whose scheduled date has arrived to Published and returns the
	// transitioned records.
	PublishScheduledEngagementsDue(ctx context.Context) ([]*dto.EngagementResponse, error)
}

type engagementService struct {
	ServiceParams
}

func NewEngagementService(params ServiceParams) EngagementService {
	return &engagementService{ServiceParams: params}
}

func (s *engagementService) CreateEngagement(ctx context.Context, req dto.CreateEngagementRequest) (*dto.EngagementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := req.ToEngagement(ctx)
	if err := s.EngagementRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.Logger.Infow("created engagement", "engagement_id", e.ID, "name", e.Name)
	return dto.NewEngagementResponse(e, time.Now()), nil
}

func (s *engagementService) GetEngagement(ctx context.Context, id int64) (*dto.EngagementResponse, error) {
	e, err := s.EngagementRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewEngagementResponse(e, time.Now()), nil
}

func (s *engagementService) GetEngagementsPaginated(ctx context.Context, filter *types.EngagementFilter) (*dto.ListEngagementsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultEngagementFilter()
	}
	if filter.Pagination == nil {
		filter.Pagination = types.NewDefaultPaginationOptions()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.EngagementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.EngagementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	response := types.NewListResponse(
		lo.Map(items, func(e *engagement.Engagement, _ int) *dto.EngagementResponse {
			return dto.NewEngagementResponse(e, now)
		}),
		total,
		filter.Pagination,
	)
	return &response, nil
}

func (s *engagementService) GetAllEngagements(ctx context.Context) ([]*dto.EngagementResponse, error) {
	items, err := s.EngagementRepo.List(ctx, &types.EngagementFilter{
		Pagination: &types.PaginationOptions{SortKey: "id", SortOrder: types.OrderAsc},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return lo.Map(items, func(e *engagement.Engagement, _ int) *dto.EngagementResponse {
		return dto.NewEngagementResponse(e, now)
	}), nil
}

func (s *engagementService) GetEngagementsByStatus(ctx context.Context, statusIDs []types.EngagementStatus) ([]*dto.EngagementResponse, error) {
	for _, statusID := range statusIDs {
		if !statusID.Valid() {
			return nil, ierr.NewError("invalid engagement status code").
				WithHint("One of the requested status codes is not a known engagement status").
				WithReportableDetails(map[string]any{"status": int(statusID)}).
				Mark(ierr.ErrValidation)
		}
	}

	items, err := s.EngagementRepo.ListByStatus(ctx, statusIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return lo.Map(items, func(e *engagement.Engagement, _ int) *dto.EngagementResponse {
		return dto.NewEngagementResponse(e, now)
	}), nil
}

func (s *engagementService) UpdateEngagement(ctx context.Context, id int64, req dto.UpdateEngagementRequest) (*dto.EngagementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.EngagementRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.RichDescription != nil {
		e.RichDescription = req.RichDescription
	}
	if req.Content != nil {
		e.Content = *req.Content
	}
	if req.RichContent != nil {
		e.RichContent = req.RichContent
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		e.EndDate = *req.EndDate
	}
	if req.StatusID != nil {
		e.StatusID = *req.StatusID
	}
	// Published and scheduled dates keep their stored values when the
	// request omits them, so a partial update cannot unpublish.
	if req.PublishedDate != nil {
		e.PublishedDate = req.PublishedDate
	}
	if req.ScheduledDate != nil {
		e.ScheduledDate = req.ScheduledDate
	}
	if req.BannerFilename != nil {
		e.BannerFilename = *req.BannerFilename
	}

	e.UpdatedDate = time.Now().UTC()
	e.UpdatedBy = types.GetUserID(ctx)

	if err := s.EngagementRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	return dto.NewEngagementResponse(e, time.Now()), nil
}

func (s *engagementService) CloseEngagementsDue(ctx context.Context) ([]*dto.EngagementResponse, error) {
	// An engagement stays open for the whole of its end date, so the cutoff
	// is the midnight that just passed in server-local time.
	now := time.Now()
	dateDue := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	closed, err := s.EngagementRepo.CloseDue(ctx, dateDue)
	if err != nil {
		return nil, err
	}

	if len(closed) > 0 {
		s.Logger.Infow("closed engagements past their end date",
			"count", len(closed),
			"engagement_ids", lo.Map(closed, func(e *engagement.Engagement, _ int) int64 { return e.ID }))
	}

	return lo.Map(closed, func(e *engagement.Engagement, _ int) *dto.EngagementResponse {
		return dto.NewEngagementResponse(e, now)
	}), nil
}

func (s *engagementService) PublishScheduledEngagementsDue(ctx context.Context) ([]*dto.EngagementResponse, error) {
	now := time.Now()

	published, err := s.EngagementRepo.PublishScheduledDue(ctx, now)
	if err != nil {
		return nil, err
	}

	if len(published) > 0 {
		s.Logger.Infow("published scheduled engagements",
			"count", len(published),
			"engagement_ids", lo.Map(published, func(e *engagement.Engagement, _ int) int64 { return e.ID }))
	}

	return lo.Map(published, func(e *engagement.Engagement, _ int) *dto.EngagementResponse {
		return dto.NewEngagementResponse(e, now)
	}), nil
}
