package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/widget"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type WidgetService interface {
	CreateWidget(ctx context.Context, engagementID int64, req dto.CreateWidgetRequest) (*dto.WidgetResponse, error)
	GetWidgetsByEngagement(ctx context.Context, engagementID int64) (*dto.ListWidgetsResponse, error)
	UpdateWidget(ctx context.Context, id int64, req dto.UpdateWidgetRequest) (*dto.WidgetResponse, error)
	DeleteWidget(ctx context.Context, id int64) error
	ReorderWidgets(ctx context.Context, engagementID int64, req dto.ReorderWidgetsRequest) (*dto.ListWidgetsResponse, error)
}

type widgetService struct {
	ServiceParams
}

func NewWidgetService(params ServiceParams) WidgetService {
	return &widgetService{ServiceParams: params}
}

func (s *widgetService) CreateWidget(ctx context.Context, engagementID int64, req dto.CreateWidgetRequest) (*dto.WidgetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EngagementRepo.Get(ctx, engagementID); err != nil {
		return nil, err
	}

	existing, err := s.WidgetRepo.ListByEngagement(ctx, engagementID)
	if err != nil {
		return nil, err
	}

	// One widget per type per engagement, matching the client's rendering
	// assumptions.
	for _, w := range existing {
		if w.WidgetTypeID == req.WidgetTypeID {
			return nil, ierr.NewError("widget type already present").
				WithHint("The engagement already has a widget of this type").
				WithReportableDetails(map[string]any{"widget_type_id": int(req.WidgetTypeID)}).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	w := req.ToWidget(ctx, engagementID, len(existing))
	if err := s.WidgetRepo.Create(ctx, w); err != nil {
		return nil, err
	}

	s.Logger.Infow("created widget",
		"widget_id", w.ID,
		"engagement_id", engagementID,
		"widget_type", w.WidgetTypeID.String())
	return &dto.WidgetResponse{Widget: w}, nil
}

func (s *widgetService) GetWidgetsByEngagement(ctx context.Context, engagementID int64) (*dto.ListWidgetsResponse, error) {
	items, err := s.WidgetRepo.ListByEngagement(ctx, engagementID)
	if err != nil {
		return nil, err
	}
	return &dto.ListWidgetsResponse{
		Items: lo.Map(items, func(w *widget.Widget, _ int) *dto.WidgetResponse {
			return &dto.WidgetResponse{Widget: w}
		}),
	}, nil
}

func (s *widgetService) UpdateWidget(ctx context.Context, id int64, req dto.UpdateWidgetRequest) (*dto.WidgetResponse, error) {
	w, err := s.WidgetRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		w.Title = *req.Title
	}
	w.UpdatedDate = time.Now().UTC()
	w.UpdatedBy = types.GetUserID(ctx)

	if err := s.WidgetRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return &dto.WidgetResponse{Widget: w}, nil
}

func (s *widgetService) DeleteWidget(ctx context.Context, id int64) error {
	if err := s.WidgetRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted widget", "widget_id", id)
	return nil
}

func (s *widgetService) ReorderWidgets(ctx context.Context, engagementID int64, req dto.ReorderWidgetsRequest) (*dto.ListWidgetsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.WidgetRepo.ListByEngagement(ctx, engagementID)
	if err != nil {
		return nil, err
	}
	if len(req.WidgetIDs) != len(existing) {
		return nil, ierr.NewError("incomplete widget order").
			WithHint("The new order must list every widget of the engagement exactly once").
			WithReportableDetails(map[string]any{
				"expected": len(existing),
				"got":      len(req.WidgetIDs),
			}).
			Mark(ierr.ErrValidation)
	}

	if err := s.WidgetRepo.UpdateSortIndexes(ctx, engagementID, req.WidgetIDs); err != nil {
		return nil, err
	}

	return s.GetWidgetsByEngagement(ctx, engagementID)
}
